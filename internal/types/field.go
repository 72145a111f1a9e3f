package types

// Column represents a column reference.
//
// Table is the qualifier as written: a table alias, an entity name, or the
// alias of a derived table. An empty qualifier resolves against the query's
// source entity. Name is the logical field name; it is mapped through the
// naming convention unless the qualifier refers to a derived table, whose
// output columns are already physical.
type Column struct {
	Table     string
	Name      string
	Alias     string
	Reference bool // relational field: named with the foreign-key convention
}

func (*Column) Kind() Kind { return KindColumn }
func (*Column) node()      {}

// AllColumns represents table.* in a select list. An empty Table renders *.
type AllColumns struct {
	Table string
}

func (*AllColumns) Kind() Kind { return KindAllColumns }
func (*AllColumns) node()      {}

// Aliased gives any value expression an output name.
type Aliased struct {
	Expr  Node
	Alias string
}

func (*Aliased) Kind() Kind { return KindAliased }
func (*Aliased) node()      {}
