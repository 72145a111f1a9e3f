package types

// Table represents a table reference. Name is the logical entity name; the
// naming convention maps it to the physical table at render time.
type Table struct {
	Name   string
	Schema string // overrides the naming convention's schema when set
	Alias  string
}

func (*Table) Kind() Kind { return KindTable }
func (*Table) node()      {}

// Ref returns the name columns use to qualify themselves against this table.
func (t *Table) Ref() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// UserFunction represents a table-valued user function used as a source.
type UserFunction struct {
	Name   string
	Schema string
	Alias  string
	Args   []Node
}

func (*UserFunction) Kind() Kind { return KindUserFunction }
func (*UserFunction) node()      {}
