package types

// Joiner combines a predicate with its previous sibling. The joiner of the
// first member of a group is ignored.
type Joiner string

const (
	AND Joiner = "AND"
	OR  Joiner = "OR"
)

// Predicate is a node that can stand in a WHERE or ON clause.
type Predicate interface {
	Node
	Link() Joiner
	IsNegated() bool
	predicate()
}

// Comparison represents <left> <op> <right>.
type Comparison struct {
	Left     Node
	Right    Node
	Operator Operator
	Joiner   Joiner
	Negated  bool
}

func (*Comparison) Kind() Kind        { return KindComparison }
func (*Comparison) node()             {}
func (*Comparison) predicate()        {}
func (c *Comparison) Link() Joiner    { return c.Joiner }
func (c *Comparison) IsNegated() bool { return c.Negated }

// PredicateGroup is an ordered list of predicates, each combined with its
// predecessor by its own joiner. Group negation is independent of member
// negation.
type PredicateGroup struct {
	Members []Predicate
	Joiner  Joiner
	Negated bool
}

func (*PredicateGroup) Kind() Kind        { return KindPredicateGroup }
func (*PredicateGroup) node()             {}
func (*PredicateGroup) predicate()        {}
func (g *PredicateGroup) Link() Joiner    { return g.Joiner }
func (g *PredicateGroup) IsNegated() bool { return g.Negated }

// IsEmpty reports whether the group has no members.
func (g *PredicateGroup) IsEmpty() bool {
	return g == nil || len(g.Members) == 0
}

// Exists represents EXISTS (<query>).
type Exists struct {
	Query   *Query
	Joiner  Joiner
	Negated bool
}

func (*Exists) Kind() Kind        { return KindExists }
func (*Exists) node()             {}
func (*Exists) predicate()        {}
func (e *Exists) Link() Joiner    { return e.Joiner }
func (e *Exists) IsNegated() bool { return e.Negated }

// BooleanTest uses a boolean-valued expression as a whole predicate, such as
// a bit column in a WHERE clause.
type BooleanTest struct {
	Operand Node
	Joiner  Joiner
	Negated bool
}

func (*BooleanTest) Kind() Kind        { return KindBooleanTest }
func (*BooleanTest) node()             {}
func (*BooleanTest) predicate()        {}
func (b *BooleanTest) Link() Joiner    { return b.Joiner }
func (b *BooleanTest) IsNegated() bool { return b.Negated }
