package types

// AggregateFunc represents SQL aggregate functions.
type AggregateFunc string

const (
	AggCount    AggregateFunc = "COUNT"
	AggCountBig AggregateFunc = "COUNT_BIG"
	AggSum      AggregateFunc = "SUM"
	AggAvg      AggregateFunc = "AVG"
	AggMin      AggregateFunc = "MIN"
	AggMax      AggregateFunc = "MAX"
)

// AggregateCall represents an aggregate over Arg. A nil Arg is only valid for
// the count functions and renders COUNT(*).
type AggregateCall struct {
	Arg      Node
	Func     AggregateFunc
	Distinct bool
}

func (*AggregateCall) Kind() Kind { return KindAggregateCall }
func (*AggregateCall) node()      {}

// BinaryOp represents an arithmetic or bitwise infix expression.
type BinaryOp struct {
	Left     Node
	Right    Node
	Operator Operator
}

func (*BinaryOp) Kind() Kind { return KindBinaryOp }
func (*BinaryOp) node()      {}

// UnaryOp represents a prefix expression.
type UnaryOp struct {
	Operand  Node
	Operator Operator
}

func (*UnaryOp) Kind() Kind { return KindUnaryOp }
func (*UnaryOp) node()      {}

// When is a single WHEN ... THEN arm. Test must be predicate-shaped.
type When struct {
	Test   Node
	Result Node
}

// ConditionalCase represents CASE WHEN ... THEN ... [ELSE ...] END.
type ConditionalCase struct {
	Else  Node
	Whens []When
}

func (*ConditionalCase) Kind() Kind { return KindConditionalCase }
func (*ConditionalCase) node()      {}

// RowNumber represents ROW_NUMBER() OVER(...).
type RowNumber struct {
	PartitionBy []Node
	OrderBy     []OrderKey
}

func (*RowNumber) Kind() Kind { return KindRowNumber }
func (*RowNumber) node()      {}

// NodeList is an ordered group of values, used for IN lists and
// multi-column comparisons.
type NodeList struct {
	Items []Node
}

func (*NodeList) Kind() Kind { return KindNodeList }
func (*NodeList) node()      {}

// ScalarSubquery is a nested query expected to yield a single value.
type ScalarSubquery struct {
	Query *Query
}

func (*ScalarSubquery) Kind() Kind { return KindScalarSubquery }
func (*ScalarSubquery) node()      {}

// PredicateAsValue coerces a predicate to 1 or 0.
type PredicateAsValue struct {
	Predicate Predicate
}

func (*PredicateAsValue) Kind() Kind { return KindPredicateAsValue }
func (*PredicateAsValue) node()      {}

// Coalesce represents COALESCE(v1, v2, ...).
type Coalesce struct {
	Values []Node
}

func (*Coalesce) Kind() Kind { return KindCoalesce }
func (*Coalesce) node()      {}

// NullIf represents NULLIF(value, compare).
type NullIf struct {
	Value   Node
	Compare Node
}

func (*NullIf) Kind() Kind { return KindNullIf }
func (*NullIf) node()      {}

// CastType represents the logical target types of a cast.
type CastType string

const (
	CastString   CastType = "string"
	CastInt      CastType = "int"
	CastBigint   CastType = "bigint"
	CastDecimal  CastType = "decimal"
	CastFloat    CastType = "float"
	CastBool     CastType = "bool"
	CastDate     CastType = "date"
	CastDateTime CastType = "datetime"
	CastGUID     CastType = "guid"
	CastBinary   CastType = "binary"
)

// Cast represents CAST(operand AS type).
type Cast struct {
	Operand Node
	Type    CastType
}

func (*Cast) Kind() Kind { return KindCast }
func (*Cast) node()      {}
