package types

// Kind names a node variant. It is used in error messages and logs; dispatch
// is done with type switches over the concrete node types.
type Kind string

const (
	KindTable            Kind = "Table"
	KindUserFunction     Kind = "UserFunction"
	KindJoin             Kind = "Join"
	KindQuery            Kind = "Query"
	KindColumn           Kind = "Column"
	KindAllColumns       Kind = "AllColumns"
	KindAliased          Kind = "Aliased"
	KindConstant         Kind = "Constant"
	KindRawLiteral       Kind = "RawLiteral"
	KindAggregateCall    Kind = "AggregateCall"
	KindBinaryOp         Kind = "BinaryOp"
	KindUnaryOp          Kind = "UnaryOp"
	KindConditionalCase  Kind = "ConditionalCase"
	KindRowNumber        Kind = "RowNumber"
	KindNodeList         Kind = "NodeList"
	KindScalarSubquery   Kind = "ScalarSubquery"
	KindPredicateAsValue Kind = "PredicateAsValue"
	KindCoalesce         Kind = "Coalesce"
	KindNullIf           Kind = "NullIf"
	KindCast             Kind = "Cast"
	KindStringFunc       Kind = "StringFunc"
	KindDateFunc         Kind = "DateFunc"
	KindNumericFunc      Kind = "NumericFunc"
	KindComparison       Kind = "Comparison"
	KindPredicateGroup   Kind = "PredicateGroup"
	KindExists           Kind = "Exists"
	KindBooleanTest      Kind = "BooleanTest"
)

// Node is implemented by every AST node. The set of implementations is
// closed: the unexported marker keeps other packages from adding variants.
type Node interface {
	Kind() Kind
	node()
}

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// OrderKey represents one ORDER BY entry.
type OrderKey struct {
	Expr      Node
	Direction Direction
}

// JoinType represents the type of SQL join.
type JoinType string

const (
	InnerJoin  JoinType = "INNER JOIN"
	LeftJoin   JoinType = "LEFT JOIN"
	RightJoin  JoinType = "RIGHT JOIN"
	FullJoin   JoinType = "FULL JOIN"
	CrossJoin  JoinType = "CROSS JOIN"
	CrossApply JoinType = "CROSS APPLY"
	OuterApply JoinType = "OUTER APPLY"
)

// TakesCondition reports whether the join type is followed by an ON clause.
func (k JoinType) TakesCondition() bool {
	switch k {
	case CrossJoin, CrossApply, OuterApply:
		return false
	default:
		return true
	}
}

// Join represents a SQL JOIN. When used as a Query source, Left holds the
// left-hand side of the join; entries of Query.Joins leave it nil and join
// against the query source.
type Join struct {
	Left   Node
	Target Node
	On     *PredicateGroup
	Type   JoinType
}

func (*Join) Kind() Kind { return KindJoin }
func (*Join) node()      {}

// Query is the root of the AST: a SELECT statement.
//
//nolint:govet // fieldalignment: logical grouping is preferred over memory optimization
type Query struct {
	Source        Node
	SelectList    []Node
	SelectAllFrom []*Table
	Where         *PredicateGroup
	Joins         []*Join
	GroupBy       []Node
	OrderBy       []OrderKey
	Unions        []*Query
	ContainsProbe Node
	Alias         string // used when the query is nested as a source
	Offset        int
	Limit         int
	Distinct      bool
	Any           bool
	All           bool
	Contains      bool

	// IsAggregateShaped is set by the aggregate-shaping builder operations.
	// An aggregate-shaped query selects exactly one AggregateCall and never
	// renders ORDER BY.
	IsAggregateShaped bool
}

func (*Query) Kind() Kind { return KindQuery }
func (*Query) node()      {}

// Clone returns a shallow copy of the query. Child slices are shared, so the
// copy may be reshaped by replacing fields but must not be mutated in place.
func (q *Query) Clone() *Query {
	c := *q
	return &c
}

// SelectsAggregate reports whether any selected field is an aggregate call.
func (q *Query) SelectsAggregate() bool {
	for _, n := range q.SelectList {
		if isAggregate(n) {
			return true
		}
	}
	return false
}

func isAggregate(n Node) bool {
	switch v := n.(type) {
	case *AggregateCall:
		return true
	case *Aliased:
		return isAggregate(v.Expr)
	}
	return false
}
