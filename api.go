// Package qrender builds SQL SELECT queries as an abstract syntax tree and
// renders them to parameterized SQL.
//
// Queries are assembled with the fluent Builder or the node constructors,
// then handed with a naming convention to a dialect renderer, which returns
// the SQL text and its positional parameters.
//
// # Basic Usage
//
//	q := qrender.From(qrender.T("Book")).
//		Where(qrender.Eq(qrender.Col("Id"), qrender.V(5)))
//
//	cmd, err := q.Render(mssql.New(), naming.Identity())
//	// cmd.SQL:        SELECT *\nFROM [Book]\nWHERE [Id] = @0
//	// cmd.Parameters: []any{5}
//
// # Query Shapes
//
// Skip pages a query, Any, All and Contains turn it into a boolean scalar,
// and Count, Sum, Average, Min and Max aggregate its single selected field.
// Renderers rewrite these shapes into plain SQL without modifying the query.
//
// # Naming
//
// Logical entity and field names are mapped to physical names by a
// NamingConvention; see package naming for snake_case, PascalCase,
// YAML-configured and DBML-validated conventions.
//
// # Output Format
//
// Every value other than NULL, booleans, the empty string and collections is
// a bound parameter. Equal values share one parameter. Identifiers are quoted
// to handle reserved words.
package qrender

import (
	"errors"

	"github.com/zoobzio/qrender/internal/render"
	"github.com/zoobzio/qrender/internal/types"
)

// Node is implemented by every AST node.
type Node = types.Node

// Predicate is a node usable in WHERE and ON clauses.
type Predicate = types.Predicate

// Query is the root of the AST: a SELECT statement.
type Query = types.Query

// Command contains the rendered SQL and its parameters.
type Command = types.Command

// NamingConvention maps logical names to physical names.
type NamingConvention = types.NamingConvention

// SchemaChecker is implemented by naming conventions that know the schema.
type SchemaChecker = types.SchemaChecker

// Structural nodes.
type (
	Table        = types.Table
	UserFunction = types.UserFunction
	Join         = types.Join
	OrderKey     = types.OrderKey
)

// Value nodes.
type (
	Column           = types.Column
	AllColumns       = types.AllColumns
	Aliased          = types.Aliased
	Constant         = types.Constant
	RawLiteral       = types.RawLiteral
	AggregateCall    = types.AggregateCall
	BinaryOp         = types.BinaryOp
	UnaryOp          = types.UnaryOp
	When             = types.When
	ConditionalCase  = types.ConditionalCase
	RowNumber        = types.RowNumber
	NodeList         = types.NodeList
	ScalarSubquery   = types.ScalarSubquery
	PredicateAsValue = types.PredicateAsValue
	Coalesce         = types.Coalesce
	NullIf           = types.NullIf
	Cast             = types.Cast
	StringFunc       = types.StringFunc
	DateFunc         = types.DateFunc
	NumericFunc      = types.NumericFunc
)

// Predicate nodes.
type (
	Comparison     = types.Comparison
	PredicateGroup = types.PredicateGroup
	Exists         = types.Exists
	BooleanTest    = types.BooleanTest
)

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// Joiner combines a predicate with its previous sibling.
type Joiner = types.Joiner

// Re-export joiner constants.
const (
	AND = types.AND
	OR  = types.OR
)

// JoinType represents the type of SQL join.
type JoinType = types.JoinType

// Re-export join type constants.
const (
	InnerJoin  = types.InnerJoin
	LeftJoin   = types.LeftJoin
	RightJoin  = types.RightJoin
	FullJoin   = types.FullJoin
	CrossJoin  = types.CrossJoin
	CrossApply = types.CrossApply
	OuterApply = types.OuterApply
)

// AggregateFunc represents SQL aggregate functions.
type AggregateFunc = types.AggregateFunc

// Re-export aggregate function constants.
const (
	AggCount    = types.AggCount
	AggCountBig = types.AggCountBig
	AggSum      = types.AggSum
	AggAvg      = types.AggAvg
	AggMin      = types.AggMin
	AggMax      = types.AggMax
)

// CastType represents the logical target types of a cast.
type CastType = types.CastType

// Re-export cast type constants.
const (
	CastString   = types.CastString
	CastInt      = types.CastInt
	CastBigint   = types.CastBigint
	CastDecimal  = types.CastDecimal
	CastFloat    = types.CastFloat
	CastBool     = types.CastBool
	CastDate     = types.CastDate
	CastDateTime = types.CastDateTime
	CastGUID     = types.CastGUID
	CastBinary   = types.CastBinary
)

// Scalar function identifiers.
type (
	StringFunction  = types.StringFunction
	DateFunction    = types.DateFunction
	NumericFunction = types.NumericFunction
)

// Re-export string function constants.
const (
	StrLength        = types.StrLength
	StrUpper         = types.StrUpper
	StrLower         = types.StrLower
	StrTrim          = types.StrTrim
	StrTrimStart     = types.StrTrimStart
	StrTrimEnd       = types.StrTrimEnd
	StrSubstring     = types.StrSubstring
	StrIndexOf       = types.StrIndexOf
	StrReplace       = types.StrReplace
	StrConcat        = types.StrConcat
	StrReverse       = types.StrReverse
	StrLeft          = types.StrLeft
	StrRight         = types.StrRight
	StrIsNullOrEmpty = types.StrIsNullOrEmpty
)

// Re-export date function constants.
const (
	DateNow        = types.DateNow
	DateUtcNow     = types.DateUtcNow
	DateToday      = types.DateToday
	DateYear       = types.DateYear
	DateMonth      = types.DateMonth
	DateDay        = types.DateDay
	DateHour       = types.DateHour
	DateMinute     = types.DateMinute
	DateSecond     = types.DateSecond
	DateDayOfWeek  = types.DateDayOfWeek
	DateDayOfYear  = types.DateDayOfYear
	DateDate       = types.DateDate
	DateAddYears   = types.DateAddYears
	DateAddMonths  = types.DateAddMonths
	DateAddDays    = types.DateAddDays
	DateAddHours   = types.DateAddHours
	DateAddMinutes = types.DateAddMinutes
	DateAddSeconds = types.DateAddSeconds
	DateDiffDays   = types.DateDiffDays
)

// Re-export numeric function constants.
const (
	NumAbs      = types.NumAbs
	NumCeiling  = types.NumCeiling
	NumFloor    = types.NumFloor
	NumRound    = types.NumRound
	NumTruncate = types.NumTruncate
	NumPower    = types.NumPower
	NumSqrt     = types.NumSqrt
	NumSign     = types.NumSign
	NumExp      = types.NumExp
	NumLog      = types.NumLog
	NumLog10    = types.NumLog10
)

// Errors.
var (
	ErrUnsupportedConstruct = render.ErrUnsupportedConstruct
	ErrMalformedAST         = render.ErrMalformedAST
)

// UnsupportedConstructError indicates a node or operator with no SQL mapping.
type UnsupportedConstructError = render.UnsupportedConstructError

// MalformedASTError indicates a violated structural invariant.
type MalformedASTError = render.MalformedASTError

// IsUnsupportedConstruct reports whether err is an unsupported construct.
func IsUnsupportedConstruct(err error) bool {
	return errors.Is(err, ErrUnsupportedConstruct)
}

// IsMalformedAST reports whether err is a malformed AST.
func IsMalformedAST(err error) bool {
	return errors.Is(err, ErrMalformedAST)
}
