package qrender

import "github.com/zoobzio/qrender/internal/types"

// Helper functions for creating value expressions.

// Agg creates an aggregate call. A nil arg is only valid for the count
// functions and renders COUNT(*).
func Agg(fn types.AggregateFunc, arg types.Node) *types.AggregateCall {
	return &types.AggregateCall{Func: fn, Arg: arg}
}

// AggDistinct creates an aggregate over the distinct values of arg.
func AggDistinct(fn types.AggregateFunc, arg types.Node) *types.AggregateCall {
	return &types.AggregateCall{Func: fn, Arg: arg, Distinct: true}
}

// CountAll creates COUNT(*).
func CountAll() *types.AggregateCall {
	return &types.AggregateCall{Func: types.AggCount}
}

// Op creates a binary arithmetic or bitwise expression.
func Op(left types.Node, op types.Operator, right types.Node) *types.BinaryOp {
	return &types.BinaryOp{Left: left, Operator: op, Right: right}
}

// Unary creates a prefix expression.
func Unary(op types.Operator, operand types.Node) *types.UnaryOp {
	return &types.UnaryOp{Operator: op, Operand: operand}
}

// WhenThen creates a CASE arm. Test must be a predicate or a
// PredicateAsValue.
func WhenThen(test, result types.Node) types.When {
	return types.When{Test: test, Result: result}
}

// Case creates CASE WHEN ... END. A nil elseValue omits the ELSE arm.
func Case(elseValue types.Node, whens ...types.When) *types.ConditionalCase {
	return &types.ConditionalCase{Whens: whens, Else: elseValue}
}

// RowNum creates ROW_NUMBER() OVER(PARTITION BY partition ORDER BY order).
func RowNum(partition []types.Node, order ...types.OrderKey) *types.RowNumber {
	return &types.RowNumber{PartitionBy: partition, OrderBy: order}
}

// Sub wraps a query expected to yield a single value.
func Sub(q *types.Query) *types.ScalarSubquery {
	return &types.ScalarSubquery{Query: q}
}

// AsValue coerces a predicate to 1 or 0.
func AsValue(p types.Predicate) *types.PredicateAsValue {
	return &types.PredicateAsValue{Predicate: p}
}

// List creates an ordered list of values for IN and multi-column equality.
func List(items ...types.Node) *types.NodeList {
	return &types.NodeList{Items: items}
}

// Asc orders by expr ascending.
func Asc(expr types.Node) types.OrderKey {
	return types.OrderKey{Expr: expr, Direction: types.ASC}
}

// Desc orders by expr descending.
func Desc(expr types.Node) types.OrderKey {
	return types.OrderKey{Expr: expr, Direction: types.DESC}
}

// FirstOf creates COALESCE(values...).
func FirstOf(values ...types.Node) *types.Coalesce {
	return &types.Coalesce{Values: values}
}

// NullWhen creates NULLIF(value, compare).
func NullWhen(value, compare types.Node) *types.NullIf {
	return &types.NullIf{Value: value, Compare: compare}
}

// CastTo creates CAST(operand AS type).
func CastTo(operand types.Node, t types.CastType) *types.Cast {
	return &types.Cast{Operand: operand, Type: t}
}

// Str applies a string function. Character positions are zero-based.
func Str(fn types.StringFunction, args ...types.Node) *types.StringFunc {
	return &types.StringFunc{Func: fn, Args: args}
}

// Date applies a date function.
func Date(fn types.DateFunction, args ...types.Node) *types.DateFunc {
	return &types.DateFunc{Func: fn, Args: args}
}

// Num applies a numeric function.
func Num(fn types.NumericFunction, args ...types.Node) *types.NumericFunc {
	return &types.NumericFunc{Func: fn, Args: args}
}

// Upper creates UPPER(expr).
func Upper(expr types.Node) *types.StringFunc { return Str(types.StrUpper, expr) }

// Lower creates LOWER(expr).
func Lower(expr types.Node) *types.StringFunc { return Str(types.StrLower, expr) }

// Length creates LEN(expr).
func Length(expr types.Node) *types.StringFunc { return Str(types.StrLength, expr) }

// Year extracts the year of a date.
func Year(expr types.Node) *types.DateFunc { return Date(types.DateYear, expr) }

// Now returns the current date and time.
func Now() *types.DateFunc { return Date(types.DateNow) }

// Round rounds expr to digits decimal places.
func Round(expr, digits types.Node) *types.NumericFunc { return Num(types.NumRound, expr, digits) }
