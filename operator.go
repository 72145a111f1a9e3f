package qrender

import "github.com/zoobzio/qrender/internal/types"

// Operator represents comparison, arithmetic, bitwise and unary operators.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	// Comparison operators.
	Equals             = types.Equals
	NotEquals          = types.NotEquals
	GreaterThan        = types.GreaterThan
	GreaterThanOrEqual = types.GreaterThanOrEqual
	LessThan           = types.LessThan
	LessThanOrEqual    = types.LessThanOrEqual
	IsIn               = types.IsIn
	Like               = types.Like
	Contains           = types.Contains
	StartsWith         = types.StartsWith
	EndsWith           = types.EndsWith

	// Arithmetic operators.
	Add      = types.Add
	Subtract = types.Subtract
	Multiply = types.Multiply
	Divide   = types.Divide
	Modulo   = types.Modulo
	Concat   = types.Concat

	// Bitwise operators.
	BitAnd     = types.BitAnd
	BitOr      = types.BitOr
	BitXor     = types.BitXor
	ShiftLeft  = types.ShiftLeft
	ShiftRight = types.ShiftRight

	// Unary operators. Not is the predicate constructor, so the unary
	// operators carry a prefix.
	UnaryNegate = types.Negate
	UnaryBitNot = types.BitNot
	UnaryNot    = types.Not
)
