package types

// Operator represents comparison, arithmetic, bitwise and unary operators.
// Which operators a node accepts is decided by the renderer; a mismatch is
// an unsupported construct.
type Operator string

const (
	// Comparison operators.
	Equals             Operator = "Equals"
	NotEquals          Operator = "NotEquals"
	GreaterThan        Operator = "GreaterThan"
	GreaterThanOrEqual Operator = "GreaterThanOrEqual"
	LessThan           Operator = "LessThan"
	LessThanOrEqual    Operator = "LessThanOrEqual"
	IsIn               Operator = "IsIn"
	Like               Operator = "Like"
	Contains           Operator = "Contains"
	StartsWith         Operator = "StartsWith"
	EndsWith           Operator = "EndsWith"

	// Arithmetic operators.
	Add      Operator = "Add"
	Subtract Operator = "Subtract"
	Multiply Operator = "Multiply"
	Divide   Operator = "Divide"
	Modulo   Operator = "Modulo"
	Concat   Operator = "Concat"

	// Bitwise operators.
	BitAnd     Operator = "BitAnd"
	BitOr      Operator = "BitOr"
	BitXor     Operator = "BitXor"
	ShiftLeft  Operator = "ShiftLeft"
	ShiftRight Operator = "ShiftRight"

	// Unary operators.
	Negate Operator = "Negate"
	BitNot Operator = "BitNot"
	Not    Operator = "Not"
)
