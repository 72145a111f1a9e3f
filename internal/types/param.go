package types

// Constant is a value destined to become a bound parameter or, for NULL,
// booleans, the empty string and collections, an inline encoding.
type Constant struct {
	Value any
}

func (*Constant) Kind() Kind { return KindConstant }
func (*Constant) node()      {}

// IsNull reports whether the constant holds no value.
func (c *Constant) IsNull() bool {
	return c.Value == nil
}

// RawLiteral is dialect text emitted verbatim. It is never parameterized and
// must never carry caller input.
type RawLiteral struct {
	Text string
}

func (*RawLiteral) Kind() Kind { return KindRawLiteral }
func (*RawLiteral) node()      {}
