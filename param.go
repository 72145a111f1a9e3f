package qrender

import "github.com/zoobzio/qrender/internal/types"

// V creates a constant. Renderers bind it as a parameter unless it encodes
// inline: NULL, booleans, the empty string and collections.
func V(value any) *types.Constant {
	return &types.Constant{Value: value}
}

// Null creates the NULL constant.
func Null() *types.Constant {
	return &types.Constant{}
}

// Raw creates dialect text emitted verbatim. It is never parameterized, so
// it must never carry caller input.
func Raw(text string) *types.RawLiteral {
	return &types.RawLiteral{Text: text}
}
