package naming

import (
	"strings"
	"unicode"
)

// SnakeCase maps OrderItem to order_item, optionally pluralized to
// order_items. Primary keys are id and foreign keys <field>_id.
type SnakeCase struct {
	schema string
	plural bool
}

// SnakeOption configures a SnakeCase convention.
type SnakeOption func(*SnakeCase)

// WithPlural pluralizes table names by appending s.
func WithPlural() SnakeOption {
	return func(s *SnakeCase) {
		s.plural = true
	}
}

// WithSchema places every table in schema.
func WithSchema(schema string) SnakeOption {
	return func(s *SnakeCase) {
		s.schema = schema
	}
}

// Snake returns a snake_case convention.
func Snake(opts ...SnakeOption) *SnakeCase {
	s := &SnakeCase{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SnakeCase) SchemaName(string) string {
	return s.schema
}

// TableName converts an entity name to its table name, e.g.
// "OrderItem" -> "order_item", or "order_items" when pluralized.
func (s *SnakeCase) TableName(entity string) string {
	name := toSnake(entity)
	if s.plural {
		name += "s"
	}
	return name
}

func (s *SnakeCase) PrimaryKeyName(string) string {
	return "id"
}

func (s *SnakeCase) ColumnName(_, field string) string {
	return toSnake(field)
}

func (s *SnakeCase) ForeignKeyName(_, field string) string {
	return toSnake(field) + "_id"
}

// toSnake inserts an underscore at each word boundary and lowercases the
// result. A run of capitals is one word: "APIKey" -> "api_key".
func toSnake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, ch := range runes {
		if unicode.IsUpper(ch) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prev != '_' && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(ch))
	}

	return b.String()
}
