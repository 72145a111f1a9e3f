package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PascalCase maps order_item to OrderItem. Primary keys are Id and foreign
// keys <Field>Id.
type PascalCase struct{}

// Pascal returns a PascalCase convention.
func Pascal() *PascalCase {
	return &PascalCase{}
}

func (p *PascalCase) SchemaName(string) string {
	return ""
}

func (p *PascalCase) TableName(entity string) string {
	return p.toPascal(entity)
}

func (p *PascalCase) PrimaryKeyName(string) string {
	return "Id"
}

func (p *PascalCase) ColumnName(_, field string) string {
	return p.toPascal(field)
}

func (p *PascalCase) ForeignKeyName(_, field string) string {
	return p.toPascal(field) + "Id"
}

// toPascal title-cases each underscore or space separated word and joins
// them. Capitals inside a word are kept: "user_ID" -> "UserID".
func (p *PascalCase) toPascal(name string) string {
	// A Caser is stateful and must not be shared across goroutines.
	caser := cases.Title(language.Und, cases.NoLower)
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == ' ' || r == '-'
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(caser.String(w))
	}
	return b.String()
}
