// Package naming provides naming conventions mapping logical entity and
// field names to physical SQL Server schema, table and column names.
package naming

import "github.com/zoobzio/qrender/internal/types"

// Convention is the interface every convention in this package implements.
type Convention = types.NamingConvention

type identity struct{}

// Identity returns the convention that uses logical names verbatim: no
// schema, primary key Id and foreign keys <field>Id.
func Identity() Convention {
	return identity{}
}

func (identity) SchemaName(string) string              { return "" }
func (identity) TableName(entity string) string        { return entity }
func (identity) PrimaryKeyName(string) string          { return "Id" }
func (identity) ColumnName(_, field string) string     { return field }
func (identity) ForeignKeyName(_, field string) string { return field + "Id" }
