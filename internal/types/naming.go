package types

// NamingConvention maps logical entity and field names to physical schema,
// table and column names.
type NamingConvention interface {
	SchemaName(entity string) string
	TableName(entity string) string
	PrimaryKeyName(entity string) string
	ColumnName(entity, field string) string
	ForeignKeyName(entity, field string) string
}

// SchemaChecker is implemented by naming conventions backed by a known
// schema. Renderers reject tables and columns the checker does not know.
type SchemaChecker interface {
	CheckTable(entity string) error
	CheckColumn(entity, field string) error
}
