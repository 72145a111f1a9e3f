package qrender

import "github.com/zoobzio/qrender/internal/types"

// Col creates a column of the query's source entity.
func Col(name string) *types.Column {
	return &types.Column{Name: name}
}

// ColOf creates a column qualified by a table alias, entity name or derived
// table alias.
func ColOf(table, name string) *types.Column {
	return &types.Column{Table: table, Name: name}
}

// Ref creates a relational column, named with the foreign-key convention.
// An empty table resolves against the query's source entity.
func Ref(table, field string) *types.Column {
	return &types.Column{Table: table, Name: field, Reference: true}
}

// Star selects every column of table, or of all sources when table is empty.
func Star(table string) *types.AllColumns {
	return &types.AllColumns{Table: table}
}

// As gives an expression an output name.
func As(expr types.Node, alias string) *types.Aliased {
	return &types.Aliased{Expr: expr, Alias: alias}
}
