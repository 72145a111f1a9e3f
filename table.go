package qrender

import (
	"fmt"

	"github.com/zoobzio/qrender/internal/types"
)

// TryT creates a table reference, returning an error if invalid.
func TryT(name string, alias ...string) (*types.Table, error) {
	if name == "" {
		return nil, fmt.Errorf("table name cannot be empty")
	}

	t := &types.Table{Name: name}
	if len(alias) > 0 {
		if !isValidSQLIdentifier(alias[0]) {
			return nil, fmt.Errorf("invalid table alias %q", alias[0])
		}
		t.Alias = alias[0]
	}
	return t, nil
}

// T creates a table reference for the entity name, with an optional alias.
func T(name string, alias ...string) *types.Table {
	table, err := TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return table
}

// TAs creates an aliased table reference.
func TAs(name, alias string) *types.Table {
	return T(name, alias)
}

// TIn creates a table reference in an explicit schema, overriding the
// naming convention's schema.
func TIn(schema, name string, alias ...string) *types.Table {
	t := T(name, alias...)
	t.Schema = schema
	return t
}

// Fn creates a table-valued function source.
func Fn(schema, name, alias string, args ...types.Node) *types.UserFunction {
	if name == "" {
		panic(fmt.Errorf("function name cannot be empty"))
	}
	if alias != "" && !isValidSQLIdentifier(alias) {
		panic(fmt.Errorf("invalid function alias %q", alias))
	}
	return &types.UserFunction{Name: name, Schema: schema, Alias: alias, Args: args}
}

// isValidSQLIdentifier checks if a string is a valid SQL identifier.
func isValidSQLIdentifier(s string) bool {
	if s == "" {
		return false
	}

	// Must start with letter or underscore
	first := s[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		first == '_') {
		return false
	}

	// Rest must be alphanumeric or underscore
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}

	return true
}
