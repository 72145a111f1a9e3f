package naming

import (
	"errors"
	"fmt"

	"github.com/zoobzio/dbml"
)

var (
	// ErrUnknownTable is returned when an entity maps to a table the schema
	// does not define.
	ErrUnknownTable = errors.New("table not found in schema")

	// ErrUnknownColumn is returned when a field maps to a column the table
	// does not define.
	ErrUnknownColumn = errors.New("column not found in schema")
)

// Schema is a convention backed by a DBML project. Names come from the base
// convention; renders referencing tables or columns the project does not
// define fail.
type Schema struct {
	Convention
	project *dbml.Project
	// Internal indexes for fast validation
	columns map[string]map[string]struct{} // table -> column set
}

// NewSchema creates a schema-checked convention from a DBML project. A nil
// base is Identity.
func NewSchema(project *dbml.Project, base Convention) (*Schema, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}
	if base == nil {
		base = Identity()
	}

	s := &Schema{
		Convention: base,
		project:    project,
		columns:    make(map[string]map[string]struct{}),
	}

	for _, table := range project.Tables {
		cols := make(map[string]struct{}, len(table.Columns))
		for _, col := range table.Columns {
			cols[col.Name] = struct{}{}
		}
		s.columns[table.Name] = cols
	}

	return s, nil
}

// Project returns the DBML project the schema was built from.
func (s *Schema) Project() *dbml.Project {
	return s.project
}

// CheckTable checks that the table of entity exists.
func (s *Schema) CheckTable(entity string) error {
	table := s.TableName(entity)
	if _, ok := s.columns[table]; !ok {
		return fmt.Errorf("%w: %s (entity %s)", ErrUnknownTable, table, entity)
	}
	return nil
}

// CheckColumn checks that field of entity maps to an existing column, under
// either the column or the foreign-key convention.
func (s *Schema) CheckColumn(entity, field string) error {
	if err := s.CheckTable(entity); err != nil {
		return err
	}
	table := s.TableName(entity)
	cols := s.columns[table]
	if _, ok := cols[s.ColumnName(entity, field)]; ok {
		return nil
	}
	if _, ok := cols[s.ForeignKeyName(entity, field)]; ok {
		return nil
	}
	return fmt.Errorf("%w: %s.%s (field %s)", ErrUnknownColumn, table, s.ColumnName(entity, field), field)
}
