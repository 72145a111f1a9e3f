package naming

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML form of a Mapped convention:
//
//	base: snake
//	schema: sales
//	tables:
//	  OrderItem:
//	    name: order_lines
//	    primary_key: line_id
//	    columns:
//	      Quantity: qty
//	    foreign_keys:
//	      Order: order_ref
type Config struct {
	Base   string                  `yaml:"base"`
	Schema string                  `yaml:"schema"`
	Tables map[string]TableMapping `yaml:"tables"`
}

// TableMapping overrides the names of one entity.
type TableMapping struct {
	Name        string            `yaml:"name"`
	Schema      string            `yaml:"schema"`
	PrimaryKey  string            `yaml:"primary_key"`
	Columns     map[string]string `yaml:"columns"`
	ForeignKeys map[string]string `yaml:"foreign_keys"`
}

// Mapped layers explicit overrides over a base convention. Names without an
// override fall through to the base.
type Mapped struct {
	base   Convention
	schema string
	tables map[string]TableMapping
}

// NewMapped creates a Mapped convention. A nil base is Identity.
func NewMapped(base Convention, cfg Config) *Mapped {
	if base == nil {
		base = Identity()
	}
	return &Mapped{base: base, schema: cfg.Schema, tables: cfg.Tables}
}

// Load reads a Config from YAML. Unknown keys are rejected.
func Load(r io.Reader) (*Mapped, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode naming config: %w", err)
	}

	base, err := baseConvention(cfg.Base)
	if err != nil {
		return nil, err
	}
	return NewMapped(base, cfg), nil
}

// LoadFile reads a Config from a YAML file.
func LoadFile(path string) (*Mapped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open naming config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func baseConvention(name string) (Convention, error) {
	switch name {
	case "", "identity":
		return Identity(), nil
	case "snake":
		return Snake(), nil
	case "snake_plural":
		return Snake(WithPlural()), nil
	case "pascal":
		return Pascal(), nil
	default:
		return nil, fmt.Errorf("unknown base convention %q", name)
	}
}

func (m *Mapped) SchemaName(entity string) string {
	if t, ok := m.tables[entity]; ok && t.Schema != "" {
		return t.Schema
	}
	if m.schema != "" {
		return m.schema
	}
	return m.base.SchemaName(entity)
}

func (m *Mapped) TableName(entity string) string {
	if t, ok := m.tables[entity]; ok && t.Name != "" {
		return t.Name
	}
	return m.base.TableName(entity)
}

func (m *Mapped) PrimaryKeyName(entity string) string {
	if t, ok := m.tables[entity]; ok && t.PrimaryKey != "" {
		return t.PrimaryKey
	}
	return m.base.PrimaryKeyName(entity)
}

func (m *Mapped) ColumnName(entity, field string) string {
	if name, ok := m.tables[entity].Columns[field]; ok {
		return name
	}
	return m.base.ColumnName(entity, field)
}

func (m *Mapped) ForeignKeyName(entity, field string) string {
	if name, ok := m.tables[entity].ForeignKeys[field]; ok {
		return name
	}
	return m.base.ForeignKeyName(entity, field)
}
