package naming

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/dbml"
)

func TestIdentity(t *testing.T) {
	n := Identity()
	assert.Equal(t, "", n.SchemaName("Book"))
	assert.Equal(t, "Book", n.TableName("Book"))
	assert.Equal(t, "Id", n.PrimaryKeyName("Book"))
	assert.Equal(t, "Title", n.ColumnName("Book", "Title"))
	assert.Equal(t, "AuthorId", n.ForeignKeyName("Book", "Author"))
}

func TestToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User", "user"},
		{"OrderItem", "order_item"},
		{"CustomerOrderDetail", "customer_order_detail"},
		{"A", "a"},
		{"APIKey", "api_key"},
		{"UserID", "user_id"},
		{"User2Name", "user2_name"},
		{"order_item", "order_item"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, toSnake(tt.in))
		})
	}
}

func TestSnake(t *testing.T) {
	n := Snake()
	assert.Equal(t, "order_item", n.TableName("OrderItem"))
	assert.Equal(t, "id", n.PrimaryKeyName("OrderItem"))
	assert.Equal(t, "unit_price", n.ColumnName("OrderItem", "UnitPrice"))
	assert.Equal(t, "order_id", n.ForeignKeyName("OrderItem", "Order"))
	assert.Equal(t, "", n.SchemaName("OrderItem"))

	plural := Snake(WithPlural(), WithSchema("sales"))
	assert.Equal(t, "order_items", plural.TableName("OrderItem"))
	assert.Equal(t, "sales", plural.SchemaName("OrderItem"))
}

func TestPascal(t *testing.T) {
	n := Pascal()
	assert.Equal(t, "OrderItem", n.TableName("order_item"))
	assert.Equal(t, "OrderItem", n.TableName("OrderItem"))
	assert.Equal(t, "UserID", n.ColumnName("user", "user_ID"))
	assert.Equal(t, "CustomerId", n.ForeignKeyName("order", "customer"))
	assert.Equal(t, "Id", n.PrimaryKeyName("order"))
}

const mappedYAML = `
base: snake
schema: sales
tables:
  OrderItem:
    name: order_lines
    primary_key: line_id
    columns:
      Quantity: qty
    foreign_keys:
      Order: order_ref
  Audit:
    schema: audit
`

func TestLoad(t *testing.T) {
	m, err := Load(strings.NewReader(mappedYAML))
	require.NoError(t, err)

	assert.Equal(t, "sales", m.SchemaName("OrderItem"))
	assert.Equal(t, "audit", m.SchemaName("Audit"))
	assert.Equal(t, "order_lines", m.TableName("OrderItem"))
	assert.Equal(t, "customer", m.TableName("Customer"))
	assert.Equal(t, "line_id", m.PrimaryKeyName("OrderItem"))
	assert.Equal(t, "id", m.PrimaryKeyName("Customer"))
	assert.Equal(t, "qty", m.ColumnName("OrderItem", "Quantity"))
	assert.Equal(t, "unit_price", m.ColumnName("OrderItem", "UnitPrice"))
	assert.Equal(t, "order_ref", m.ForeignKeyName("OrderItem", "Order"))
	assert.Equal(t, "product_id", m.ForeignKeyName("OrderItem", "Product"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(strings.NewReader("base: kebab\n"))
	assert.ErrorContains(t, err, "unknown base convention")

	_, err = Load(strings.NewReader("tabels: {}\n"))
	assert.ErrorContains(t, err, "decode naming config")
}

func TestLoad_Empty(t *testing.T) {
	m, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "Book", m.TableName("Book"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "naming.yaml")
	require.NoError(t, os.WriteFile(path, []byte(mappedYAML), 0o600))

	m, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "order_lines", m.TableName("OrderItem"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func testProject() *dbml.Project {
	project := dbml.NewProject("shop")

	orderItems := dbml.NewTable("order_item")
	orderItems.AddColumn(dbml.NewColumn("id", "bigint"))
	orderItems.AddColumn(dbml.NewColumn("order_id", "bigint"))
	orderItems.AddColumn(dbml.NewColumn("quantity", "int"))
	project.AddTable(orderItems)

	return project
}

func TestSchema(t *testing.T) {
	s, err := NewSchema(testProject(), Snake())
	require.NoError(t, err)

	assert.NoError(t, s.CheckTable("OrderItem"))
	assert.ErrorIs(t, s.CheckTable("Invoice"), ErrUnknownTable)

	assert.NoError(t, s.CheckColumn("OrderItem", "Quantity"))
	assert.NoError(t, s.CheckColumn("OrderItem", "Order"), "foreign key")
	assert.ErrorIs(t, s.CheckColumn("OrderItem", "Price"), ErrUnknownColumn)
	assert.ErrorIs(t, s.CheckColumn("Invoice", "Total"), ErrUnknownTable)

	assert.Equal(t, "order_item", s.TableName("OrderItem"))
	assert.NotNil(t, s.Project())
}

func TestNewSchema_NilProject(t *testing.T) {
	_, err := NewSchema(nil, nil)
	assert.Error(t, err)
}
