// Package testing provides test utilities for qrender.
package testing

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/zoobzio/dbml"

	qr "github.com/zoobzio/qrender"
	"github.com/zoobzio/qrender/naming"
)

// TestProject returns the DBML project of the sample library schema, named
// in snake_case: book, author, book_review and magazine.
func TestProject() *dbml.Project {
	project := dbml.NewProject("library")

	// Book table
	book := dbml.NewTable("book")
	book.AddColumn(dbml.NewColumn("id", "bigint"))
	book.AddColumn(dbml.NewColumn("author_id", "bigint"))
	book.AddColumn(dbml.NewColumn("title", "nvarchar"))
	book.AddColumn(dbml.NewColumn("genre", "nvarchar"))
	book.AddColumn(dbml.NewColumn("price", "decimal"))
	book.AddColumn(dbml.NewColumn("active", "bit"))
	book.AddColumn(dbml.NewColumn("published", "datetime2"))
	project.AddTable(book)

	// Author table
	author := dbml.NewTable("author")
	author.AddColumn(dbml.NewColumn("id", "bigint"))
	author.AddColumn(dbml.NewColumn("full_name", "nvarchar"))
	author.AddColumn(dbml.NewColumn("active", "bit"))
	project.AddTable(author)

	// Book review table
	review := dbml.NewTable("book_review")
	review.AddColumn(dbml.NewColumn("id", "bigint"))
	review.AddColumn(dbml.NewColumn("book_id", "bigint"))
	review.AddColumn(dbml.NewColumn("rating", "int"))
	review.AddColumn(dbml.NewColumn("body", "nvarchar"))
	project.AddTable(review)

	// Magazine table
	magazine := dbml.NewTable("magazine")
	magazine.AddColumn(dbml.NewColumn("id", "bigint"))
	magazine.AddColumn(dbml.NewColumn("title", "nvarchar"))
	magazine.AddColumn(dbml.NewColumn("price", "decimal"))
	project.AddTable(magazine)

	return project
}

// TestSchema returns a schema-checked snake_case naming convention over
// TestProject.
func TestSchema(t testing.TB) *naming.Schema {
	t.Helper()
	schema, err := naming.NewSchema(TestProject(), naming.Snake())
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return schema
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t testing.TB, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %q\nActual:   %q", expected, actual)
	}
}

// AssertParams checks that the parameters match expected, in slot order.
func AssertParams(t testing.TB, expected, actual []any) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("Param count mismatch: expected %d, got %d\nExpected: %v\nActual: %v",
			len(expected), len(actual), expected, actual)
		return
	}
	for i := range expected {
		if !reflect.DeepEqual(expected[i], actual[i]) {
			t.Errorf("Param @%d mismatch: expected %v (%T), got %v (%T)",
				i, expected[i], expected[i], actual[i], actual[i])
		}
	}
}

var placeholderPattern = regexp.MustCompile(`@(\d+)`)

// AssertPlaceholders checks that every placeholder in cmd references a
// parameter, that placeholders first appear in slot order, and that every
// parameter is referenced.
func AssertPlaceholders(t testing.TB, cmd *qr.Command) {
	t.Helper()
	next := 0
	for _, m := range placeholderPattern.FindAllStringSubmatch(cmd.SQL, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			t.Errorf("Bad placeholder %q", m[0])
			continue
		}
		switch {
		case n >= len(cmd.Parameters):
			t.Errorf("Placeholder @%d has no parameter (%d bound)", n, len(cmd.Parameters))
		case n == next:
			next++
		case n > next:
			t.Errorf("Placeholder @%d appears before @%d", n, next)
		}
	}
	if next != len(cmd.Parameters) {
		t.Errorf("Expected %d placeholders, found %d in %q", len(cmd.Parameters), next, cmd.SQL)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t testing.TB, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertMalformed checks that err is a malformed AST error.
func AssertMalformed(t testing.TB, err error) {
	t.Helper()
	if !errors.Is(err, qr.ErrMalformedAST) {
		t.Errorf("Expected malformed AST error, got: %v", err)
	}
}

// AssertUnsupported checks that err is an unsupported construct error.
func AssertUnsupported(t testing.TB, err error) {
	t.Helper()
	if !errors.Is(err, qr.ErrUnsupportedConstruct) {
		t.Errorf("Expected unsupported construct error, got: %v", err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}

// AssertPanicsWithMessage verifies that a function panics with a specific message.
func AssertPanicsWithMessage(t testing.TB, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}
