package integration

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qr "github.com/zoobzio/qrender"
	qrmssql "github.com/zoobzio/qrender/mssql"
	qrtesting "github.com/zoobzio/qrender/testing"
)

// libraryDDL creates the tables of qrtesting.TestProject. The column types
// are accepted by both SQL Server and SQLite.
var libraryDDL = []string{
	`DROP TABLE IF EXISTS book_review`,
	`DROP TABLE IF EXISTS book`,
	`DROP TABLE IF EXISTS author`,
	`DROP TABLE IF EXISTS magazine`,
	`CREATE TABLE author (
		id BIGINT PRIMARY KEY,
		full_name NVARCHAR(200) NOT NULL,
		active BIT NOT NULL
	)`,
	`CREATE TABLE book (
		id BIGINT PRIMARY KEY,
		author_id BIGINT NOT NULL REFERENCES author(id),
		title NVARCHAR(200) NOT NULL,
		genre NVARCHAR(50) NULL,
		price DECIMAL(10,2) NOT NULL,
		active BIT NOT NULL,
		published DATETIME2 NULL
	)`,
	`CREATE TABLE book_review (
		id BIGINT PRIMARY KEY,
		book_id BIGINT NOT NULL REFERENCES book(id),
		rating INT NOT NULL,
		body NVARCHAR(400) NULL
	)`,
	`CREATE TABLE magazine (
		id BIGINT PRIMARY KEY,
		title NVARCHAR(200) NOT NULL,
		price DECIMAL(10,2) NOT NULL
	)`,
}

var librarySeed = []string{
	`INSERT INTO author (id, full_name, active) VALUES
		(1, 'Ursula K. Le Guin', 1),
		(2, 'Frank Herbert', 1),
		(3, 'Anonymous', 0)`,
	`INSERT INTO book (id, author_id, title, genre, price, active, published) VALUES
		(1, 1, 'A Wizard of Earthsea', 'Fantasy', 9.99, 1, '1968-11-01'),
		(2, 1, 'The Left Hand of Darkness', 'SciFi', 12.50, 1, '1969-03-01'),
		(3, 2, 'Dune', 'SciFi', 15.00, 1, '1965-08-01'),
		(4, 2, 'Children of Dune', 'SciFi', 11.00, 0, '1976-04-01'),
		(5, 3, 'Untitled', 'Poetry', 5.00, 1, '2001-01-01'),
		(6, 3, 'Notes', NULL, 2.00, 0, NULL)`,
	`INSERT INTO book_review (id, book_id, rating, body) VALUES
		(1, 3, 5, 'Epic'),
		(2, 3, 4, 'Great'),
		(3, 1, 3, 'Fine'),
		(4, 2, 5, 'Classic')`,
	`INSERT INTO magazine (id, title, price) VALUES
		(1, 'Analog', 6.00),
		(2, 'Locus', 8.00)`,
}

// setupLibrary recreates and seeds the library tables.
func setupLibrary(ctx context.Context, t *testing.T, db *sql.DB) {
	t.Helper()
	for _, stmt := range append(libraryDDL, librarySeed...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, stmt)
		}
	}
}

// queryStrings runs cmd and returns every row as strings; NULL reads "NULL".
func queryStrings(ctx context.Context, t *testing.T, db *sql.DB, cmd *qr.Command) [][]string {
	t.Helper()

	rows, err := db.QueryContext(ctx, cmd.SQL, cmd.Parameters...)
	require.NoError(t, err, "SQL: %s\nParameters: %v", cmd.SQL, cmd.Parameters)
	defer rows.Close()

	cols, err := rows.Columns()
	require.NoError(t, err)

	result := [][]string{}
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		require.NoError(t, rows.Scan(dest...))

		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = "NULL"
			if v.Valid {
				row[i] = v.String
			}
		}
		result = append(result, row)
	}
	require.NoError(t, rows.Err())
	return result
}

type libraryCase struct {
	name  string
	query *qr.Builder
	want  [][]string
}

// libraryCases are portable between SQL Server and SQLite: no TOP, no
// string concatenation and no dialect date or string functions.
func libraryCases() []libraryCase {
	reviewed := qr.From(qr.T("BookReview")).
		Where(qr.Eq(qr.Ref("", "Book"), qr.ColOf("b", "Id"))).
		And(qr.Ge(qr.Col("Rating"), qr.V(5))).
		MustBuild()

	return []libraryCase{
		{
			name: "select where",
			query: qr.From(qr.T("Book")).
				Select(qr.Col("Title")).
				Where(qr.Eq(qr.Col("Genre"), qr.V("SciFi"))).
				OrderBy(qr.Col("Id"), qr.ASC),
			want: [][]string{{"The Left Hand of Darkness"}, {"Dune"}, {"Children of Dune"}},
		},
		{
			name: "null comparison",
			query: qr.From(qr.T("Book")).
				Select(qr.Col("Title")).
				Where(qr.Eq(qr.Col("Genre"), qr.Null())),
			want: [][]string{{"Notes"}},
		},
		{
			name: "not null count",
			query: qr.From(qr.T("Book")).
				Where(qr.Ne(qr.Col("Genre"), qr.Null())).
				Count(),
			want: [][]string{{"5"}},
		},
		{
			name: "in list",
			query: qr.From(qr.T("Book")).
				Select(qr.Col("Id")).
				Where(qr.In(qr.Col("Genre"), qr.V([]string{"Fantasy", "Poetry"}))).
				OrderBy(qr.Col("Id"), qr.ASC),
			want: [][]string{{"1"}, {"5"}},
		},
		{
			name: "empty in list",
			query: qr.From(qr.T("Book")).
				Where(qr.In(qr.Col("Id"), qr.V([]int{}))).
				Count(),
			want: [][]string{{"0"}},
		},
		{
			name: "repeated value",
			query: qr.From(qr.T("Book")).
				Where(qr.Eq(qr.Col("Genre"), qr.V("SciFi"))).
				Or(qr.Eq(qr.Col("Title"), qr.V("SciFi"))).
				Count(),
			want: [][]string{{"3"}},
		},
		{
			name: "inner join",
			query: qr.From(qr.TAs("Book", "b")).
				Select(qr.ColOf("b", "Title"), qr.ColOf("a", "FullName")).
				InnerJoin(qr.TAs("Author", "a"), qr.Eq(qr.Ref("b", "Author"), qr.ColOf("a", "Id"))).
				Where(qr.IsTrue(qr.ColOf("a", "Active"))).
				And(qr.Gt(qr.ColOf("b", "Price"), qr.V(12))).
				OrderBy(qr.ColOf("b", "Id"), qr.ASC),
			want: [][]string{{"The Left Hand of Darkness", "Ursula K. Le Guin"}, {"Dune", "Frank Herbert"}},
		},
		{
			name: "correlated exists",
			query: qr.From(qr.TAs("Book", "b")).
				Select(qr.ColOf("b", "Title")).
				Where(qr.ExistsIn(reviewed)).
				OrderBy(qr.ColOf("b", "Id"), qr.ASC),
			want: [][]string{{"The Left Hand of Darkness"}, {"Dune"}},
		},
		{
			name:  "any match",
			query: qr.From(qr.T("Book")).AnyWhere(qr.Gt(qr.Col("Price"), qr.V(14))),
			want:  [][]string{{"1"}},
		},
		{
			name:  "any no match",
			query: qr.From(qr.T("Book")).AnyWhere(qr.Gt(qr.Col("Price"), qr.V(100))),
			want:  [][]string{{"0"}},
		},
		{
			name:  "all match",
			query: qr.From(qr.T("Book")).All(qr.Gt(qr.Col("Price"), qr.V(1))),
			want:  [][]string{{"1"}},
		},
		{
			name: "all with filter",
			query: qr.From(qr.T("Book")).
				Where(qr.IsTrue(qr.Col("Active"))).
				All(qr.Gt(qr.Col("Price"), qr.V(6))),
			want: [][]string{{"0"}},
		},
		{
			name: "contains",
			query: qr.From(qr.T("Book")).
				Select(qr.Col("Id")).
				Where(qr.Eq(qr.Col("Genre"), qr.V("SciFi"))).
				Contains(qr.V(3)),
			want: [][]string{{"1"}},
		},
		{
			name: "contains over page",
			query: qr.From(qr.T("Book")).
				Select(qr.Col("Id")).
				OrderBy(qr.Col("Id"), qr.ASC).
				Skip(1).Take(2).
				Contains(qr.V(1)),
			want: [][]string{{"0"}},
		},
		{
			name:  "count",
			query: qr.From(qr.T("Book")).Where(qr.IsTrue(qr.Col("Active"))).Count(),
			want:  [][]string{{"4"}},
		},
		{
			name:  "sum",
			query: qr.From(qr.T("BookReview")).Select(qr.Col("Rating")).Sum(),
			want:  [][]string{{"17"}},
		},
		{
			name:  "max",
			query: qr.From(qr.T("BookReview")).Select(qr.Col("Rating")).Max(),
			want:  [][]string{{"5"}},
		},
		{
			name: "paged",
			query: qr.From(qr.T("Book")).
				Select(qr.Col("Id"), qr.Col("Title")).
				OrderBy(qr.Col("Title"), qr.ASC).
				Skip(1).Take(2),
			want: [][]string{{"4", "Children of Dune"}, {"3", "Dune"}},
		},
		{
			name: "skip only",
			query: qr.From(qr.T("Book")).
				Select(qr.Col("Id")).
				OrderBy(qr.Col("Id"), qr.ASC).
				Skip(4),
			want: [][]string{{"5"}, {"6"}},
		},
		{
			name: "distinct paged",
			query: qr.From(qr.T("Book")).
				Select(qr.Ref("", "Author")).
				Distinct().
				OrderBy(qr.Ref("", "Author"), qr.ASC).
				Skip(1),
			want: [][]string{{"2"}, {"3"}},
		},
		{
			name: "paged join",
			query: qr.From(qr.TAs("Book", "b")).
				Select(qr.ColOf("b", "Id"), qr.ColOf("a", "Id")).
				InnerJoin(qr.TAs("Author", "a"), qr.Eq(qr.Ref("b", "Author"), qr.ColOf("a", "Id"))).
				OrderBy(qr.ColOf("b", "Id"), qr.ASC).
				Skip(4),
			want: [][]string{{"5", "3"}, {"6", "3"}},
		},
		{
			name:  "distinct count",
			query: qr.From(qr.T("Book")).Select(qr.Ref("", "Author")).Distinct().Count(),
			want:  [][]string{{"3"}},
		},
		{
			name: "union all",
			query: qr.From(qr.T("Book")).
				Select(qr.Col("Title")).
				Where(qr.Gt(qr.Col("Price"), qr.V(10))).
				UnionAll(qr.From(qr.T("Magazine")).
					Select(qr.Col("Title")).
					Where(qr.Gt(qr.Col("Price"), qr.V(7)))).
				OrderBy(qr.Col("Title"), qr.ASC),
			want: [][]string{{"Children of Dune"}, {"Dune"}, {"Locus"}, {"The Left Hand of Darkness"}},
		},
		{
			name: "group by",
			query: qr.From(qr.T("Book")).
				Select(qr.Col("Genre"), qr.As(qr.CountAll(), "Total")).
				Where(qr.Ne(qr.Col("Genre"), qr.Null())).
				GroupBy(qr.Col("Genre")).
				OrderBy(qr.Col("Genre"), qr.ASC),
			want: [][]string{{"Fantasy", "1"}, {"Poetry", "1"}, {"SciFi", "3"}},
		},
		{
			name: "case",
			query: qr.From(qr.T("Book")).
				Select(qr.Col("Title"), qr.As(qr.Case(qr.V("cheap"),
					qr.WhenThen(qr.Gt(qr.Col("Price"), qr.V(12)), qr.V("premium")),
				), "Band")).
				Where(qr.In(qr.Col("Id"), qr.V([]int{1, 3}))).
				OrderBy(qr.Col("Id"), qr.ASC),
			want: [][]string{{"A Wizard of Earthsea", "cheap"}, {"Dune", "premium"}},
		},
	}
}

// runLibrarySuite renders every library case with r under the library
// schema and checks the rows db returns.
func runLibrarySuite(t *testing.T, db *sql.DB, r *qrmssql.Renderer) {
	t.Helper()
	ctx := context.Background()
	setupLibrary(ctx, t, db)
	schema := qrtesting.TestSchema(t)

	for _, tc := range libraryCases() {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := tc.query.Render(r, schema)
			require.NoError(t, err)

			assert.Equal(t, tc.want, queryStrings(ctx, t, db, cmd), "SQL: %s", cmd.SQL)
		})
	}
}
