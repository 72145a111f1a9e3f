// Package mssql provides the SQL Server dialect renderer for qrender.
//
// Identifiers are bracket-quoted, parameters are referenced positionally as
// @0, @1, ..., paging is emulated with ROW_NUMBER() and boolean scalars with
// CASE WHEN ... THEN 1 ELSE 0 END.
package mssql

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/zoobzio/qrender/internal/render"
	"github.com/zoobzio/qrender/internal/types"
	"github.com/zoobzio/qrender/naming"
)

// Dialect is the name the renderer reports in errors.
const Dialect = "mssql"

const (
	defaultIndent   = "\t"
	defaultMaxDepth = 32
)

// Renderer implements the SQL Server dialect renderer. A Renderer holds no
// per-render state and is safe for concurrent use.
type Renderer struct {
	logger      *slog.Logger
	placeholder func(int) string
	indent      string
	maxDepth    int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithIndent sets the indentation unit for nested queries.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithMaxDepth sets the maximum subquery nesting depth.
func WithMaxDepth(depth int) Option {
	return func(r *Renderer) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// WithPlaceholder sets the function formatting the placeholder of a
// zero-based parameter slot.
func WithPlaceholder(fn func(int) string) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.placeholder = fn
		}
	}
}

// WithLogger enables debug logging of rendered commands.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// Placeholder formats slot n as @n.
func Placeholder(n int) string {
	return "@" + strconv.Itoa(n)
}

// DriverPlaceholder formats slot n as @p<n+1>, the ordinal form
// github.com/microsoft/go-mssqldb binds positional arguments to.
func DriverPlaceholder(n int) string {
	return "@p" + strconv.Itoa(n+1)
}

// New creates a new SQL Server renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		indent:      defaultIndent,
		maxDepth:    defaultMaxDepth,
		placeholder: Placeholder,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// renderContext tracks the state of a single render.
type renderContext struct {
	sql     *render.Writer
	params  *render.Params
	scope   *render.Scope
	naming  types.NamingConvention
	checker types.SchemaChecker
	aliases int
	depth   int
}

// nextAlias returns a fresh alias for a derived table.
func (ctx *renderContext) nextAlias() string {
	alias := "t" + strconv.Itoa(ctx.aliases)
	ctx.aliases++
	return alias
}

// Render converts a query to a Command with SQL Server SQL. A nil naming
// convention renders logical names verbatim.
func (r *Renderer) Render(q *types.Query, nc types.NamingConvention) (*types.Command, error) {
	if q == nil {
		return nil, render.NewMalformedASTError(types.KindQuery, "nil query")
	}
	if nc == nil {
		nc = naming.Identity()
	}

	ctx := &renderContext{
		sql:    render.NewWriter(r.indent),
		params: render.NewParams(),
		naming: nc,
	}
	if checker, ok := nc.(types.SchemaChecker); ok {
		ctx.checker = checker
	}

	if err := r.renderQuery(q, ctx, false); err != nil {
		return nil, err
	}

	cmd := &types.Command{
		Query:      q,
		SQL:        ctx.sql.String(),
		Parameters: ctx.params.Values(),
	}

	if r.logger != nil && r.logger.Enabled(context.Background(), slog.LevelDebug) {
		shape, _ := render.ResolveShape(q, Dialect) //nolint:errcheck // already rendered
		r.logger.Debug("rendered query",
			slog.String("dialect", Dialect),
			slog.String("shape", shape.String()),
			slog.Int("sql_length", len(cmd.SQL)),
			slog.Int("params", len(cmd.Parameters)),
		)
	}

	return cmd, nil
}

// quoteIdentifier quotes a SQL Server identifier with square brackets.
func (r *Renderer) quoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, "]", "]]")
	return "[" + escaped + "]"
}

// renderNested writes a parenthesized query one indentation level deeper.
func (r *Renderer) renderNested(q *types.Query, ctx *renderContext) error {
	if ctx.depth >= r.maxDepth {
		return render.NewMalformedASTError(types.KindQuery, "maximum subquery depth (%d) exceeded", r.maxDepth)
	}
	ctx.depth++
	ctx.sql.WriteString("(")
	ctx.sql.Indent()
	err := r.renderQuery(q, ctx, true)
	ctx.sql.Dedent()
	ctx.sql.WriteString(")")
	ctx.depth--
	return err
}

func checkFailed(kind types.Kind, err error) error {
	return render.NewMalformedASTError(kind, "schema check: %v", err)
}
