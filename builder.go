package qrender

import (
	"errors"

	"github.com/zoobzio/qrender/internal/render"
	"github.com/zoobzio/qrender/internal/types"
)

// Builder provides a fluent API for constructing queries. The first error
// is kept and every later call is a no-op.
type Builder struct {
	q   *types.Query
	err error
}

func malformed(format string, args ...any) error {
	return render.NewMalformedASTError(types.KindQuery, format, args...)
}

// From creates a new query builder reading from source: a table, a join, a
// derived query or a table-valued function. A nil source selects without a
// FROM clause.
func From(source types.Node) *Builder {
	b := &Builder{q: &types.Query{Source: source}}
	switch source.(type) {
	case nil, *types.Table, *types.Join, *types.Query, *types.UserFunction:
	default:
		b.err = render.NewUnsupportedConstructError("builder", source.Kind(), "as a source")
	}
	return b
}

// FromQuery creates a builder reading from the query built by sub, aliased.
func FromQuery(sub *Builder, alias string) *Builder {
	if sub.err != nil {
		return &Builder{q: &types.Query{}, err: sub.err}
	}
	derived := sub.q.Clone()
	derived.Alias = alias
	return From(derived)
}

// Query returns the query under construction.
func (b *Builder) Query() *types.Query {
	return b.q
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error {
	return b.err
}

// Select adds fields to the select list. No fields selects everything.
func (b *Builder) Select(fields ...types.Node) *Builder {
	if b.err != nil {
		return b
	}
	for _, f := range fields {
		if f == nil {
			b.err = malformed("nil field in select list")
			return b
		}
	}
	b.q.SelectList = append(b.q.SelectList, fields...)
	return b
}

// SelectAll adds table.* for each table alongside the select list.
func (b *Builder) SelectAll(tables ...*types.Table) *Builder {
	if b.err != nil {
		return b
	}
	b.q.SelectAllFrom = append(b.q.SelectAllFrom, tables...)
	return b
}

// Where adds a predicate joined to the existing filter with AND.
func (b *Builder) Where(p types.Predicate) *Builder {
	return b.addPredicate(p, types.AND)
}

// And is an alias of Where.
func (b *Builder) And(p types.Predicate) *Builder {
	return b.addPredicate(p, types.AND)
}

// Or adds a predicate joined to the existing filter with OR.
func (b *Builder) Or(p types.Predicate) *Builder {
	return b.addPredicate(p, types.OR)
}

func (b *Builder) addPredicate(p types.Predicate, j types.Joiner) *Builder {
	if b.err != nil {
		return b
	}
	if p == nil {
		b.err = malformed("nil predicate")
		return b
	}
	if b.q.Where == nil {
		b.q.Where = &types.PredicateGroup{}
	}
	b.q.Where.Members = append(b.q.Where.Members, withJoiner(p, j))
	return b
}

// Join adds a join against the query source. Cross joins and APPLY take no
// condition; every other join requires one.
func (b *Builder) Join(kind types.JoinType, target types.Node, on types.Predicate) *Builder {
	if b.err != nil {
		return b
	}
	if target == nil {
		b.err = render.NewMalformedASTError(types.KindJoin, "nil join target")
		return b
	}
	if !kind.TakesCondition() && on != nil {
		b.err = render.NewMalformedASTError(types.KindJoin, "%s cannot have ON clause", kind)
		return b
	}
	if kind.TakesCondition() && on == nil {
		b.err = render.NewMalformedASTError(types.KindJoin, "%s requires ON clause", kind)
		return b
	}

	join := &types.Join{Type: kind, Target: target}
	if on != nil {
		if g, ok := on.(*types.PredicateGroup); ok {
			join.On = g
		} else {
			join.On = &types.PredicateGroup{Members: []types.Predicate{on}}
		}
	}
	b.q.Joins = append(b.q.Joins, join)
	return b
}

// InnerJoin adds an INNER JOIN.
func (b *Builder) InnerJoin(target types.Node, on types.Predicate) *Builder {
	return b.Join(types.InnerJoin, target, on)
}

// LeftJoin adds a LEFT JOIN.
func (b *Builder) LeftJoin(target types.Node, on types.Predicate) *Builder {
	return b.Join(types.LeftJoin, target, on)
}

// CrossApply adds a CROSS APPLY.
func (b *Builder) CrossApply(target types.Node) *Builder {
	return b.Join(types.CrossApply, target, nil)
}

// GroupBy adds grouping expressions.
func (b *Builder) GroupBy(exprs ...types.Node) *Builder {
	if b.err != nil {
		return b
	}
	b.q.GroupBy = append(b.q.GroupBy, exprs...)
	return b
}

// OrderBy adds an ordering key.
func (b *Builder) OrderBy(expr types.Node, direction types.Direction) *Builder {
	if b.err != nil {
		return b
	}
	if expr == nil {
		b.err = malformed("nil order key")
		return b
	}
	b.q.OrderBy = append(b.q.OrderBy, types.OrderKey{Expr: expr, Direction: direction})
	return b
}

// Distinct sets the DISTINCT flag.
func (b *Builder) Distinct() *Builder {
	if b.err != nil {
		return b
	}
	b.q.Distinct = true
	return b
}

// Skip sets the number of rows to skip.
func (b *Builder) Skip(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		b.err = malformed("skip must be non-negative, got %d", n)
		return b
	}
	b.q.Offset = n
	return b
}

// Take sets the maximum number of rows to return.
func (b *Builder) Take(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		b.err = malformed("take must be non-negative, got %d", n)
		return b
	}
	b.q.Limit = n
	return b
}

// UnionAll appends the queries built by others with UNION ALL.
func (b *Builder) UnionAll(others ...*Builder) *Builder {
	if b.err != nil {
		return b
	}
	for _, o := range others {
		if o.err != nil {
			b.err = o.err
			return b
		}
		b.q.Unions = append(b.q.Unions, o.q)
	}
	return b
}

// Any shapes the query into 1 when any row matches, else 0.
func (b *Builder) Any() *Builder {
	if b.err != nil {
		return b
	}
	if b.q.All || b.q.Contains {
		b.err = malformed("any, all and contains are mutually exclusive")
		return b
	}
	b.q.Any = true
	return b
}

// AnyWhere adds p to the filter and shapes the query with Any.
func (b *Builder) AnyWhere(p types.Predicate) *Builder {
	return b.Where(p).Any()
}

// All shapes the query into 1 when every row matching the existing filter
// satisfies p, else 0.
func (b *Builder) All(p types.Predicate) *Builder {
	if b.err != nil {
		return b
	}
	if p == nil {
		b.err = malformed("nil predicate")
		return b
	}
	if b.q.Any || b.q.Contains {
		b.err = malformed("any, all and contains are mutually exclusive")
		return b
	}

	// The renderer tests NOT EXISTS over the negated filter. Folding the
	// existing filter F in as NOT F OR p makes that F AND NOT p.
	if b.q.Where.IsEmpty() {
		b.q.Where = &types.PredicateGroup{Members: []types.Predicate{p}}
	} else {
		existing := *b.q.Where
		existing.Negated = !existing.Negated
		existing.Joiner = ""
		b.q.Where = &types.PredicateGroup{Members: []types.Predicate{&existing, withJoiner(p, types.OR)}}
	}
	b.q.All = true
	return b
}

// Contains shapes the query into 1 when probe is among the values of its
// single selected field, else 0.
func (b *Builder) Contains(probe types.Node) *Builder {
	if b.err != nil {
		return b
	}
	if probe == nil {
		b.err = malformed("contains requires a probe value")
		return b
	}
	if b.q.Any || b.q.All {
		b.err = malformed("any, all and contains are mutually exclusive")
		return b
	}
	if len(b.q.SelectList) != 1 {
		b.err = malformed("contains requires exactly one selected field, got %d", len(b.q.SelectList))
		return b
	}
	b.q.Contains = true
	b.q.ContainsProbe = probe
	return b
}

// Count shapes the query into COUNT over its single selected field, or
// COUNT(*) when nothing is selected.
func (b *Builder) Count() *Builder {
	if b.err != nil {
		return b
	}
	if len(b.q.SelectList) == 0 && len(b.q.SelectAllFrom) == 0 {
		b.q.SelectList = []types.Node{&types.AggregateCall{Func: types.AggCount}}
		b.q.IsAggregateShaped = true
		return b
	}
	return b.aggregate(types.AggCount)
}

// Sum shapes the query into SUM over its single selected field.
func (b *Builder) Sum() *Builder { return b.aggregate(types.AggSum) }

// Average shapes the query into AVG over its single selected field.
func (b *Builder) Average() *Builder { return b.aggregate(types.AggAvg) }

// Min shapes the query into MIN over its single selected field.
func (b *Builder) Min() *Builder { return b.aggregate(types.AggMin) }

// Max shapes the query into MAX over its single selected field.
func (b *Builder) Max() *Builder { return b.aggregate(types.AggMax) }

func (b *Builder) aggregate(fn types.AggregateFunc) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.q.SelectList) != 1 || len(b.q.SelectAllFrom) != 0 {
		b.err = malformed("%s requires exactly one selected field, got %d",
			fn, len(b.q.SelectList)+len(b.q.SelectAllFrom))
		return b
	}

	field := b.q.SelectList[0]
	if c, ok := field.(*types.Column); ok && c.Alias != "" {
		plain := *c
		plain.Alias = ""
		field = &plain
	}
	if a, ok := field.(*types.Aliased); ok {
		field = a.Expr
	}
	if _, ok := field.(*types.AggregateCall); ok {
		b.err = malformed("%s over an aggregate", fn)
		return b
	}

	b.q.SelectList = []types.Node{&types.AggregateCall{Func: fn, Arg: field}}
	b.q.IsAggregateShaped = true
	return b
}

// Build returns the query or the first error recorded.
func (b *Builder) Build() (*types.Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.q, nil
}

// MustBuild returns the query or panics on error.
func (b *Builder) MustBuild() *types.Query {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// Render builds the query and renders it with r.
func (b *Builder) Render(r Renderer, naming types.NamingConvention) (*types.Command, error) {
	if r == nil {
		return nil, errors.New("renderer cannot be nil")
	}
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	return r.Render(q, naming)
}

// MustRender builds and renders the query or panics on error.
func (b *Builder) MustRender(r Renderer, naming types.NamingConvention) *types.Command {
	cmd, err := b.Render(r, naming)
	if err != nil {
		panic(err)
	}
	return cmd
}
