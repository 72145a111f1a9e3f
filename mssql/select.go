package mssql

import (
	"github.com/zoobzio/qrender/internal/render"
	"github.com/zoobzio/qrender/internal/types"
)

// position is where a query is rendered, which decides whether it may order.
type position int

const (
	positionRoot position = iota
	positionNested
	positionUnion
)

// renderQuery resolves the shape of q and renders either its rewrite or the
// plain SELECT.
func (r *Renderer) renderQuery(q *types.Query, ctx *renderContext, nested bool) error {
	pos := positionRoot
	if nested {
		pos = positionNested
	}
	return r.renderShaped(q, ctx, pos)
}

func (r *Renderer) renderShaped(q *types.Query, ctx *renderContext, pos position) error {
	shape, err := render.ResolveShape(q, Dialect)
	if err != nil {
		return err
	}

	switch shape {
	case render.ShapePaged:
		paged, err := render.Page(q, r.derivation(q, ctx))
		if err != nil {
			return err
		}
		return r.renderShaped(paged, ctx, pos)
	case render.ShapeSetAggregate:
		return r.renderShaped(render.AggregateOver(q, r.derivation(q, ctx)), ctx, pos)
	case render.ShapeAny:
		return r.renderShaped(render.AnyOf(q), ctx, pos)
	case render.ShapeAll:
		return r.renderShaped(render.AllOf(q), ctx, pos)
	case render.ShapeContains:
		return r.renderShaped(render.ContainsOf(q), ctx, pos)
	}
	return r.renderSelect(q, ctx, pos)
}

// derivation names the derived tables a rewrite of q introduces, and the
// columns they expose by the physical names q would select.
func (r *Renderer) derivation(q *types.Query, ctx *renderContext) render.Derivation {
	scope := render.NewScope(ctx.scope)
	if q.Source != nil {
		scope.Collect(q.Source)
	}
	for _, j := range q.Joins {
		scope.Collect(j.Target)
	}
	return render.Derivation{
		Alias:      ctx.nextAlias,
		OutputName: func(c *types.Column) string {
			_, name, _ := physicalName(c, scope, ctx.naming)
			return name
		},
	}
}

func (r *Renderer) renderSelect(q *types.Query, ctx *renderContext, pos position) error {
	scope := render.NewScope(ctx.scope)
	ctx.scope = scope
	defer func() { ctx.scope = scope.Parent() }()

	source := r.aliasSource(q.Source, ctx)
	joins := make([]*types.Join, len(q.Joins))
	for i, j := range q.Joins {
		joined := *j
		joined.Target = r.aliasSource(j.Target, ctx)
		joins[i] = &joined
	}
	if source != nil {
		scope.Collect(source)
	}
	for _, j := range joins {
		scope.Collect(j.Target)
	}

	ctx.sql.WriteString("SELECT ")

	if q.Distinct {
		ctx.sql.WriteString("DISTINCT ")
	}

	top := q.Limit > 0
	if top {
		ctx.sql.WriteString("TOP (")
		if err := r.renderConstant(q.Limit, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(") ")
	}

	if err := r.renderSelectList(q, ctx); err != nil {
		return err
	}

	if source != nil {
		ctx.sql.Newline()
		ctx.sql.WriteString("FROM ")
		if err := r.renderSource(source, ctx); err != nil {
			return err
		}
	}

	for _, join := range joins {
		if err := r.renderJoin(join, ctx); err != nil {
			return err
		}
	}

	if q.Where != nil && (!q.Where.IsEmpty() || q.Where.Negated) {
		ctx.sql.Newline()
		ctx.sql.WriteString("WHERE ")
		if err := r.renderGroup(q.Where, ctx, false); err != nil {
			return err
		}
	}

	if len(q.GroupBy) > 0 {
		ctx.sql.Newline()
		ctx.sql.WriteString("GROUP BY ")
		for i, expr := range q.GroupBy {
			if i > 0 {
				ctx.sql.WriteString(", ")
			}
			if err := r.renderExpr(expr, ctx); err != nil {
				return err
			}
		}
	}

	if len(q.Unions) > 0 {
		ctx.scope = scope.Parent()
		for _, member := range q.Unions {
			if member == nil {
				return render.NewMalformedASTError(types.KindQuery, "nil UNION ALL member")
			}
			ctx.sql.Newline()
			ctx.sql.WriteString("UNION ALL")
			ctx.sql.Newline()
			if err := r.renderShaped(member, ctx, positionUnion); err != nil {
				return err
			}
		}
		ctx.scope = scope
	}

	if r.orders(q, pos, top) {
		ctx.sql.Newline()
		ctx.sql.WriteString("ORDER BY ")
		if err := r.renderOrderKeys(q.OrderBy, ctx); err != nil {
			return err
		}
	}

	return nil
}

// orders reports whether the ORDER BY of q is emitted. Ordering is only
// meaningful at the root or alongside TOP; UNION ALL members, aggregate
// shaped queries and ungrouped aggregates never order.
func (r *Renderer) orders(q *types.Query, pos position, top bool) bool {
	if len(q.OrderBy) == 0 || q.IsAggregateShaped {
		return false
	}
	if q.SelectsAggregate() && len(q.GroupBy) == 0 {
		return false
	}
	switch pos {
	case positionUnion:
		return false
	case positionNested:
		return top
	}
	return true
}

func (r *Renderer) renderSelectList(q *types.Query, ctx *renderContext) error {
	if len(q.SelectList) == 0 && len(q.SelectAllFrom) == 0 {
		ctx.sql.WriteString("*")
		return nil
	}

	n := 0
	sep := func() {
		if n > 0 {
			ctx.sql.WriteString(", ")
		}
		n++
	}

	for _, field := range q.SelectList {
		sep()
		if err := r.renderSelectItem(field, ctx); err != nil {
			return err
		}
	}

	for _, t := range q.SelectAllFrom {
		sep()
		ctx.sql.WriteString(r.qualifier(t.Ref(), ctx))
		ctx.sql.WriteString(".*")
	}

	return nil
}

func (r *Renderer) renderSelectItem(field types.Node, ctx *renderContext) error {
	switch f := field.(type) {
	case *types.Column:
		name, err := r.renderColumn(f, ctx)
		if err != nil {
			return err
		}
		if f.Alias != "" && f.Alias != name {
			ctx.sql.WriteString(" AS ")
			ctx.sql.WriteString(r.quoteIdentifier(f.Alias))
		}
		return nil
	case *types.Aliased:
		if err := r.renderExpr(f.Expr, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(" AS ")
		ctx.sql.WriteString(r.quoteIdentifier(f.Alias))
		return nil
	}
	return r.renderExpr(field, ctx)
}

func (r *Renderer) renderOrderKeys(keys []types.OrderKey, ctx *renderContext) error {
	for i, key := range keys {
		if i > 0 {
			ctx.sql.WriteString(", ")
		}
		if err := r.renderExpr(key.Expr, ctx); err != nil {
			return err
		}
		if key.Direction == types.DESC {
			ctx.sql.WriteString(" DESC")
		}
	}
	return nil
}

// aliasSource gives every derived table in a source an alias, copying the
// nodes it changes.
func (r *Renderer) aliasSource(source types.Node, ctx *renderContext) types.Node {
	switch s := source.(type) {
	case *types.Query:
		if s.Alias == "" {
			c := s.Clone()
			c.Alias = ctx.nextAlias()
			return c
		}
	case *types.Join:
		j := *s
		j.Left = r.aliasSource(s.Left, ctx)
		j.Target = r.aliasSource(s.Target, ctx)
		return &j
	}
	return source
}

func (r *Renderer) renderSource(source types.Node, ctx *renderContext) error {
	switch s := source.(type) {
	case *types.Table:
		return r.renderTable(s, ctx)
	case *types.Join:
		if s.Left == nil {
			return render.NewMalformedASTError(types.KindJoin, "join used as a source has no left side")
		}
		if err := r.renderSource(s.Left, ctx); err != nil {
			return err
		}
		return r.renderJoin(s, ctx)
	case *types.Query:
		if err := r.renderNested(s, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(" AS ")
		ctx.sql.WriteString(r.quoteIdentifier(s.Alias))
		return nil
	case *types.UserFunction:
		return r.renderUserFunction(s, ctx)
	case nil:
		return render.NewMalformedASTError(types.KindQuery, "nil source")
	default:
		return render.NewUnsupportedConstructError(Dialect, source.Kind(), "as a source")
	}
}

func (r *Renderer) renderTable(t *types.Table, ctx *renderContext) error {
	if ctx.checker != nil {
		if err := ctx.checker.CheckTable(t.Name); err != nil {
			return checkFailed(types.KindTable, err)
		}
	}

	schema := t.Schema
	if schema == "" {
		schema = ctx.naming.SchemaName(t.Name)
	}
	if schema != "" {
		ctx.sql.WriteString(r.quoteIdentifier(schema))
		ctx.sql.WriteString(".")
	}
	ctx.sql.WriteString(r.quoteIdentifier(ctx.naming.TableName(t.Name)))

	if t.Alias != "" {
		ctx.sql.WriteString(" AS ")
		ctx.sql.WriteString(r.quoteIdentifier(t.Alias))
	}
	return nil
}

func (r *Renderer) renderUserFunction(fn *types.UserFunction, ctx *renderContext) error {
	if fn.Schema != "" {
		ctx.sql.WriteString(r.quoteIdentifier(fn.Schema))
		ctx.sql.WriteString(".")
	}
	ctx.sql.WriteString(r.quoteIdentifier(fn.Name))
	ctx.sql.WriteString("(")
	if err := r.renderExprList(fn.Args, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(")")

	if fn.Alias != "" {
		ctx.sql.WriteString(" AS ")
		ctx.sql.WriteString(r.quoteIdentifier(fn.Alias))
	}
	return nil
}

func (r *Renderer) renderJoin(join *types.Join, ctx *renderContext) error {
	switch join.Type {
	case types.InnerJoin, types.LeftJoin, types.RightJoin, types.FullJoin,
		types.CrossJoin, types.CrossApply, types.OuterApply:
	default:
		return render.NewUnsupportedConstructError(Dialect, types.KindJoin, string(join.Type))
	}

	ctx.sql.Newline()
	ctx.sql.WriteString(string(join.Type))
	ctx.sql.WriteString(" ")
	if err := r.renderSource(join.Target, ctx); err != nil {
		return err
	}

	if !join.Type.TakesCondition() {
		if !join.On.IsEmpty() {
			return render.NewMalformedASTError(types.KindJoin, "%s does not take a condition", join.Type)
		}
		return nil
	}

	ctx.sql.WriteString(" ON ")
	if join.On == nil {
		ctx.sql.WriteString("1 = 1")
		return nil
	}
	return r.renderGroup(join.On, ctx, false)
}

// qualifier renders the prefix of a column qualified by ref: the alias as
// written, or the physical table name of the entity.
func (r *Renderer) qualifier(ref string, ctx *renderContext) string {
	if ctx.scope.IsAlias(ref) {
		return r.quoteIdentifier(ref)
	}
	entity, _, found := ctx.scope.Resolve(ref)
	if !found {
		entity = ref
	}
	return r.quoteIdentifier(ctx.naming.TableName(entity))
}
