package render

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/zoobzio/qrender/internal/types"
)

// RowNumberColumn is the name of the synthetic column paging filters on.
const RowNumberColumn = "RowNumber"

// Shape is the form a query takes before it is rendered as plain SELECT text.
type Shape int

const (
	ShapePlain Shape = iota
	ShapePaged
	ShapeAny
	ShapeAll
	ShapeContains
	ShapeSetAggregate
)

func (s Shape) String() string {
	switch s {
	case ShapePaged:
		return "paged"
	case ShapeAny:
		return "any"
	case ShapeAll:
		return "all"
	case ShapeContains:
		return "contains"
	case ShapeSetAggregate:
		return "set-aggregate"
	default:
		return "plain"
	}
}

// ResolveShape returns the shape of q, checked in priority order paged,
// set-aggregate, any, all, contains. An aggregate-shaped query without GROUP
// BY is set-aggregate when it takes a limited or DISTINCT row set. It also checks the structural invariants each shape and
// aggregate shaping depend on. Dialect names the caller in errors.
func ResolveShape(q *types.Query, dialect string) (Shape, error) {
	if q.Offset < 0 || q.Limit < 0 {
		return ShapePlain, NewMalformedASTError(types.KindQuery, "negative offset or limit")
	}

	flags := 0
	for _, set := range []bool{q.Any, q.All, q.Contains} {
		if set {
			flags++
		}
	}
	if flags > 1 {
		return ShapePlain, NewMalformedASTError(types.KindQuery, "any, all and contains are mutually exclusive")
	}

	if q.IsAggregateShaped {
		if _, err := shapedAggregate(q); err != nil {
			return ShapePlain, err
		}
	}

	if q.Contains {
		if q.ContainsProbe == nil {
			return ShapePlain, NewMalformedASTError(types.KindQuery, "contains requires a probe value")
		}
		if n := len(q.SelectList) + len(q.SelectAllFrom); n != 1 {
			return ShapePlain, NewMalformedASTError(types.KindQuery,
				"contains requires exactly one selected field, got %d", n)
		}
	}

	switch {
	case q.Offset > 0:
		if len(q.Unions) > 0 {
			return ShapePlain, NewUnsupportedConstructError(dialect, types.KindQuery, "paging over UNION ALL",
				"page a query whose source is the union instead")
		}
		return ShapePaged, nil
	case q.IsAggregateShaped && len(q.GroupBy) == 0 && (q.Limit > 0 || q.Distinct):
		return ShapeSetAggregate, nil
	case q.Any:
		return ShapeAny, nil
	case q.All:
		return ShapeAll, nil
	case q.Contains:
		return ShapeContains, nil
	}
	return ShapePlain, nil
}

// shapedAggregate returns the single aggregate call of an aggregate-shaped
// query.
func shapedAggregate(q *types.Query) (*types.AggregateCall, error) {
	if len(q.SelectList) != 1 {
		return nil, NewMalformedASTError(types.KindQuery,
			"aggregate shaping requires exactly one selected field, got %d", len(q.SelectList))
	}
	field := q.SelectList[0]
	if a, ok := field.(*types.Aliased); ok {
		field = a.Expr
	}
	agg, ok := field.(*types.AggregateCall)
	if !ok {
		return nil, NewMalformedASTError(types.KindQuery,
			"aggregate shaping requires an aggregate call, got %s", q.SelectList[0].Kind())
	}
	return agg, nil
}

// Derivation names the derived tables a rewrite introduces and the columns
// they expose. Alias returns a fresh table alias on every call; OutputName
// returns the physical name a column of the rewritten query is emitted as.
type Derivation struct {
	Alias      func() string
	OutputName func(c *types.Column) string
}

// valueColumn is the name an aggregated argument is exposed as by the derived
// table it is computed in.
const valueColumn = "Value"

// Page rewrites a paged query into an outer query filtering on the row
// number computed by an inner query. A DISTINCT query is de-duplicated in its
// own derived table before rows are numbered, since ROW_NUMBER makes every
// row distinct. Shape flags move to the outer query; the input is not
// modified.
func Page(q *types.Query, d Derivation) (*types.Query, error) {
	inner := q.Clone()
	inner.Offset, inner.Limit = 0, 0
	inner.Any, inner.All, inner.Contains = false, false, false
	inner.ContainsProbe = nil
	inner.OrderBy = nil
	inner.IsAggregateShaped = false

	var agg *types.AggregateCall
	if q.IsAggregateShaped {
		agg, _ = shapedAggregate(q) //nolint:errcheck // checked by ResolveShape
		inner.SelectList = valueList(q, agg)
		inner.SelectAllFrom = nil
	} else if len(inner.SelectList) == 0 && len(inner.SelectAllFrom) == 0 {
		inner.SelectList = []types.Node{&types.AllColumns{Table: SourceRef(q.Source)}}
	}

	p := newProjection(inner, d)
	inner.SelectList = p.fields

	order := q.OrderBy
	if q.Distinct {
		inner.Alias = d.Alias()
		var err error
		if order, err = p.remap(q.OrderBy, inner.Alias); err != nil {
			return nil, err
		}
		inner = &types.Query{Source: inner, SelectList: p.refs(inner.Alias, false)}
	}
	inner.SelectList = append(inner.SelectList, &types.Aliased{
		Expr:  &types.RowNumber{OrderBy: order},
		Alias: RowNumberColumn,
	})
	alias := d.Alias()
	inner.Alias = alias

	outer := &types.Query{
		Source:        inner,
		Alias:         q.Alias,
		Any:           q.Any,
		All:           q.All,
		Contains:      q.Contains,
		ContainsProbe: q.ContainsProbe,
		OrderBy:       []types.OrderKey{{Expr: &types.RawLiteral{Text: RowNumberColumn}, Direction: types.ASC}},
	}
	if agg != nil {
		outer.SelectList = []types.Node{rebind(agg, alias)}
		outer.IsAggregateShaped = true
	} else {
		outer.SelectList = p.refs(alias, true)
	}

	row := &types.RawLiteral{Text: RowNumberColumn}
	members := []types.Predicate{
		&types.Comparison{Left: row, Operator: types.GreaterThan, Right: &types.Constant{Value: q.Offset}},
	}
	if q.Limit > 0 {
		members = append(members, &types.Comparison{
			Left:     row,
			Operator: types.LessThanOrEqual,
			Right:    &types.Constant{Value: q.Offset + q.Limit},
			Joiner:   types.AND,
		})
	}
	outer.Where = &types.PredicateGroup{Members: members}

	return outer, nil
}

// AggregateOver rewrites an aggregate-shaped query whose row set is limited
// or de-duplicated. TOP and DISTINCT apply to the rows of a derived table and
// the aggregate is computed over them. Shape flags move to the outer query;
// the input is not modified.
func AggregateOver(q *types.Query, d Derivation) *types.Query {
	agg, _ := shapedAggregate(q) //nolint:errcheck // checked by ResolveShape

	inner := q.Clone()
	inner.Any, inner.All, inner.Contains = false, false, false
	inner.ContainsProbe = nil
	inner.IsAggregateShaped = false
	inner.SelectList = valueList(q, agg)
	inner.SelectAllFrom = nil
	inner.Alias = d.Alias()

	return &types.Query{
		Source:            inner,
		SelectList:        []types.Node{rebind(agg, inner.Alias)},
		Alias:             q.Alias,
		Any:               q.Any,
		All:               q.All,
		Contains:          q.Contains,
		ContainsProbe:     q.ContainsProbe,
		IsAggregateShaped: true,
	}
}

// valueList is the select list of the derived table an aggregate is computed
// over: its argument as Value, or every column of the source for COUNT(*).
func valueList(q *types.Query, agg *types.AggregateCall) []types.Node {
	if agg.Arg == nil {
		return []types.Node{&types.AllColumns{Table: SourceRef(q.Source)}}
	}
	return []types.Node{&types.Aliased{Expr: agg.Arg, Alias: valueColumn}}
}

// rebind returns agg applied to the Value column of the derived table alias.
func rebind(agg *types.AggregateCall, alias string) *types.AggregateCall {
	rebound := &types.AggregateCall{Func: agg.Func, Distinct: agg.Distinct}
	if agg.Arg != nil {
		rebound.Arg = &types.Column{Table: alias, Name: valueColumn}
	}
	return rebound
}

// projection is the select list of a query about to become a derived table.
// Every field gets an output name unique within the table, and the name the
// caller selected it under is kept so an outer query can restore it.
type projection struct {
	fields  []types.Node
	names   []string // unique output name; "" for *
	exposed []string
	exprs   []types.Node // field without its alias
	all     bool
	rename  func(c *types.Column) string
	taken   map[string]bool
}

func newProjection(q *types.Query, d Derivation) *projection {
	p := &projection{
		rename: d.OutputName,
		taken:  map[string]bool{strings.ToLower(RowNumberColumn): true},
	}
	for i, f := range q.SelectList {
		switch v := f.(type) {
		case *types.AllColumns:
			p.fields = append(p.fields, v)
			p.names = append(p.names, "")
			p.exposed = append(p.exposed, "")
			p.exprs = append(p.exprs, v)
			p.all = true
		case *types.Column:
			plain := *v
			plain.Alias = ""
			exposed := v.Alias
			if exposed == "" {
				exposed = d.OutputName(&plain)
			}
			c := plain
			c.Alias = p.unique(exposed)
			p.add(&c, c.Alias, exposed, &plain)
		case *types.Aliased:
			name := p.unique(v.Alias)
			p.add(&types.Aliased{Expr: v.Expr, Alias: name}, name, v.Alias, v.Expr)
		default:
			name := p.unique(fmt.Sprintf("Column%d", i))
			p.add(&types.Aliased{Expr: f, Alias: name}, name, name, f)
		}
	}
	if len(q.SelectAllFrom) > 0 {
		p.all = true
	}
	return p
}

func (p *projection) add(field types.Node, name, exposed string, expr types.Node) {
	p.fields = append(p.fields, field)
	p.names = append(p.names, name)
	p.exposed = append(p.exposed, exposed)
	p.exprs = append(p.exprs, expr)
}

// unique returns name, or name followed by the first free number, compared
// case-insensitively as SQL Server compares column names.
func (p *projection) unique(name string) string {
	candidate := name
	for n := 1; p.taken[strings.ToLower(candidate)]; n++ {
		candidate = name + strconv.Itoa(n)
	}
	p.taken[strings.ToLower(candidate)] = true
	return candidate
}

// refs selects every field of the projection through alias. With restore,
// renamed fields are exposed under the name they were selected as.
func (p *projection) refs(alias string, restore bool) []types.Node {
	var list []types.Node
	for i, name := range p.names {
		if name == "" {
			continue
		}
		c := &types.Column{Table: alias, Name: name}
		if restore && p.exposed[i] != name {
			c.Alias = p.exposed[i]
		}
		list = append(list, c)
	}
	if p.all {
		list = append(list, &types.AllColumns{Table: alias})
	}
	return list
}

// remap rewrites order keys over the projection's source into references to
// its output columns through alias. A key must be a selected field, the name
// one was selected as, or a column covered by a selected *.
func (p *projection) remap(keys []types.OrderKey, alias string) ([]types.OrderKey, error) {
	out := make([]types.OrderKey, len(keys))
	for i, key := range keys {
		name, err := p.outputOf(key.Expr)
		if err != nil {
			return nil, err
		}
		out[i] = types.OrderKey{Expr: &types.Column{Table: alias, Name: name}, Direction: key.Direction}
	}
	return out, nil
}

func (p *projection) outputOf(expr types.Node) (string, error) {
	for i, e := range p.exprs {
		if p.names[i] != "" && reflect.DeepEqual(e, expr) {
			return p.names[i], nil
		}
	}
	c, ok := expr.(*types.Column)
	if ok && c.Table == "" {
		for i, exposed := range p.exposed {
			if p.names[i] != "" && exposed == c.Name {
				return p.names[i], nil
			}
		}
	}
	if ok && p.all {
		return p.rename(c), nil
	}
	return "", NewMalformedASTError(types.KindQuery, "ORDER BY of a DISTINCT page must be a selected field")
}

// SourceRef returns the qualifier the leftmost table of a source is known
// by, or "" when the source has none.
func SourceRef(source types.Node) string {
	switch s := source.(type) {
	case *types.Table:
		return s.Ref()
	case *types.Join:
		return SourceRef(s.Left)
	case *types.Query:
		return s.Alias
	case *types.UserFunction:
		if s.Alias != "" {
			return s.Alias
		}
		return s.Name
	}
	return ""
}

// AnyOf rewrites an any-shaped query to SELECT CASE WHEN EXISTS (...).
func AnyOf(q *types.Query) *types.Query {
	inner := q.Clone()
	inner.Any = false
	inner.OrderBy = nil
	return boolQuery(&types.Exists{Query: inner})
}

// AllOf rewrites an all-shaped query to SELECT CASE WHEN NOT EXISTS (...)
// over the inverted filter: all rows satisfy P when no row satisfies NOT P.
func AllOf(q *types.Query) *types.Query {
	inner := q.Clone()
	inner.All = false
	inner.OrderBy = nil
	if q.Where != nil {
		w := *q.Where
		w.Negated = !w.Negated
		inner.Where = &w
	} else {
		inner.Where = &types.PredicateGroup{Negated: true}
	}
	return boolQuery(&types.Exists{Query: inner, Negated: true})
}

// ContainsOf rewrites a contains-shaped query to
// SELECT CASE WHEN probe IN (...).
func ContainsOf(q *types.Query) *types.Query {
	inner := q.Clone()
	inner.Contains = false
	inner.ContainsProbe = nil
	inner.OrderBy = nil
	return boolQuery(&types.Comparison{
		Left:     q.ContainsProbe,
		Operator: types.IsIn,
		Right:    &types.ScalarSubquery{Query: inner},
	})
}

func boolQuery(p types.Predicate) *types.Query {
	return &types.Query{SelectList: []types.Node{&types.PredicateAsValue{Predicate: p}}}
}
