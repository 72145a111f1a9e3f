package mssql

import (
	"strings"

	"github.com/zoobzio/qrender/internal/render"
	"github.com/zoobzio/qrender/internal/types"
)

const (
	sqlTrue  = "1 = 1"
	sqlFalse = "1 = 0"
)

// renderPredicate renders any predicate. Nested is true for members of a
// group, which parenthesize themselves when they are groups.
func (r *Renderer) renderPredicate(p types.Predicate, ctx *renderContext, nested bool) error {
	switch pred := p.(type) {
	case *types.Comparison:
		return r.renderComparison(pred, ctx)
	case *types.PredicateGroup:
		return r.renderGroup(pred, ctx, nested)
	case *types.Exists:
		return r.renderExists(pred, ctx)
	case *types.BooleanTest:
		return r.renderBooleanTest(pred, ctx)
	case nil:
		return render.NewMalformedASTError(types.KindPredicateGroup, "nil predicate")
	default:
		return render.NewUnsupportedConstructError(Dialect, p.Kind(), "as a predicate")
	}
}

// renderGroup joins the members of g with their own joiners. Group negation
// wraps the whole group and is independent of member negation.
func (r *Renderer) renderGroup(g *types.PredicateGroup, ctx *renderContext, nested bool) error {
	if g == nil {
		ctx.sql.WriteString(sqlTrue)
		return nil
	}
	if g.IsEmpty() {
		if g.Negated {
			ctx.sql.WriteString(sqlFalse)
		} else {
			ctx.sql.WriteString(sqlTrue)
		}
		return nil
	}

	closing := g.Negated || nested
	switch {
	case g.Negated:
		ctx.sql.WriteString("NOT (")
	case nested:
		ctx.sql.WriteString("(")
	}

	for i, member := range g.Members {
		if i > 0 {
			ctx.sql.WriteString(" ")
			ctx.sql.WriteString(string(joiner(member)))
			ctx.sql.WriteString(" ")
		}
		if err := r.renderPredicate(member, ctx, true); err != nil {
			return err
		}
	}

	if closing {
		ctx.sql.WriteString(")")
	}
	return nil
}

func joiner(p types.Predicate) types.Joiner {
	if p == nil || p.Link() == "" {
		return types.AND
	}
	return p.Link()
}

func (r *Renderer) renderExists(e *types.Exists, ctx *renderContext) error {
	if e.Query == nil {
		return render.NewMalformedASTError(types.KindExists, "no query")
	}
	if e.Negated {
		ctx.sql.WriteString("NOT ")
	}
	ctx.sql.WriteString("EXISTS ")
	return r.renderNested(e.Query, ctx)
}

// renderBooleanTest renders a boolean-valued expression used as a whole
// predicate. Boolean constants fold to 1 = 1 or 1 = 0, a PredicateAsValue
// unwraps to its predicate, and anything else is compared with 1.
func (r *Renderer) renderBooleanTest(b *types.BooleanTest, ctx *renderContext) error {
	if b.Negated {
		ctx.sql.WriteString("NOT (")
	}

	switch op := b.Operand.(type) {
	case *types.PredicateAsValue:
		if err := r.renderPredicate(op.Predicate, ctx, false); err != nil {
			return err
		}
	case *types.Constant:
		v := render.Classify(op.Value)
		switch v.Class {
		case render.ClassBool:
			if v.Bool {
				ctx.sql.WriteString(sqlTrue)
			} else {
				ctx.sql.WriteString(sqlFalse)
			}
		case render.ClassNull:
			// NULL = 1 is never true.
			ctx.sql.WriteString(sqlFalse)
		default:
			return render.NewMalformedASTError(types.KindBooleanTest, "constant %v is not boolean", op.Value)
		}
	case nil:
		return render.NewMalformedASTError(types.KindBooleanTest, "no operand")
	default:
		if err := r.renderExpr(op, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(" = 1")
	}

	if b.Negated {
		ctx.sql.WriteString(")")
	}
	return nil
}

var comparisonOperators = map[types.Operator]string{
	types.Equals:             "=",
	types.NotEquals:          "<>",
	types.GreaterThan:        ">",
	types.GreaterThanOrEqual: ">=",
	types.LessThan:           "<",
	types.LessThanOrEqual:    "<=",
	types.Like:               "LIKE",
}

func (r *Renderer) renderComparison(c *types.Comparison, ctx *renderContext) error {
	if c.Negated {
		ctx.sql.WriteString("NOT (")
	}
	if err := r.renderComparisonBody(c.Left, c.Operator, c.Right, ctx); err != nil {
		return err
	}
	if c.Negated {
		ctx.sql.WriteString(")")
	}
	return nil
}

func (r *Renderer) renderComparisonBody(left types.Node, op types.Operator, right types.Node, ctx *renderContext) error {
	if left == nil || right == nil {
		return render.NewMalformedASTError(types.KindComparison, "missing operand")
	}

	if list, ok := right.(*types.NodeList); ok && op == types.Equals && isNull(left) {
		left, right = list, left
	}
	if list, ok := left.(*types.NodeList); ok {
		return r.renderTupleComparison(list, op, right, ctx)
	}

	if op == types.Equals || op == types.NotEquals {
		if isNull(right) || isNull(left) {
			other := left
			if isNull(left) {
				other = right
			}
			if err := r.renderExpr(other, ctx); err != nil {
				return err
			}
			if op == types.Equals {
				ctx.sql.WriteString(" IS NULL")
			} else {
				ctx.sql.WriteString(" IS NOT NULL")
			}
			return nil
		}
	}

	switch op {
	case types.IsIn:
		return r.renderIn(left, right, ctx)
	case types.Contains, types.StartsWith, types.EndsWith:
		return r.renderLike(left, op, right, ctx)
	}

	sym, ok := comparisonOperators[op]
	if !ok {
		return render.NewUnsupportedConstructError(Dialect, types.KindComparison, "operator "+string(op))
	}

	if err := r.renderExpr(left, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(" ")
	ctx.sql.WriteString(sym)
	ctx.sql.WriteString(" ")
	return r.renderExpr(right, ctx)
}

// isNull reports whether n is a constant encoding to NULL.
func isNull(n types.Node) bool {
	c, ok := n.(*types.Constant)
	return ok && render.Classify(c.Value).Class == render.ClassNull
}

// renderTupleComparison splits (a, b) = (x, y) into (a = x AND b = y). A
// tuple equal to NULL has every member NULL.
func (r *Renderer) renderTupleComparison(left *types.NodeList, op types.Operator, right types.Node, ctx *renderContext) error {
	if op != types.Equals {
		return render.NewUnsupportedConstructError(Dialect, types.KindNodeList, "operator "+string(op),
			"compare column lists with Equals only")
	}

	var values []types.Node
	switch rv := right.(type) {
	case *types.NodeList:
		values = rv.Items
	case *types.Constant:
		v := render.Classify(rv.Value)
		if v.Class == render.ClassNull {
			for range left.Items {
				values = append(values, rv)
			}
			break
		}
		if v.Class != render.ClassCollection {
			return render.NewMalformedASTError(types.KindNodeList, "compared with a scalar")
		}
		for _, m := range v.Members {
			values = append(values, &types.Constant{Value: m})
		}
	default:
		return render.NewUnsupportedConstructError(Dialect, types.KindNodeList, "compared with "+string(right.Kind()))
	}

	if len(values) != len(left.Items) {
		return render.NewMalformedASTError(types.KindNodeList,
			"arity mismatch: %d columns compared with %d values", len(left.Items), len(values))
	}
	if len(values) == 0 {
		return render.NewMalformedASTError(types.KindNodeList, "empty column list")
	}

	ctx.sql.WriteString("(")
	for i := range values {
		if i > 0 {
			ctx.sql.WriteString(" AND ")
		}
		if err := r.renderComparisonBody(left.Items[i], types.Equals, values[i], ctx); err != nil {
			return err
		}
	}
	ctx.sql.WriteString(")")
	return nil
}

// renderIn renders left IN (...). A statically empty set renders 1 = 0,
// since IN () is not valid SQL.
func (r *Renderer) renderIn(left, right types.Node, ctx *renderContext) error {
	switch rv := right.(type) {
	case *types.Constant:
		if render.IsEmptyCollection(rv.Value) {
			ctx.sql.WriteString(sqlFalse)
			return nil
		}
	case *types.NodeList:
		if len(rv.Items) == 0 {
			ctx.sql.WriteString(sqlFalse)
			return nil
		}
	}

	if err := r.renderExpr(left, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(" IN ")

	switch rv := right.(type) {
	case *types.ScalarSubquery:
		return r.renderExpr(rv, ctx)
	case *types.Query:
		return r.renderNested(rv, ctx)
	case *types.NodeList:
		return r.renderExpr(rv, ctx)
	}

	ctx.sql.WriteString("(")
	if err := r.renderExpr(right, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(")")
	return nil
}

// renderLike lowers Contains, StartsWith and EndsWith to LIKE with the
// wildcards concatenated around the operand, whose own wildcard characters
// match literally.
func (r *Renderer) renderLike(left types.Node, op types.Operator, right types.Node, ctx *renderContext) error {
	if err := r.renderExpr(left, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(" LIKE ")
	if op != types.StartsWith {
		ctx.sql.WriteString("'%' + ")
	}
	if err := r.renderLikeOperand(right, ctx); err != nil {
		return err
	}
	if op != types.EndsWith {
		ctx.sql.WriteString(" + '%'")
	}
	return nil
}

// likeEscaper brackets the characters LIKE treats as wildcards. The bracket
// itself goes first so the brackets it adds are not escaped again.
var likeEscaper = strings.NewReplacer("[", "[[]", "%", "[%]", "_", "[_]")

// renderLikeOperand binds a constant string already escaped and escapes any
// other operand with REPLACE.
func (r *Renderer) renderLikeOperand(n types.Node, ctx *renderContext) error {
	if c, ok := n.(*types.Constant); ok {
		v := render.Classify(c.Value)
		if text, ok := v.Bound.(string); ok && v.Class == render.ClassBound {
			ctx.sql.WriteString(r.placeholder(ctx.params.Bind(likeEscaper.Replace(text))))
			return nil
		}
		return r.renderExpr(n, ctx)
	}

	ctx.sql.WriteString("REPLACE(REPLACE(REPLACE(")
	if err := r.renderExpr(n, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(", '[', '[[]'), '%', '[%]'), '_', '[_]')")
	return nil
}
