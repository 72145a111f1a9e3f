package mssql

import (
	"github.com/zoobzio/qrender/internal/render"
	"github.com/zoobzio/qrender/internal/types"
)

// renderExpr renders a value expression.
//
//nolint:gocyclo // one case per node kind
func (r *Renderer) renderExpr(n types.Node, ctx *renderContext) error {
	switch e := n.(type) {
	case *types.Column:
		_, err := r.renderColumn(e, ctx)
		return err
	case *types.AllColumns:
		if e.Table == "" {
			ctx.sql.WriteString("*")
			return nil
		}
		ctx.sql.WriteString(r.qualifier(e.Table, ctx))
		ctx.sql.WriteString(".*")
		return nil
	case *types.Aliased:
		return r.renderExpr(e.Expr, ctx)
	case *types.Constant:
		return r.renderConstant(e.Value, ctx)
	case *types.RawLiteral:
		ctx.sql.WriteString(e.Text)
		return nil
	case *types.AggregateCall:
		return r.renderAggregate(e, ctx)
	case *types.BinaryOp:
		return r.renderBinary(e, ctx)
	case *types.UnaryOp:
		return r.renderUnary(e, ctx)
	case *types.ConditionalCase:
		return r.renderCase(e, ctx)
	case *types.RowNumber:
		return r.renderRowNumber(e, ctx)
	case *types.NodeList:
		ctx.sql.WriteString("(")
		if err := r.renderExprList(e.Items, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(")")
		return nil
	case *types.ScalarSubquery:
		if e.Query == nil {
			return render.NewMalformedASTError(types.KindScalarSubquery, "no query")
		}
		return r.renderNested(e.Query, ctx)
	case *types.Query:
		return r.renderNested(e, ctx)
	case *types.PredicateAsValue:
		return r.renderPredicateValue(e.Predicate, ctx)
	case *types.Comparison, *types.PredicateGroup, *types.Exists, *types.BooleanTest:
		return r.renderPredicateValue(e.(types.Predicate), ctx)
	case *types.Coalesce:
		if len(e.Values) < 2 {
			return render.NewMalformedASTError(types.KindCoalesce, "requires at least two values, got %d", len(e.Values))
		}
		ctx.sql.WriteString("COALESCE(")
		if err := r.renderExprList(e.Values, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(")")
		return nil
	case *types.NullIf:
		ctx.sql.WriteString("NULLIF(")
		if err := r.renderExprList([]types.Node{e.Value, e.Compare}, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(")")
		return nil
	case *types.Cast:
		return r.renderCast(e, ctx)
	case *types.StringFunc:
		return r.renderStringFunc(e, ctx)
	case *types.DateFunc:
		return r.renderDateFunc(e, ctx)
	case *types.NumericFunc:
		return r.renderNumericFunc(e, ctx)
	case nil:
		return render.NewMalformedASTError(types.KindQuery, "missing expression")
	default:
		return render.NewUnsupportedConstructError(Dialect, n.Kind(), "as a value")
	}
}

func (r *Renderer) renderExprList(list []types.Node, ctx *renderContext) error {
	for i, n := range list {
		if i > 0 {
			ctx.sql.WriteString(", ")
		}
		if err := r.renderExpr(n, ctx); err != nil {
			return err
		}
	}
	return nil
}

// renderColumn writes a column reference and returns its physical name.
func (r *Renderer) renderColumn(c *types.Column, ctx *renderContext) (string, error) {
	entity, name, derived := physicalName(c, ctx.scope, ctx.naming)
	if !derived && ctx.checker != nil && entity != "" {
		if err := ctx.checker.CheckColumn(entity, c.Name); err != nil {
			return "", checkFailed(types.KindColumn, err)
		}
	}

	if c.Table != "" {
		ctx.sql.WriteString(r.qualifier(c.Table, ctx))
		ctx.sql.WriteString(".")
	}
	ctx.sql.WriteString(r.quoteIdentifier(name))
	return name, nil
}

// physicalName resolves the entity a column belongs to in scope and the name
// it is emitted as. Columns of derived tables keep the name as written.
func physicalName(c *types.Column, scope *render.Scope, nc types.NamingConvention) (entity, name string, derived bool) {
	if c.Table != "" {
		var found bool
		entity, derived, found = scope.Resolve(c.Table)
		if !found {
			entity = c.Table
		}
	} else {
		entity, derived, _ = scope.Primary()
	}

	switch {
	case derived:
		return entity, c.Name, true
	case c.Reference:
		return entity, nc.ForeignKeyName(entity, c.Name), false
	}
	return entity, nc.ColumnName(entity, c.Name), false
}

// renderConstant writes the encoding of a constant: NULL, 1 or 0, '', a
// comma-joined collection, or a bound parameter.
func (r *Renderer) renderConstant(value any, ctx *renderContext) error {
	v := render.Classify(value)
	switch v.Class {
	case render.ClassNull:
		ctx.sql.WriteString("NULL")
	case render.ClassBool:
		if v.Bool {
			ctx.sql.WriteString("1")
		} else {
			ctx.sql.WriteString("0")
		}
	case render.ClassEmptyString:
		ctx.sql.WriteString("''")
	case render.ClassCollection:
		if len(v.Members) == 0 {
			return render.NewMalformedASTError(types.KindConstant, "empty collection outside IN")
		}
		for i, m := range v.Members {
			if i > 0 {
				ctx.sql.WriteString(", ")
			}
			if err := r.renderConstant(m, ctx); err != nil {
				return err
			}
		}
	default:
		ctx.sql.WriteString(r.placeholder(ctx.params.Bind(v.Bound)))
	}
	return nil
}

func (r *Renderer) renderAggregate(a *types.AggregateCall, ctx *renderContext) error {
	switch a.Func {
	case types.AggCount, types.AggCountBig, types.AggSum, types.AggAvg, types.AggMin, types.AggMax:
	default:
		return render.NewUnsupportedConstructError(Dialect, types.KindAggregateCall, string(a.Func))
	}

	ctx.sql.WriteString(string(a.Func))
	ctx.sql.WriteString("(")
	if a.Arg == nil {
		if a.Func != types.AggCount && a.Func != types.AggCountBig {
			return render.NewMalformedASTError(types.KindAggregateCall, "%s requires an argument", a.Func)
		}
		if a.Distinct {
			return render.NewMalformedASTError(types.KindAggregateCall, "DISTINCT requires an argument")
		}
		ctx.sql.WriteString("*)")
		return nil
	}
	if a.Distinct {
		ctx.sql.WriteString("DISTINCT ")
	}
	if err := r.renderExpr(a.Arg, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(")")
	return nil
}

var binaryOperators = map[types.Operator]string{
	types.Add:      "+",
	types.Subtract: "-",
	types.Multiply: "*",
	types.Divide:   "/",
	types.Modulo:   "%",
	types.Concat:   "+",
	types.BitAnd:   "&",
	types.BitOr:    "|",
	types.BitXor:   "^",
}

// renderBinary renders (left op right). SQL Server has no shift operators,
// so shifts multiply or divide by a power of two.
func (r *Renderer) renderBinary(b *types.BinaryOp, ctx *renderContext) error {
	var sym string
	shift := false
	switch b.Operator {
	case types.ShiftLeft:
		sym, shift = "*", true
	case types.ShiftRight:
		sym, shift = "/", true
	default:
		var ok bool
		if sym, ok = binaryOperators[b.Operator]; !ok {
			return render.NewUnsupportedConstructError(Dialect, types.KindBinaryOp, "operator "+string(b.Operator))
		}
	}

	ctx.sql.WriteString("(")
	if err := r.renderExpr(b.Left, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(" ")
	ctx.sql.WriteString(sym)
	ctx.sql.WriteString(" ")
	if shift {
		ctx.sql.WriteString("POWER(2, ")
	}
	if err := r.renderExpr(b.Right, ctx); err != nil {
		return err
	}
	if shift {
		ctx.sql.WriteString(")")
	}
	ctx.sql.WriteString(")")
	return nil
}

func (r *Renderer) renderUnary(u *types.UnaryOp, ctx *renderContext) error {
	switch u.Operator {
	case types.Negate:
		ctx.sql.WriteString("-(")
	case types.BitNot:
		ctx.sql.WriteString("~(")
	case types.Not:
		// Logical NOT of a predicate value negates the predicate; bitwise
		// complement is only correct on bit operands.
		if pav, ok := u.Operand.(*types.PredicateAsValue); ok {
			return r.renderPredicateValue(&types.PredicateGroup{
				Members: []types.Predicate{pav.Predicate},
				Negated: true,
			}, ctx)
		}
		ctx.sql.WriteString("~(")
	default:
		return render.NewUnsupportedConstructError(Dialect, types.KindUnaryOp, "operator "+string(u.Operator))
	}

	if err := r.renderExpr(u.Operand, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(")")
	return nil
}

// renderPredicateValue coerces a predicate to 1 or 0.
func (r *Renderer) renderPredicateValue(p types.Predicate, ctx *renderContext) error {
	ctx.sql.WriteString("CASE WHEN ")
	if err := r.renderPredicate(p, ctx, false); err != nil {
		return err
	}
	ctx.sql.WriteString(" THEN 1 ELSE 0 END")
	return nil
}

func (r *Renderer) renderCase(c *types.ConditionalCase, ctx *renderContext) error {
	if len(c.Whens) == 0 {
		return render.NewMalformedASTError(types.KindConditionalCase, "no WHEN arms")
	}

	ctx.sql.WriteString("CASE")
	for i, when := range c.Whens {
		test, ok := predicateShaped(when.Test)
		if !ok {
			kind := types.Kind("nil")
			if when.Test != nil {
				kind = when.Test.Kind()
			}
			return render.NewMalformedASTError(types.KindConditionalCase,
				"test %d is not predicate-shaped: %s", i, kind)
		}
		ctx.sql.WriteString(" WHEN ")
		if err := r.renderPredicate(test, ctx, false); err != nil {
			return err
		}
		ctx.sql.WriteString(" THEN ")
		if err := r.renderExpr(when.Result, ctx); err != nil {
			return err
		}
	}

	if c.Else != nil {
		ctx.sql.WriteString(" ELSE ")
		if err := r.renderExpr(c.Else, ctx); err != nil {
			return err
		}
	}

	ctx.sql.WriteString(" END")
	return nil
}

// predicateShaped returns n as a predicate, unwrapping PredicateAsValue.
func predicateShaped(n types.Node) (types.Predicate, bool) {
	switch v := n.(type) {
	case *types.PredicateAsValue:
		if v.Predicate == nil {
			return nil, false
		}
		return v.Predicate, true
	case types.Predicate:
		return v, true
	}
	return nil, false
}

// renderRowNumber renders ROW_NUMBER() OVER(...). Without order keys the
// rows are numbered by the primary key of the source entity, or in no
// particular order when there is none.
func (r *Renderer) renderRowNumber(rn *types.RowNumber, ctx *renderContext) error {
	ctx.sql.WriteString("ROW_NUMBER() OVER(")
	if len(rn.PartitionBy) > 0 {
		ctx.sql.WriteString("PARTITION BY ")
		if err := r.renderExprList(rn.PartitionBy, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(" ")
	}

	ctx.sql.WriteString("ORDER BY ")
	if len(rn.OrderBy) > 0 {
		if err := r.renderOrderKeys(rn.OrderBy, ctx); err != nil {
			return err
		}
	} else if entity, derived, found := ctx.scope.Primary(); found && !derived && entity != "" {
		ctx.sql.WriteString(r.quoteIdentifier(ctx.naming.PrimaryKeyName(entity)))
	} else {
		ctx.sql.WriteString("(SELECT 1)")
	}

	ctx.sql.WriteString(")")
	return nil
}

func (r *Renderer) renderCast(c *types.Cast, ctx *renderContext) error {
	sqlType, ok := castTypes[c.Type]
	if !ok {
		return render.NewUnsupportedConstructError(Dialect, types.KindCast, "type "+string(c.Type))
	}
	ctx.sql.WriteString("CAST(")
	if err := r.renderExpr(c.Operand, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(" AS ")
	ctx.sql.WriteString(sqlType)
	ctx.sql.WriteString(")")
	return nil
}

var castTypes = map[types.CastType]string{
	types.CastString:   "NVARCHAR(MAX)",
	types.CastInt:      "INT",
	types.CastBigint:   "BIGINT",
	types.CastDecimal:  "DECIMAL(38, 10)",
	types.CastFloat:    "FLOAT",
	types.CastBool:     "BIT",
	types.CastDate:     "DATE",
	types.CastDateTime: "DATETIME2",
	types.CastGUID:     "UNIQUEIDENTIFIER",
	types.CastBinary:   "VARBINARY(MAX)",
}
