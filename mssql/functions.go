package mssql

import (
	"strconv"

	"github.com/zoobzio/qrender/internal/render"
	"github.com/zoobzio/qrender/internal/types"
)

// checkArity validates the operand count of a scalar function.
func checkArity(kind types.Kind, name string, arity types.Arity, known bool, n int) error {
	if !known {
		return render.NewUnsupportedConstructError(Dialect, kind, name)
	}
	if !arity.Accepts(n) {
		return render.NewMalformedASTError(kind, "%s takes %s operands, got %d", name, describeArity(arity), n)
	}
	return nil
}

func describeArity(a types.Arity) string {
	switch {
	case a.Max < 0:
		return "at least " + strconv.Itoa(a.Min)
	case a.Min == a.Max:
		return strconv.Itoa(a.Min)
	default:
		return strconv.Itoa(a.Min) + " to " + strconv.Itoa(a.Max)
	}
}

// call writes NAME(arg, arg, ...).
func (r *Renderer) call(name string, args []types.Node, ctx *renderContext) error {
	ctx.sql.WriteString(name)
	ctx.sql.WriteString("(")
	if err := r.renderExprList(args, ctx); err != nil {
		return err
	}
	ctx.sql.WriteString(")")
	return nil
}

var simpleStringFuncs = map[types.StringFunction]string{
	types.StrLength:    "LEN",
	types.StrUpper:     "UPPER",
	types.StrLower:     "LOWER",
	types.StrTrim:      "TRIM",
	types.StrTrimStart: "LTRIM",
	types.StrTrimEnd:   "RTRIM",
	types.StrReplace:   "REPLACE",
	types.StrConcat:    "CONCAT",
	types.StrReverse:   "REVERSE",
	types.StrLeft:      "LEFT",
	types.StrRight:     "RIGHT",
}

// renderStringFunc renders a string function. Positions are zero-based in
// the AST and one-based in SQL Server.
func (r *Renderer) renderStringFunc(f *types.StringFunc, ctx *renderContext) error {
	arity, known := f.Func.Arity()
	if err := checkArity(types.KindStringFunc, string(f.Func), arity, known, len(f.Args)); err != nil {
		return err
	}

	if name, ok := simpleStringFuncs[f.Func]; ok {
		return r.call(name, f.Args, ctx)
	}

	switch f.Func {
	case types.StrSubstring:
		ctx.sql.WriteString("SUBSTRING(")
		if err := r.renderExpr(f.Args[0], ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(", (")
		if err := r.renderExpr(f.Args[1], ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(" + 1), ")
		length := types.Node(&types.StringFunc{Func: types.StrLength, Args: f.Args[:1]})
		if len(f.Args) == 3 {
			length = f.Args[2]
		}
		if err := r.renderExpr(length, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(")")
	case types.StrIndexOf:
		ctx.sql.WriteString("(")
		if err := r.call("CHARINDEX", []types.Node{f.Args[1], f.Args[0]}, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(" - 1)")
	case types.StrIsNullOrEmpty:
		ctx.sql.WriteString("CASE WHEN ")
		if err := r.renderExpr(f.Args[0], ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(" IS NULL OR ")
		if err := r.renderExpr(f.Args[0], ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(" = '' THEN 1 ELSE 0 END")
	default:
		return render.NewUnsupportedConstructError(Dialect, types.KindStringFunc, string(f.Func))
	}
	return nil
}

var dateParts = map[types.DateFunction]string{
	types.DateYear:      "YEAR",
	types.DateMonth:     "MONTH",
	types.DateDay:       "DAY",
	types.DateHour:      "HOUR",
	types.DateMinute:    "MINUTE",
	types.DateSecond:    "SECOND",
	types.DateDayOfYear: "DAYOFYEAR",
}

var dateAdds = map[types.DateFunction]string{
	types.DateAddYears:   "YEAR",
	types.DateAddMonths:  "MONTH",
	types.DateAddDays:    "DAY",
	types.DateAddHours:   "HOUR",
	types.DateAddMinutes: "MINUTE",
	types.DateAddSeconds: "SECOND",
}

func (r *Renderer) renderDateFunc(f *types.DateFunc, ctx *renderContext) error {
	arity, known := f.Func.Arity()
	if err := checkArity(types.KindDateFunc, string(f.Func), arity, known, len(f.Args)); err != nil {
		return err
	}

	if part, ok := dateParts[f.Func]; ok {
		ctx.sql.WriteString("DATEPART(")
		ctx.sql.WriteString(part)
		ctx.sql.WriteString(", ")
		if err := r.renderExpr(f.Args[0], ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(")")
		return nil
	}

	if part, ok := dateAdds[f.Func]; ok {
		// DATEADD takes the amount before the date.
		ctx.sql.WriteString("DATEADD(")
		ctx.sql.WriteString(part)
		ctx.sql.WriteString(", ")
		if err := r.renderExprList([]types.Node{f.Args[1], f.Args[0]}, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(")")
		return nil
	}

	switch f.Func {
	case types.DateNow:
		ctx.sql.WriteString("GETDATE()")
	case types.DateUtcNow:
		ctx.sql.WriteString("GETUTCDATE()")
	case types.DateToday:
		ctx.sql.WriteString("CAST(GETDATE() AS DATE)")
	case types.DateDate:
		return r.renderCast(&types.Cast{Operand: f.Args[0], Type: types.CastDate}, ctx)
	case types.DateDayOfWeek:
		// Zero-based with Sunday first, under the default DATEFIRST 7.
		ctx.sql.WriteString("(DATEPART(WEEKDAY, ")
		if err := r.renderExpr(f.Args[0], ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(") - 1)")
	case types.DateDiffDays:
		ctx.sql.WriteString("DATEDIFF(DAY, ")
		if err := r.renderExprList(f.Args, ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(")")
	default:
		return render.NewUnsupportedConstructError(Dialect, types.KindDateFunc, string(f.Func))
	}
	return nil
}

var simpleNumericFuncs = map[types.NumericFunction]string{
	types.NumAbs:     "ABS",
	types.NumCeiling: "CEILING",
	types.NumFloor:   "FLOOR",
	types.NumPower:   "POWER",
	types.NumSqrt:    "SQRT",
	types.NumSign:    "SIGN",
	types.NumExp:     "EXP",
	types.NumLog:     "LOG",
	types.NumLog10:   "LOG10",
}

func (r *Renderer) renderNumericFunc(f *types.NumericFunc, ctx *renderContext) error {
	arity, known := f.Func.Arity()
	if err := checkArity(types.KindNumericFunc, string(f.Func), arity, known, len(f.Args)); err != nil {
		return err
	}

	if name, ok := simpleNumericFuncs[f.Func]; ok {
		return r.call(name, f.Args, ctx)
	}

	switch f.Func {
	case types.NumRound:
		ctx.sql.WriteString("ROUND(")
		if err := r.renderExpr(f.Args[0], ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(", ")
		if len(f.Args) == 2 {
			if err := r.renderExpr(f.Args[1], ctx); err != nil {
				return err
			}
		} else {
			ctx.sql.WriteString("0")
		}
		ctx.sql.WriteString(")")
	case types.NumTruncate:
		ctx.sql.WriteString("ROUND(")
		if err := r.renderExpr(f.Args[0], ctx); err != nil {
			return err
		}
		ctx.sql.WriteString(", 0, 1)")
	default:
		return render.NewUnsupportedConstructError(Dialect, types.KindNumericFunc, string(f.Func))
	}
	return nil
}
