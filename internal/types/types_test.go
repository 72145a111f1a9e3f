package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Node Tests
// =============================================================================

func TestNode_Kinds(t *testing.T) {
	tests := []struct {
		node Node
		want Kind
	}{
		{&Table{}, KindTable},
		{&UserFunction{}, KindUserFunction},
		{&Join{}, KindJoin},
		{&Query{}, KindQuery},
		{&Column{}, KindColumn},
		{&AllColumns{}, KindAllColumns},
		{&Aliased{}, KindAliased},
		{&Constant{}, KindConstant},
		{&RawLiteral{}, KindRawLiteral},
		{&AggregateCall{}, KindAggregateCall},
		{&BinaryOp{}, KindBinaryOp},
		{&UnaryOp{}, KindUnaryOp},
		{&ConditionalCase{}, KindConditionalCase},
		{&RowNumber{}, KindRowNumber},
		{&NodeList{}, KindNodeList},
		{&ScalarSubquery{}, KindScalarSubquery},
		{&PredicateAsValue{}, KindPredicateAsValue},
		{&Coalesce{}, KindCoalesce},
		{&NullIf{}, KindNullIf},
		{&Cast{}, KindCast},
		{&StringFunc{}, KindStringFunc},
		{&DateFunc{}, KindDateFunc},
		{&NumericFunc{}, KindNumericFunc},
		{&Comparison{}, KindComparison},
		{&PredicateGroup{}, KindPredicateGroup},
		{&Exists{}, KindExists},
		{&BooleanTest{}, KindBooleanTest},
	}

	seen := make(map[Kind]bool)
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.node.Kind())
		assert.False(t, seen[tt.want], "duplicate kind %s", tt.want)
		seen[tt.want] = true
	}
}

func TestPredicates_LinkAndNegation(t *testing.T) {
	preds := []Predicate{
		&Comparison{Joiner: OR, Negated: true},
		&PredicateGroup{Joiner: OR, Negated: true},
		&Exists{Joiner: OR, Negated: true},
		&BooleanTest{Joiner: OR, Negated: true},
	}
	for _, p := range preds {
		assert.Equal(t, OR, p.Link(), "%s", p.Kind())
		assert.True(t, p.IsNegated(), "%s", p.Kind())
	}
}

func TestPredicateGroup_IsEmpty(t *testing.T) {
	var nilGroup *PredicateGroup
	assert.True(t, nilGroup.IsEmpty())
	assert.True(t, (&PredicateGroup{}).IsEmpty())
	assert.False(t, (&PredicateGroup{Members: []Predicate{&Comparison{}}}).IsEmpty())
}

// =============================================================================
// Query Tests
// =============================================================================

func TestQuery_CloneIsIndependent(t *testing.T) {
	q := &Query{Source: &Table{Name: "Book"}, Any: true, Offset: 3}
	c := q.Clone()
	c.Any = false
	c.Offset = 0

	assert.True(t, q.Any)
	assert.Equal(t, 3, q.Offset)
	assert.Same(t, q.Source, c.Source)
}

func TestQuery_SelectsAggregate(t *testing.T) {
	plain := &Query{SelectList: []Node{&Column{Name: "Id"}}}
	assert.False(t, plain.SelectsAggregate())

	direct := &Query{SelectList: []Node{&Column{Name: "Id"}, &AggregateCall{Func: AggCount}}}
	assert.True(t, direct.SelectsAggregate())

	aliased := &Query{SelectList: []Node{&Aliased{Expr: &AggregateCall{Func: AggSum, Arg: &Column{Name: "Price"}}, Alias: "Total"}}}
	assert.True(t, aliased.SelectsAggregate())
}

func TestJoinType_TakesCondition(t *testing.T) {
	assert.True(t, InnerJoin.TakesCondition())
	assert.True(t, LeftJoin.TakesCondition())
	assert.True(t, RightJoin.TakesCondition())
	assert.True(t, FullJoin.TakesCondition())
	assert.False(t, CrossJoin.TakesCondition())
	assert.False(t, CrossApply.TakesCondition())
	assert.False(t, OuterApply.TakesCondition())
}

func TestTable_Ref(t *testing.T) {
	assert.Equal(t, "Book", (&Table{Name: "Book"}).Ref())
	assert.Equal(t, "b", (&Table{Name: "Book", Alias: "b"}).Ref())
}

// =============================================================================
// Function Arity Tests
// =============================================================================

func TestArity(t *testing.T) {
	a, ok := StrSubstring.Arity()
	require.True(t, ok)
	assert.False(t, a.Accepts(1))
	assert.True(t, a.Accepts(2))
	assert.True(t, a.Accepts(3))
	assert.False(t, a.Accepts(4))

	concat, ok := StrConcat.Arity()
	require.True(t, ok)
	assert.True(t, concat.Accepts(7))

	now, ok := DateNow.Arity()
	require.True(t, ok)
	assert.True(t, now.Accepts(0))
	assert.False(t, now.Accepts(1))

	round, ok := NumRound.Arity()
	require.True(t, ok)
	assert.True(t, round.Accepts(1))
	assert.True(t, round.Accepts(2))

	_, ok = StringFunction("Soundex").Arity()
	assert.False(t, ok)
}

// =============================================================================
// Command Tests
// =============================================================================

func TestCommand_ArgsIsACopy(t *testing.T) {
	cmd := &Command{SQL: "SELECT @0", Parameters: []any{5}}
	args := cmd.Args()
	args[0] = 6
	assert.Equal(t, []any{5}, cmd.Parameters)
}
