package qrender

import (
	"fmt"

	"github.com/zoobzio/qrender/internal/types"
)

// C creates a comparison.
func C(left types.Node, op types.Operator, right types.Node) *types.Comparison {
	return &types.Comparison{Left: left, Operator: op, Right: right}
}

// Eq creates left = right. A NULL right renders IS NULL.
func Eq(left, right types.Node) *types.Comparison { return C(left, types.Equals, right) }

// Ne creates left <> right. A NULL right renders IS NOT NULL.
func Ne(left, right types.Node) *types.Comparison { return C(left, types.NotEquals, right) }

// Gt creates left > right.
func Gt(left, right types.Node) *types.Comparison { return C(left, types.GreaterThan, right) }

// Ge creates left >= right.
func Ge(left, right types.Node) *types.Comparison { return C(left, types.GreaterThanOrEqual, right) }

// Lt creates left < right.
func Lt(left, right types.Node) *types.Comparison { return C(left, types.LessThan, right) }

// Le creates left <= right.
func Le(left, right types.Node) *types.Comparison { return C(left, types.LessThanOrEqual, right) }

// In creates left IN (set). The set may be a collection constant, a list or
// a subquery.
func In(left, set types.Node) *types.Comparison { return C(left, types.IsIn, set) }

// Not returns a copy of p with its negation flipped.
func Not(p types.Predicate) types.Predicate {
	switch v := p.(type) {
	case *types.Comparison:
		c := *v
		c.Negated = !c.Negated
		return &c
	case *types.PredicateGroup:
		g := *v
		g.Negated = !g.Negated
		return &g
	case *types.Exists:
		e := *v
		e.Negated = !e.Negated
		return &e
	case *types.BooleanTest:
		b := *v
		b.Negated = !b.Negated
		return &b
	}
	panic(fmt.Errorf("cannot negate %T", p))
}

// withJoiner returns a copy of p joined to its previous sibling by j.
func withJoiner(p types.Predicate, j types.Joiner) types.Predicate {
	switch v := p.(type) {
	case *types.Comparison:
		c := *v
		c.Joiner = j
		return &c
	case *types.PredicateGroup:
		g := *v
		g.Joiner = j
		return &g
	case *types.Exists:
		e := *v
		e.Joiner = j
		return &e
	case *types.BooleanTest:
		b := *v
		b.Joiner = j
		return &b
	}
	panic(fmt.Errorf("cannot join %T", p))
}

// Group creates a group whose members keep their own joiners.
func Group(members ...types.Predicate) *types.PredicateGroup {
	return &types.PredicateGroup{Members: members}
}

// And creates a group joining every member with AND.
func And(members ...types.Predicate) *types.PredicateGroup {
	return joinAll(types.AND, members)
}

// Or creates a group joining every member with OR.
func Or(members ...types.Predicate) *types.PredicateGroup {
	return joinAll(types.OR, members)
}

func joinAll(j types.Joiner, members []types.Predicate) *types.PredicateGroup {
	g := &types.PredicateGroup{Members: make([]types.Predicate, len(members))}
	for i, m := range members {
		g.Members[i] = withJoiner(m, j)
	}
	return g
}

// ExistsIn creates EXISTS (q).
func ExistsIn(q *types.Query) *types.Exists {
	return &types.Exists{Query: q}
}

// IsTrue uses a boolean-valued expression, such as a bit column, as a
// predicate.
func IsTrue(expr types.Node) *types.BooleanTest {
	return &types.BooleanTest{Operand: expr}
}
