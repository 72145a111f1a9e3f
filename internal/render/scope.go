package render

import "github.com/zoobzio/qrender/internal/types"

// binding is what a qualifier refers to within a query.
type binding struct {
	entity  string
	derived bool
}

// Scope resolves column qualifiers for one query level. Lookups fall back to
// the enclosing query, so correlated subqueries resolve outer tables.
type Scope struct {
	parent   *Scope
	refs     map[string]binding
	primary  binding
	hasFirst bool
}

// NewScope creates a scope nested in parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, refs: make(map[string]binding)}
}

// Parent returns the enclosing scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Depth returns the number of enclosing scopes.
func (s *Scope) Depth() int {
	d := 0
	for p := s.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Collect registers every table, derived table and function a source node
// introduces. The leftmost one becomes the primary binding.
func (s *Scope) Collect(source types.Node) {
	switch n := source.(type) {
	case *types.Table:
		s.add(n.Ref(), binding{entity: n.Name})
	case *types.Join:
		if n.Left != nil {
			s.Collect(n.Left)
		}
		s.Collect(n.Target)
	case *types.Query:
		s.add(n.Alias, binding{derived: true})
	case *types.UserFunction:
		ref := n.Alias
		if ref == "" {
			ref = n.Name
		}
		s.add(ref, binding{derived: true})
	}
}

func (s *Scope) add(ref string, b binding) {
	if !s.hasFirst {
		s.primary = b
		s.hasFirst = true
	}
	if ref != "" {
		s.refs[ref] = b
	}
}

// Resolve returns the entity a qualifier refers to. Derived is true when the
// qualifier names a derived table or function, whose columns are emitted as
// written. Found is false for qualifiers unknown in every enclosing scope.
func (s *Scope) Resolve(qualifier string) (entity string, derived, found bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.refs[qualifier]; ok {
			return b.entity, b.derived, true
		}
	}
	return "", false, false
}

// Primary returns the binding unqualified columns resolve against: the
// leftmost source of the nearest query that has one.
func (s *Scope) Primary() (entity string, derived, found bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.hasFirst {
			return sc.primary.entity, sc.primary.derived, true
		}
	}
	return "", false, false
}

// IsAlias reports whether a qualifier was introduced as an alias rather than
// as a bare entity name.
func (s *Scope) IsAlias(qualifier string) bool {
	entity, derived, found := s.Resolve(qualifier)
	return found && (derived || entity != qualifier)
}
