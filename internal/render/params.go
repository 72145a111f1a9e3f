package render

// Params is the parameter table of a single render. Equal values share one
// slot; slots are numbered from zero in first-appearance order.
type Params struct {
	slots  map[string]int
	values []any
}

// NewParams creates an empty parameter table.
func NewParams() *Params {
	return &Params{slots: make(map[string]int)}
}

// Bind returns the slot of v, adding it if no equal value was bound before.
func (p *Params) Bind(v any) int {
	key := Key(v)
	if i, ok := p.slots[key]; ok {
		return i
	}
	i := len(p.values)
	p.values = append(p.values, v)
	p.slots[key] = i
	return i
}

// Len returns the number of distinct bound values.
func (p *Params) Len() int {
	return len(p.values)
}

// Values returns the bound values in slot order.
func (p *Params) Values() []any {
	out := make([]any, len(p.values))
	copy(out, p.values)
	return out
}
