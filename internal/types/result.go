package types

// Command is the output of a render: SQL text, its positional parameters and
// the query it was rendered from. Commands are not modified after creation.
type Command struct {
	Query      *Query
	SQL        string
	Parameters []any
}

// Args returns a copy of the parameters, in placeholder order, suitable for
// passing to database/sql.
func (c *Command) Args() []any {
	args := make([]any, len(c.Parameters))
	copy(args, c.Parameters)
	return args
}
