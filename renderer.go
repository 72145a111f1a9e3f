package qrender

import "github.com/zoobzio/qrender/internal/types"

// Renderer defines the interface for SQL dialect-specific rendering.
// Implementations are stateless between calls and safe for concurrent use.
type Renderer interface {
	// Render converts a query to a Command with dialect-specific SQL. A nil
	// naming convention renders logical names verbatim.
	Render(q *types.Query, naming types.NamingConvention) (*types.Command, error)
}
