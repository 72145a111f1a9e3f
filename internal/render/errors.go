package render

import (
	"errors"
	"fmt"

	"github.com/zoobzio/qrender/internal/types"
)

var (
	// ErrUnsupportedConstruct matches every UnsupportedConstructError.
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// ErrMalformedAST matches every MalformedASTError.
	ErrMalformedAST = errors.New("malformed AST")
)

// UnsupportedConstructError indicates a node or node/operator combination
// with no SQL mapping in the dialect.
type UnsupportedConstructError struct {
	Dialect   string
	Node      types.Kind
	Construct string
	Hint      string
}

func (e UnsupportedConstructError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s %s is not supported: %s", e.Dialect, e.Node, e.Construct, e.Hint)
	}
	return fmt.Sprintf("%s: %s %s is not supported", e.Dialect, e.Node, e.Construct)
}

// Is reports whether target is ErrUnsupportedConstruct.
func (e UnsupportedConstructError) Is(target error) bool {
	return target == ErrUnsupportedConstruct
}

// NewUnsupportedConstructError creates a new unsupported construct error.
func NewUnsupportedConstructError(dialect string, node types.Kind, construct string, hint ...string) error {
	err := UnsupportedConstructError{Dialect: dialect, Node: node, Construct: construct}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}

// MalformedASTError indicates a violated structural invariant.
type MalformedASTError struct {
	Node   types.Kind
	Reason string
}

func (e MalformedASTError) Error() string {
	return fmt.Sprintf("malformed %s: %s", e.Node, e.Reason)
}

// Is reports whether target is ErrMalformedAST.
func (e MalformedASTError) Is(target error) bool {
	return target == ErrMalformedAST
}

// NewMalformedASTError creates a new malformed AST error.
func NewMalformedASTError(node types.Kind, format string, args ...any) error {
	return MalformedASTError{Node: node, Reason: fmt.Sprintf(format, args...)}
}
