package render

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/qrender/internal/types"
)

func TestUnsupportedConstructError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      UnsupportedConstructError
		expected string
	}{
		{
			name: "without hint",
			err: UnsupportedConstructError{
				Dialect:   "mssql",
				Node:      types.KindBinaryOp,
				Construct: "operator Equals",
			},
			expected: "mssql: BinaryOp operator Equals is not supported",
		},
		{
			name: "with hint",
			err: UnsupportedConstructError{
				Dialect:   "mssql",
				Node:      types.KindQuery,
				Construct: "paging over UNION",
				Hint:      "page a derived table instead",
			},
			expected: "mssql: Query paging over UNION is not supported: page a derived table instead",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestNewUnsupportedConstructError(t *testing.T) {
	err := NewUnsupportedConstructError("mssql", types.KindUnaryOp, "operator Add", "use BinaryOp")

	var uc UnsupportedConstructError
	require.True(t, errors.As(err, &uc))
	assert.Equal(t, types.KindUnaryOp, uc.Node)
	assert.Equal(t, "use BinaryOp", uc.Hint)
	assert.ErrorIs(t, err, ErrUnsupportedConstruct)
	assert.NotErrorIs(t, err, ErrMalformedAST)
}

func TestMalformedASTError(t *testing.T) {
	err := NewMalformedASTError(types.KindQuery, "aggregate over %d fields", 2)
	assert.Equal(t, "malformed Query: aggregate over 2 fields", err.Error())
	assert.ErrorIs(t, err, ErrMalformedAST)

	wrapped := fmt.Errorf("rendering: %w", err)
	assert.ErrorIs(t, wrapped, ErrMalformedAST)

	var me MalformedASTError
	require.True(t, errors.As(wrapped, &me))
	assert.Equal(t, types.KindQuery, me.Node)
}
