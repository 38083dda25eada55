package bookly_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainaplanass/exam/bookly"
)

func TestQuery(t *testing.T) {
	s, err := bookly.NewPipeline().Process(context.Background(), sampleOrders(t))
	require.NoError(t, err)

	q, err := bookly.CompileQuery("[.lines[] | select(.total > 40) | .order_id]")
	require.NoError(t, err)
	assert.Equal(t, "[.lines[] | select(.total > 40) | .order_id]", q.String())

	got, err := q.Run(s)
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{2.0, 3.0, 4.0, 5.0}}, got)

	types, err := bookly.CompileQuery(".lines[].type")
	require.NoError(t, err)
	got, err = types.Run(s)
	require.NoError(t, err)
	assert.Equal(t, []any{"std", "exp", "eco", "std", "exp"}, got)
}

func TestQuery_Errors(t *testing.T) {
	_, err := bookly.CompileQuery(".lines[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query")

	q, err := bookly.CompileQuery(".revenue | error(\"too low\")")
	require.NoError(t, err)
	_, err = q.Run(bookly.Summary{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too low")
}
