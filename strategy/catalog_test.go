package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainaplanass/exam/strategy"
)

func TestCatalog(t *testing.T) {
	c := strategy.NewCatalog[pricer]()
	c.Register("flat", func() pricer { return rate(0) })
	c.Register("tenth", func() pricer { return rate(0.1) })

	p, err := c.New("tenth")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, p.Price(100), 1e-9)

	_, err = c.New("half")
	require.ErrorIs(t, err, strategy.ErrUnknownStrategy)
	assert.Contains(t, err.Error(), `"half"`)

	assert.Equal(t, []string{"flat", "tenth"}, c.Names())
}
