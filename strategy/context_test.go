package strategy_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainaplanass/exam/capability"
	"github.com/ainaplanass/exam/strategy"
)

type pricer interface {
	Price(amount float64) float64
}

type rate float64

func (r rate) Price(amount float64) float64 { return amount * float64(r) }

type ptrRate struct{ r float64 }

func (p *ptrRate) Price(amount float64) float64 { return amount * p.r }

func TestNewContext_RequiresStrategy(t *testing.T) {
	_, err := strategy.NewContext[pricer](nil)
	require.ErrorIs(t, err, capability.ErrConstruction)

	var typedNil *ptrRate
	_, err = strategy.NewContext[pricer](typedNil)
	require.ErrorIs(t, err, capability.ErrConstruction)
}

func TestApply_UsesBoundStrategy(t *testing.T) {
	c, err := strategy.NewContext[pricer](rate(0))
	require.NoError(t, err)

	assert.Equal(t, 0.0, strategy.Apply(c, pricer.Price, 100))

	require.NoError(t, c.Set(rate(0.2)))
	assert.InDelta(t, 20.0, strategy.Apply(c, pricer.Price, 100), 1e-9)

	require.NoError(t, c.Set(&ptrRate{r: 0.5}))
	assert.InDelta(t, 50.0, strategy.Apply(c, pricer.Price, 100), 1e-9)
}

func TestSet_RejectsNilAndKeepsCurrent(t *testing.T) {
	c, err := strategy.NewContext[pricer](rate(0.1))
	require.NoError(t, err)

	err = c.Set(nil)
	require.ErrorIs(t, err, capability.ErrConstruction)
	assert.Equal(t, rate(0.1), c.Current())
}

func TestSwapHook(t *testing.T) {
	var seen []pricer
	c, err := strategy.NewContext[pricer](rate(0.1),
		strategy.WithName[pricer]("pricing"),
		strategy.WithSwapHook(func(old, new pricer) { seen = append(seen, old, new) }),
	)
	require.NoError(t, err)
	assert.Equal(t, "pricing", c.Name())

	require.NoError(t, c.Set(rate(0.3)))
	assert.Equal(t, []pricer{rate(0.1), rate(0.3)}, seen)
}

func TestSet_LogsSwap(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := strategy.NewContext[pricer](rate(0.1),
		strategy.WithName[pricer]("pricing"),
		strategy.WithLogger[pricer](logger),
	)
	require.NoError(t, err)
	require.NoError(t, c.Set(rate(0.2)))

	assert.Contains(t, buf.String(), "strategy swapped")
	assert.Contains(t, buf.String(), "context=pricing")
}

func TestConcurrentSwapsObserveWholeStrategies(t *testing.T) {
	c, err := strategy.NewContext[pricer](rate(0.1))
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				_ = c.Set(rate(0.2))
			} else {
				_ = c.Set(rate(0.1))
			}
		}
	}()

	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				got := strategy.Apply(c, pricer.Price, 100)
				if got < 9.99 || (got > 10.01 && got < 19.99) || got > 20.01 {
					t.Errorf("observed mixed result %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
