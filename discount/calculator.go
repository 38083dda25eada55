package discount

import (
	"log/slog"

	"github.com/ainaplanass/exam/strategy"
)

// Calculator computes discounts with whichever strategy it is bound to.
type Calculator struct {
	ctx *strategy.Context[Strategy]
}

// NewCalculator creates a Calculator bound to s.
func NewCalculator(s Strategy, logger *slog.Logger) (*Calculator, error) {
	ctx, err := strategy.NewContext(s,
		strategy.WithName[Strategy]("discount"),
		strategy.WithLogger[Strategy](logger),
	)
	if err != nil {
		return nil, err
	}
	return &Calculator{ctx: ctx}, nil
}

// SetStrategy switches the bound strategy.
func (c *Calculator) SetStrategy(s Strategy) error { return c.ctx.Set(s) }

// Strategy returns the bound strategy.
func (c *Calculator) Strategy() Strategy { return c.ctx.Current() }

// CalculateDiscount returns the discount on amount.
func (c *Calculator) CalculateDiscount(amount float64) float64 {
	return strategy.Apply(c.ctx, Strategy.Calculate, amount)
}

// Description describes the bound strategy.
func (c *Calculator) Description() string {
	return strategy.Apply(c.ctx, func(s Strategy, _ struct{}) string { return s.Description() }, struct{}{})
}
