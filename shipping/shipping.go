// Package shipping holds the interchangeable shipping cost strategies.
package shipping

import (
	"log/slog"
	"math"

	"github.com/ainaplanass/exam/strategy"
)

// Strategy computes the shipping cost of a package by weight.
type Strategy interface {
	Calculate(weight float64) float64
}

// Standard adds a base fee of 5.
type Standard struct{}

func (Standard) Calculate(weight float64) float64 { return weight + 5 }

// Express adds 10%.
type Express struct{}

func (Express) Calculate(weight float64) float64 { return roundCents(weight * 1.1) }

// Overnight adds 20%.
type Overnight struct{}

func (Overnight) Calculate(weight float64) float64 { return roundCents(weight * 1.2) }

// SameDay adds 30%.
type SameDay struct{}

func (SameDay) Calculate(weight float64) float64 { return roundCents(weight * 1.3) }

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Catalog returns a strategy catalog with the built-in shipping options.
func Catalog() *strategy.Catalog[Strategy] {
	c := strategy.NewCatalog[Strategy]()
	c.Register("standard", func() Strategy { return Standard{} })
	c.Register("express", func() Strategy { return Express{} })
	c.Register("overnight", func() Strategy { return Overnight{} })
	c.Register("same-day", func() Strategy { return SameDay{} })
	return c
}

// Calculator computes shipping costs with its bound strategy.
type Calculator struct {
	ctx *strategy.Context[Strategy]
}

// NewCalculator creates a Calculator bound to s.
func NewCalculator(s Strategy, logger *slog.Logger) (*Calculator, error) {
	ctx, err := strategy.NewContext(s,
		strategy.WithName[Strategy]("shipping"),
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

// CalculateShipping returns the cost of shipping weight.
func (c *Calculator) CalculateShipping(weight float64) float64 {
	return strategy.Apply(c.ctx, Strategy.Calculate, weight)
}
