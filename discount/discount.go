// Package discount holds the customer discount strategies. A Calculator is
// bound to one strategy at a time and can be switched at runtime; the kinds
// of customer are types, so an unknown kind cannot be expressed here.
package discount

import (
	"fmt"

	"github.com/ainaplanass/exam/strategy"
)

// Strategy computes the discount granted on an amount.
type Strategy interface {
	Calculate(amount float64) float64
	Description() string
}

// Regular customers get no discount.
type Regular struct{}

func (Regular) Calculate(float64) float64 { return 0 }
func (Regular) Description() string       { return "Cliente regular: sin descuento" }

// Premium customers get 10% off.
type Premium struct{}

func (Premium) Calculate(amount float64) float64 { return amount * 0.10 }
func (Premium) Description() string              { return "Cliente premium: 10% de descuento" }

// VIP customers get 20% off.
type VIP struct{}

func (VIP) Calculate(amount float64) float64 { return amount * 0.20 }
func (VIP) Description() string              { return "Cliente VIP: 20% de descuento" }

// Employee discounts are 50%.
type Employee struct{}

func (Employee) Calculate(amount float64) float64 { return amount * 0.50 }
func (Employee) Description() string              { return "Descuento de empleado: 50%" }

// Percent grants a configurable fraction of the amount. Rate is in [0, 1].
type Percent struct {
	Rate float64
}

func (p Percent) Calculate(amount float64) float64 { return amount * p.Rate }

func (p Percent) Description() string {
	return fmt.Sprintf("Descuento personalizado: %g%%", p.Rate*100)
}

// Catalog returns a strategy catalog holding the built-in discounts under
// their configuration names.
func Catalog() *strategy.Catalog[Strategy] {
	c := strategy.NewCatalog[Strategy]()
	c.Register("regular", func() Strategy { return Regular{} })
	c.Register("premium", func() Strategy { return Premium{} })
	c.Register("vip", func() Strategy { return VIP{} })
	c.Register("employee", func() Strategy { return Employee{} })
	return c
}
