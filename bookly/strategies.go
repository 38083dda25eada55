package bookly

// TaxRule computes the tax on a subtotal.
type TaxRule interface {
	Tax(subtotal float64) float64
}

// Discounter computes a loyalty discount from the customer's order history.
type Discounter interface {
	Discount(subtotal float64, orderCount int) float64
}

// Shipper computes the shipping cost for a number of items.
type Shipper interface {
	Cost(quantity int) float64
}

// GeneralTax is the 10% general rate.
type GeneralTax struct{}

func (GeneralTax) Tax(subtotal float64) float64 { return subtotal * 0.10 }

// ReducedTax is the 4% reduced rate for books.
type ReducedTax struct{}

func (ReducedTax) Tax(subtotal float64) float64 { return subtotal * 0.04 }

// Tiered grants Gold at 10 or more previous orders, Silver at 5 or more and
// Base otherwise, each as a fraction of the subtotal.
type Tiered struct {
	Gold, Silver, Base float64
}

func (t Tiered) Discount(subtotal float64, orderCount int) float64 {
	switch {
	case orderCount >= 10:
		return subtotal * t.Gold
	case orderCount >= 5:
		return subtotal * t.Silver
	}
	return subtotal * t.Base
}

// PremiumDiscount is the tier table for premium customers.
var PremiumDiscount = Tiered{Gold: 0.15, Silver: 0.10, Base: 0.05}

// RegularDiscount is the tier table for regular customers.
var RegularDiscount = Tiered{Gold: 0.05, Silver: 0.02, Base: 0}

// StandardShipping costs 5 plus 0.50 per item.
type StandardShipping struct{}

func (StandardShipping) Cost(quantity int) float64 { return 5 + float64(quantity)*0.5 }

// ExpressShipping costs 12 plus 1 per item, with a 6 surcharge from 4 items.
type ExpressShipping struct{}

func (ExpressShipping) Cost(quantity int) float64 {
	cost := 12 + float64(quantity)
	if quantity >= 4 {
		cost += 6
	}
	return cost
}

// EconomyShipping costs 3 plus 0.25 per item.
type EconomyShipping struct{}

func (EconomyShipping) Cost(quantity int) float64 { return 3 + float64(quantity)*0.25 }
