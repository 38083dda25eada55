// Package gateway puts third-party payment services behind one Gateway
// capability. The services keep their own APIs; an adapter per service maps
// Pay onto the service's native call.
package gateway

import (
	"fmt"
	"log/slog"
	"math"

	stripe "github.com/stripe/stripe-go/v82"

	"github.com/ainaplanass/exam/adapter"
)

// Gateway is the capability the payment processor depends on.
type Gateway interface {
	Pay(amount float64) string
}

// StripeService takes payment intents in minor units.
type StripeService struct{}

// ProcessStripePayment processes a payment intent.
func (StripeService) ProcessStripePayment(params *stripe.PaymentIntentParams) string {
	amount := float64(stripe.Int64Value(params.Amount)) / 100
	return fmt.Sprintf("Procesando pago con Stripe por $%s", formatAmount(amount))
}

// PayPalService executes payments in major units.
type PayPalService struct{}

// ExecutePayPalPayment executes a payment.
func (PayPalService) ExecutePayPalPayment(amount float64) string {
	return fmt.Sprintf("Procesando pago con PayPal por $%s", formatAmount(amount))
}

// SquareService runs transactions.
type SquareService struct{}

// ExecuteSquareTransaction runs a transaction.
func (SquareService) ExecuteSquareTransaction(amount float64) string {
	return fmt.Sprintf("Procesando pago con Square por $%s", formatAmount(amount))
}

// StripeAdapter converts amounts to a Stripe payment intent.
type StripeAdapter struct {
	svc StripeService
}

func (a StripeAdapter) Pay(amount float64) string {
	return a.svc.ProcessStripePayment(&stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	})
}

// PayPalAdapter forwards to PayPalService.
type PayPalAdapter struct {
	svc PayPalService
}

func (a PayPalAdapter) Pay(amount float64) string { return a.svc.ExecutePayPalPayment(amount) }

// SquareAdapter forwards to SquareService.
type SquareAdapter struct {
	svc SquareService
}

func (a SquareAdapter) Pay(amount float64) string { return a.svc.ExecuteSquareTransaction(amount) }

// NewRegistry returns the adapters for every supported service. Services
// with no adapter are rejected with capability.ErrFormatUnsupported.
func NewRegistry(logger *slog.Logger) *adapter.Registry[Gateway] {
	r := adapter.NewRegistry(adapter.WithLogger[Gateway](logger))
	adapter.Register(r, func(s StripeService) Gateway { return StripeAdapter{svc: s} })
	adapter.Register(r, func(s PayPalService) Gateway { return PayPalAdapter{svc: s} })
	adapter.Register(r, func(s SquareService) Gateway { return SquareAdapter{svc: s} })
	return r
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
