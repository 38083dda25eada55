// Package payment holds the payment-method variants of the polymorphism kata.
// Each method owns its own processing text, limit and fee; the Processor only
// talks to the Method capability.
package payment

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ainaplanass/exam/capability"
)

// Method is a way of paying.
type Method interface {
	Process(amount float64) string
	Validate(amount float64) bool
	Fee(amount float64) float64
}

// Describer is implemented by methods that can describe themselves.
type Describer interface {
	Info() string
}

// CreditCard charges 3% and accepts up to 10000.
type CreditCard struct{}

func (CreditCard) Process(amount float64) string {
	return fmt.Sprintf("Procesando pago con Tarjeta de Crédito por $%s", formatAmount(amount))
}
func (CreditCard) Validate(amount float64) bool { return amount > 0 && amount <= 10000 }
func (CreditCard) Fee(amount float64) float64   { return amount * 0.03 }
func (c CreditCard) Info() string               { return info(c) }

// PayPal charges 2.5% and accepts up to 5000.
type PayPal struct{}

func (PayPal) Process(amount float64) string {
	return fmt.Sprintf("Procesando pago con PayPal por $%s", formatAmount(amount))
}
func (PayPal) Validate(amount float64) bool { return amount > 0 && amount <= 5000 }
func (PayPal) Fee(amount float64) float64   { return amount * 0.025 }
func (p PayPal) Info() string               { return info(p) }

// Crypto charges 1% and has no upper limit.
type Crypto struct{}

func (Crypto) Process(amount float64) string {
	return fmt.Sprintf("Procesando pago con Criptomoneda por $%s", formatAmount(amount))
}
func (Crypto) Validate(amount float64) bool { return amount > 0 }
func (Crypto) Fee(amount float64) float64   { return amount * 0.01 }
func (c Crypto) Info() string               { return info(c) }

// BankTransfer charges a flat 5 and accepts up to 50000.
type BankTransfer struct{}

func (BankTransfer) Process(amount float64) string {
	return fmt.Sprintf("Procesando pago con Transferencia Bancaria por $%s", formatAmount(amount))
}
func (BankTransfer) Validate(amount float64) bool { return amount > 0 && amount <= 50000 }
func (BankTransfer) Fee(float64) float64          { return 5 }

// Processor runs payments through any Method.
type Processor struct{}

// Process validates and processes amount with m, appending the fee.
func (Processor) Process(m Method, amount float64) string {
	if !m.Validate(amount) {
		return "Pago inválido"
	}
	return fmt.Sprintf("%s\nComisión: $%s", m.Process(amount), formatAmount(m.Fee(amount)))
}

// Payment pairs a method with an amount.
type Payment struct {
	Method Method
	Amount float64
}

// ProcessAll processes every payment in order.
func (p Processor) ProcessAll(payments []Payment) []string {
	out := make([]string, 0, len(payments))
	for _, pay := range payments {
		out = append(out, p.Process(pay.Method, pay.Amount))
	}
	return out
}

// DescribeAll collects the description of every describer.
func DescribeAll(ds []Describer) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Info()
	}
	return out
}

// Contracts returns the payment capability contracts.
func Contracts() []capability.Contract {
	return []capability.Contract{
		capability.ContractFor[Method]("payment-method", "Processes, validates and prices a payment"),
		capability.ContractFor[Describer]("payment-describer", "Describes the payment method"),
	}
}

// Register adds the payment contracts and variants to reg.
func Register(reg *capability.Registry) error {
	return reg.Populate(Contracts(), map[string]any{
		"credit-card":   CreditCard{},
		"paypal":        PayPal{},
		"crypto":        Crypto{},
		"bank-transfer": BankTransfer{},
	})
}

func info(m Method) string {
	return "Método de pago: " + reflect.TypeOf(m).Name()
}

// formatAmount prints whole amounts without decimals and keeps up to two otherwise.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
