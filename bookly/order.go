// Package bookly processes book orders: each order's tax rule, customer
// discount and shipping method are strategies bound once, by name, before
// any amount is computed.
package bookly

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Order is a customer order as it arrives from the shop.
type Order struct {
	ID           int     `yaml:"id" json:"id"`
	Type         string  `yaml:"type" json:"type"`
	Quantity     int     `yaml:"quantity" json:"quantity"`
	UnitPrice    float64 `yaml:"unit_price" json:"unit_price"`
	TaxType      string  `yaml:"tax_type" json:"tax_type"`
	CustomerType string  `yaml:"customer_type" json:"customer_type"`
	OrderCount   int     `yaml:"order_count" json:"order_count"`
}

// Subtotal is the order's price before tax, shipping and discount.
func (o Order) Subtotal() float64 {
	return float64(o.Quantity) * o.UnitPrice
}

// ReadOrders decodes a YAML list of orders.
func ReadOrders(r io.Reader) ([]Order, error) {
	var orders []Order
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&orders); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("bookly: decode orders: %w", err)
	}
	return orders, nil
}
