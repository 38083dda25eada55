package bookly_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainaplanass/exam/bookly"
)

const ordersYAML = `
- {id: 1, type: std, quantity: 2, unit_price: 15.0, tax_type: gen, customer_type: premium, order_count: 6}
- {id: 2, type: exp, quantity: 1, unit_price: 25.0, tax_type: gen, customer_type: regular, order_count: 2}
- {id: 3, type: eco, quantity: 5, unit_price: 9.5, tax_type: red, customer_type: premium, order_count: 12}
- {id: 4, type: std, quantity: 3, unit_price: 12.0, tax_type: gen, customer_type: regular, order_count: 1}
- {id: 5, type: exp, quantity: 4, unit_price: 18.0, tax_type: gen, customer_type: premium, order_count: 8}
`

func sampleOrders(t *testing.T) []bookly.Order {
	t.Helper()
	orders, err := bookly.ReadOrders(strings.NewReader(ordersYAML))
	require.NoError(t, err)
	require.Len(t, orders, 5)
	return orders
}

func TestProcess(t *testing.T) {
	s, err := bookly.NewPipeline().Process(context.Background(), sampleOrders(t))
	require.NoError(t, err)

	want := []bookly.Line{
		{OrderID: 1, Type: "std", Subtotal: 30, Tax: 3, Shipping: 6, Discount: 3, Total: 36},
		{OrderID: 2, Type: "exp", Subtotal: 25, Tax: 2.5, Shipping: 13, Discount: 0, Total: 40.5},
		{OrderID: 3, Type: "eco", Subtotal: 47.5, Tax: 1.9, Shipping: 4.25, Discount: 7.125, Total: 46.525},
		{OrderID: 4, Type: "std", Subtotal: 36, Tax: 3.6, Shipping: 6.5, Discount: 0, Total: 46.1},
		{OrderID: 5, Type: "exp", Subtotal: 72, Tax: 7.2, Shipping: 22, Discount: 7.2, Total: 94},
	}
	require.Len(t, s.Lines, len(want))
	for i, w := range want {
		got := s.Lines[i]
		assert.Equal(t, w.OrderID, got.OrderID)
		assert.Equal(t, w.Type, got.Type)
		assert.InDelta(t, w.Subtotal, got.Subtotal, 1e-9)
		assert.InDelta(t, w.Tax, got.Tax, 1e-9)
		assert.InDelta(t, w.Shipping, got.Shipping, 1e-9)
		assert.InDelta(t, w.Discount, got.Discount, 1e-9)
		assert.InDelta(t, w.Total, got.Total, 1e-9)
	}

	assert.InDelta(t, 263.125, s.Revenue, 1e-9)
	assert.InDelta(t, 17.325, s.Discounts, 1e-9)
	assert.InDelta(t, 18.2, s.Taxes, 1e-9)

	_, err = uuid.Parse(s.BatchID)
	assert.NoError(t, err)
}

func TestProcess_UnknownKindRejectedBeforePricing(t *testing.T) {
	orders := sampleOrders(t)
	orders[1].Type = "drone"
	orders[3].CustomerType = "gold"

	_, err := bookly.NewPipeline().Process(context.Background(), orders)
	require.ErrorIs(t, err, bookly.ErrUnknownKind)
	assert.Contains(t, err.Error(), `shipping type "drone"`)
	assert.Contains(t, err.Error(), `customer type "gold"`)
}

type droneShipping struct{}

func (droneShipping) Cost(quantity int) float64 { return 20 }

func TestProcess_NewKindThroughOption(t *testing.T) {
	orders := []bookly.Order{{ID: 9, Type: "drone", Quantity: 1, UnitPrice: 10, TaxType: "red", CustomerType: "regular"}}

	s, err := bookly.NewPipeline(bookly.WithShipper("drone", droneShipping{})).Process(context.Background(), orders)
	require.NoError(t, err)
	assert.InDelta(t, 30.4, s.Lines[0].Total, 1e-9)
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bookly.NewPipeline().Process(ctx, sampleOrders(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestProcess_Empty(t *testing.T) {
	s, err := bookly.NewPipeline().Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, s.Lines)
	assert.Zero(t, s.Revenue)
}

func TestReadOrders_UnknownField(t *testing.T) {
	_, err := bookly.ReadOrders(strings.NewReader("- {id: 1, colour: red}\n"))
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	s, err := bookly.NewPipeline().Process(context.Background(), sampleOrders(t))
	require.NoError(t, err)

	r, err := bookly.NewTextReporter("en")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Report(&buf, s))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "=== BOOKLY REPORT === | Total pedidos: 5", lines[0])
	assert.Equal(t, "Pedido #1 | Tipo: std | Subtotal: €30.00 | IVA: €3.00 | Envío: €6.00 | Descuento: €3.00 | Total: €36.00", lines[1])
	assert.Contains(t, lines[6], "Impuestos totales: €18.20")
	assert.Equal(t, "=====================", lines[7])
}

func TestTextReporter_Locale(t *testing.T) {
	s := bookly.Summary{Lines: []bookly.Line{{OrderID: 1, Type: "std", Subtotal: 30, Total: 30}}, Revenue: 30}

	r, err := bookly.NewTextReporter("es")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Report(&buf, s))
	assert.Contains(t, buf.String(), "Subtotal: €30,00")

	_, err = bookly.NewTextReporter("??")
	require.Error(t, err)
}
