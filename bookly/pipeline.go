package bookly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownKind is returned when an order names a tax, customer or
// shipping kind the pipeline has no strategy for.
var ErrUnknownKind = errors.New("bookly: unknown kind")

// Line is one processed order.
type Line struct {
	OrderID  int     `json:"order_id"`
	Type     string  `json:"type"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Summary is the result of processing a batch of orders.
type Summary struct {
	BatchID   string  `json:"batch_id"`
	Lines     []Line  `json:"lines"`
	Revenue   float64 `json:"revenue"`
	Discounts float64 `json:"discounts"`
	Taxes     float64 `json:"taxes"`
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTaxRule adds or replaces the tax rule for a tax kind.
func WithTaxRule(kind string, r TaxRule) Option {
	return func(p *Pipeline) { p.taxes[kind] = r }
}

// WithDiscounter adds or replaces the discounter for a customer kind.
func WithDiscounter(kind string, d Discounter) Option {
	return func(p *Pipeline) { p.discounts[kind] = d }
}

// WithShipper adds or replaces the shipper for a shipping kind.
func WithShipper(kind string, s Shipper) Option {
	return func(p *Pipeline) { p.shippers[kind] = s }
}

// WithConcurrency bounds how many orders are priced at once.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) { p.concurrency = n }
}

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// Pipeline prices orders.
type Pipeline struct {
	taxes       map[string]TaxRule
	discounts   map[string]Discounter
	shippers    map[string]Shipper
	concurrency int
	logger      *slog.Logger
}

// NewPipeline creates a pipeline with the shop's standard kinds:
// tax gen/red, customer premium/regular, shipping std/exp/eco.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		taxes: map[string]TaxRule{
			"gen": GeneralTax{},
			"red": ReducedTax{},
		},
		discounts: map[string]Discounter{
			"premium": PremiumDiscount,
			"regular": RegularDiscount,
		},
		shippers: map[string]Shipper{
			"std": StandardShipping{},
			"exp": ExpressShipping{},
			"eco": EconomyShipping{},
		},
		concurrency: 4,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// boundOrder is an order with its strategies resolved.
type boundOrder struct {
	order    Order
	tax      TaxRule
	discount Discounter
	shipper  Shipper
}

func (b boundOrder) price() Line {
	subtotal := b.order.Subtotal()
	line := Line{
		OrderID:  b.order.ID,
		Type:     b.order.Type,
		Subtotal: subtotal,
		Tax:      b.tax.Tax(subtotal),
		Shipping: b.shipper.Cost(b.order.Quantity),
		Discount: b.discount.Discount(subtotal, b.order.OrderCount),
	}
	line.Total = line.Subtotal + line.Tax + line.Shipping - line.Discount
	return line
}

// bind resolves the strategies of one order.
func (p *Pipeline) bind(o Order) (boundOrder, error) {
	tax, ok := p.taxes[o.TaxType]
	if !ok {
		return boundOrder{}, fmt.Errorf("%w: order %d: tax type %q", ErrUnknownKind, o.ID, o.TaxType)
	}
	discount, ok := p.discounts[o.CustomerType]
	if !ok {
		return boundOrder{}, fmt.Errorf("%w: order %d: customer type %q", ErrUnknownKind, o.ID, o.CustomerType)
	}
	shipper, ok := p.shippers[o.Type]
	if !ok {
		return boundOrder{}, fmt.Errorf("%w: order %d: shipping type %q", ErrUnknownKind, o.ID, o.Type)
	}
	return boundOrder{order: o, tax: tax, discount: discount, shipper: shipper}, nil
}

// Process prices every order. All orders are bound first; if any names an
// unknown kind nothing is priced. Lines keep the input order.
func (p *Pipeline) Process(ctx context.Context, orders []Order) (Summary, error) {
	bound := make([]boundOrder, len(orders))
	var errs []error
	for i, o := range orders {
		b, err := p.bind(o)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		bound[i] = b
	}
	if len(errs) > 0 {
		return Summary{}, errors.Join(errs...)
	}

	lines := make([]Line, len(bound))
	g, ctx := errgroup.WithContext(ctx)
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}
	for i, b := range bound {
		i, b := i, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines[i] = b.price()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("bookly: process orders: %w", err)
	}

	s := Summary{BatchID: uuid.NewString(), Lines: lines}
	for _, l := range lines {
		s.Revenue += l.Total
		s.Discounts += l.Discount
		s.Taxes += l.Tax
	}
	p.logger.Info("orders processed", "batch", s.BatchID, "orders", len(lines), "revenue", s.Revenue)
	return s, nil
}
