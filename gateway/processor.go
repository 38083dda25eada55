package gateway

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/ainaplanass/exam/capability"
)

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithRateLimit throttles payments to r per second with the given burst.
func WithRateLimit(r rate.Limit, burst int) ProcessorOption {
	return func(p *Processor) { p.limiter = rate.NewLimiter(r, burst) }
}

// Processor sends payments through a Gateway without knowing which one.
type Processor struct {
	gateway Gateway
	limiter *rate.Limiter
}

// NewProcessor creates a Processor over g.
func NewProcessor(g Gateway, opts ...ProcessorOption) (*Processor, error) {
	if capability.IsNil(g) {
		return nil, fmt.Errorf("gateway: processor without gateway: %w", capability.ErrConstruction)
	}
	p := &Processor{gateway: g}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ProcessPayment pays amount. With a rate limit configured it waits for a
// slot first and fails if ctx ends before one is free.
func (p *Processor) ProcessPayment(ctx context.Context, amount float64) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("gateway: waiting for rate limit: %w", err)
		}
	}
	return p.gateway.Pay(amount), nil
}
