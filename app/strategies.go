package app

import (
	"context"
	"fmt"

	"github.com/ainaplanass/exam/config"
	"github.com/ainaplanass/exam/discount"
	"github.com/ainaplanass/exam/dispatch"
	"github.com/ainaplanass/exam/shipping"
)

var (
	discounts = discount.Catalog()
	shippers  = shipping.Catalog()
)

// Quote is a priced amount.
type Quote struct {
	Amount   float64
	Discount float64
	Shipping float64
	Total    float64
}

// discountFor builds the discount strategy a config section describes.
func (a *App) discountFor(cfg config.DiscountConfig) (discount.Strategy, error) {
	switch {
	case cfg.Expression != "":
		return discount.NewRule(cfg.Strategy, cfg.Expression, a.logger)
	case cfg.Rate > 0:
		return discount.Percent{Rate: cfg.Rate}, nil
	}
	return discounts.New(cfg.Strategy)
}

func (a *App) bindDiscount(cfg config.DiscountConfig) (dispatch.Handle[discount.Strategy], error) {
	s, err := a.discountFor(cfg)
	if err != nil {
		return dispatch.Handle[discount.Strategy]{}, fmt.Errorf("app: discount: %w", err)
	}
	return dispatch.BindAs[discount.Strategy](a.engine, discountCapability, s)
}

func (a *App) bindShipping(cfg config.ShippingConfig) (dispatch.Handle[shipping.Strategy], error) {
	s, err := shippers.New(cfg.Strategy)
	if err != nil {
		return dispatch.Handle[shipping.Strategy]{}, fmt.Errorf("app: shipping: %w", err)
	}
	return dispatch.BindAs[shipping.Strategy](a.engine, shippingCapability, s)
}

// bindStrategies builds and binds both strategies cfg selects.
func (a *App) bindStrategies(cfg *config.Config) (discount.Strategy, shipping.Strategy, error) {
	ds, err := a.bindDiscount(cfg.Discount)
	if err != nil {
		return nil, nil, err
	}
	ss, err := a.bindShipping(cfg.Shipping)
	if err != nil {
		return nil, nil, err
	}
	return ds.Value(), ss.Value(), nil
}

func (a *App) swapStrategies(ds discount.Strategy, ss shipping.Strategy) error {
	if err := a.discount.SetStrategy(ds); err != nil {
		return err
	}
	return a.shipping.SetStrategy(ss)
}

// ApplyStrategies swaps the running discount and shipping strategies to
// the ones cfg selects. Both are built before either is swapped, so a bad
// config leaves the running strategies untouched.
func (a *App) ApplyStrategies(_ context.Context, cfg *config.Config) error {
	ds, ss, err := a.bindStrategies(cfg)
	if err != nil {
		return err
	}
	if err := a.swapStrategies(ds, ss); err != nil {
		return err
	}

	a.mu.Lock()
	next := *a.cfg
	next.Discount, next.Shipping = cfg.Discount, cfg.Shipping
	a.cfg = &next
	a.mu.Unlock()

	a.logger.Info("strategies applied", "discount", a.discount.Description(), "shipping", cfg.Shipping.Strategy)
	return nil
}

// Apply brings the whole app in line with cfg. The strategies and the new
// backend are all built first; if any of them fails the app keeps running
// exactly as before.
func (a *App) Apply(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ds, ss, err := a.bindStrategies(cfg)
	if err != nil {
		return err
	}
	b, err := a.openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	if err := a.swapStrategies(ds, ss); err != nil {
		_ = b.store.Close()
		return err
	}
	a.commit(cfg, b)
	a.logger.Info("config applied", "discount", a.discount.Description(), "storage", cfg.Storage.Driver)
	return nil
}

// Quote prices amount with the running discount and a parcel of weight with
// the running shipping strategy. Both calls are traced and counted by the
// dispatch engine.
func (a *App) Quote(ctx context.Context, amount, weight float64) (Quote, error) {
	dh, err := dispatch.Named(discountCapability, a.discount.Strategy())
	if err != nil {
		return Quote{}, fmt.Errorf("app: quote: %w", err)
	}
	sh, err := dispatch.Named(shippingCapability, a.shipping.Strategy())
	if err != nil {
		return Quote{}, fmt.Errorf("app: quote: %w", err)
	}

	d := dispatch.Observe(ctx, a.engine, dh, "calculate", discount.Strategy.Calculate, amount)
	sc := dispatch.Observe(ctx, a.engine, sh, "calculate", shipping.Strategy.Calculate, weight)
	return Quote{Amount: amount, Discount: d, Shipping: sc, Total: amount - d + sc}, nil
}
