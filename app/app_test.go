package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ainaplanass/exam/app"
	"github.com/ainaplanass/exam/bookly"
	"github.com/ainaplanass/exam/capability"
	"github.com/ainaplanass/exam/config"
	"github.com/ainaplanass/exam/storage"
	"github.com/ainaplanass/exam/strategy"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newApp(t *testing.T, cfg *config.Config) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), cfg, app.WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNew_Defaults(t *testing.T) {
	a := newApp(t, nil)

	assert.Equal(t, "Cliente regular: sin descuento", a.Discount().Description())
	assert.Equal(t, 0.0, a.Discount().CalculateDiscount(100))
	assert.Equal(t, 105.0, a.Shipping().CalculateShipping(100))
	assert.Equal(t, "Memoria", a.Store().Name())

	caps := a.Registry().ListCapabilities()
	assert.Contains(t, caps, "discount")
	assert.Contains(t, caps, "shipping")
	assert.Contains(t, caps, "payment-method")
	assert.Len(t, a.Registry().Variants("discount"), 5)
	assert.Len(t, a.Registry().Variants("shipping"), 4)
}

func TestNew_RejectsUnknownStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Shipping.Strategy = "teleport"

	_, err := app.New(context.Background(), cfg, app.WithLogger(quietLogger()))
	require.Error(t, err)
}

func TestNew_UnknownDiscountName(t *testing.T) {
	cfg := config.Default()
	cfg.Discount.Strategy = "gold"

	_, err := app.New(context.Background(), cfg, app.WithLogger(quietLogger()))
	require.ErrorIs(t, err, strategy.ErrUnknownStrategy)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Discount.Rate = 2

	_, err := app.New(context.Background(), cfg, app.WithLogger(quietLogger()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestNew_DiscountFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Discount = config.DiscountConfig{Rate: 0.25}
	a := newApp(t, cfg)
	assert.InDelta(t, 25.0, a.Discount().CalculateDiscount(100), 1e-9)

	cfg = config.Default()
	cfg.Discount = config.DiscountConfig{Strategy: "bulk", Expression: "amount > 500 ? amount * 0.3 : 0.0"}
	a = newApp(t, cfg)
	assert.Equal(t, 0.0, a.Discount().CalculateDiscount(100))
	assert.InDelta(t, 300.0, a.Discount().CalculateDiscount(1000), 1e-9)
}

func TestApplyStrategies(t *testing.T) {
	a := newApp(t, nil)

	next := config.Default()
	next.Discount.Strategy = "vip"
	next.Shipping.Strategy = "same-day"
	require.NoError(t, a.ApplyStrategies(context.Background(), next))

	assert.InDelta(t, 20.0, a.Discount().CalculateDiscount(100), 1e-9)
	assert.InDelta(t, 130.0, a.Shipping().CalculateShipping(100), 1e-9)
	assert.Equal(t, "vip", a.Config().Discount.Strategy)

	m := a.Engine().Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bindings.WithLabelValues("discount", "discount.VIP", "bound")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bindings.WithLabelValues("shipping", "shipping.SameDay", "bound")))
}

func TestQuote_TracedAndCounted(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	a, err := app.New(context.Background(), nil,
		app.WithLogger(quietLogger()),
		app.WithTracer(tp.Tracer("app-test")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	next := config.Default()
	next.Discount.Strategy = "premium"
	next.Shipping.Strategy = "express"
	require.NoError(t, a.ApplyStrategies(context.Background(), next))

	q, err := a.Quote(context.Background(), 200, 10)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, q.Discount, 1e-9)
	assert.InDelta(t, 11.0, q.Shipping, 1e-9)
	assert.InDelta(t, 191.0, q.Total, 1e-9)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "dispatch.discount.calculate", spans[0].Name())
	assert.Equal(t, "dispatch.shipping.calculate", spans[1].Name())

	m := a.Engine().Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Invocations.WithLabelValues("discount", "discount.Premium", "calculate")))
}

func TestApplyStrategies_BadConfigKeepsRunning(t *testing.T) {
	a := newApp(t, nil)

	next := config.Default()
	next.Discount.Strategy = "employee"
	next.Shipping.Strategy = "teleport"
	require.Error(t, a.ApplyStrategies(context.Background(), next))

	assert.Equal(t, 0.0, a.Discount().CalculateDiscount(100))
	assert.Equal(t, "regular", a.Config().Discount.Strategy)
	q, err := a.Quote(context.Background(), 100, 100)
	require.NoError(t, err)
	assert.Equal(t, 105.0, q.Shipping)
}

func TestQuote_FollowsCalculators(t *testing.T) {
	a := newApp(t, nil)

	next := config.Default()
	next.Discount.Strategy = "vip"
	next.Shipping.Strategy = "overnight"
	require.NoError(t, a.Apply(context.Background(), next))

	q, err := a.Quote(context.Background(), 100, 10)
	require.NoError(t, err)
	assert.Equal(t, a.Discount().CalculateDiscount(100), q.Discount)
	assert.Equal(t, a.Shipping().CalculateShipping(10), q.Shipping)
	assert.InDelta(t, 92.0, q.Total, 1e-9)
}

func TestApply_RebuildsStore(t *testing.T) {
	a := newApp(t, nil)

	next := config.Default()
	next.Storage = config.StorageConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "exam.db")}
	require.NoError(t, a.Apply(context.Background(), next))

	assert.Equal(t, "SQLite", a.Store().Name())
	got, err := a.Users().SaveUser(context.Background(), "ana@example.com", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "Guardado en SQLite: ana@example.com", got)
}

func TestApply_FailedBackendKeepsRunning(t *testing.T) {
	a := newApp(t, nil)
	before := a.Config()

	next := config.Default()
	next.Discount.Strategy = "vip"
	next.Shipping.Strategy = "express"
	next.Storage = config.StorageConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "missing", "dir", "exam.db")}
	require.Error(t, a.Apply(context.Background(), next))

	assert.Same(t, before, a.Config())
	assert.Equal(t, "regular", a.Config().Discount.Strategy)
	assert.Equal(t, 0.0, a.Discount().CalculateDiscount(100))
	assert.Equal(t, 105.0, a.Shipping().CalculateShipping(100))
	assert.Equal(t, "Memoria", a.Store().Name())

	q, err := a.Quote(context.Background(), 100, 100)
	require.NoError(t, err)
	assert.Equal(t, app.Quote{Amount: 100, Discount: 0, Shipping: 105, Total: 205}, q)

	_, err = a.Users().SaveUser(context.Background(), "ana@example.com", "Ana")
	require.NoError(t, err, "previous store is still open")
}

func TestProcessOrders_ArchivesSummary(t *testing.T) {
	a := newApp(t, nil)

	orders := []bookly.Order{
		{ID: 1, Type: "std", Quantity: 2, UnitPrice: 15, TaxType: "gen", CustomerType: "regular"},
	}
	var out bytes.Buffer
	s, err := a.ProcessOrders(context.Background(), orders, &out)
	require.NoError(t, err)
	require.Len(t, s.Lines, 1)
	assert.InDelta(t, 39.0, s.Lines[0].Total, 1e-9)
	assert.Contains(t, out.String(), "=== BOOKLY REPORT ===")

	raw, err := a.Store().Load(context.Background(), "bookly:"+s.BatchID)
	require.NoError(t, err)
	var archived bookly.Summary
	require.NoError(t, json.Unmarshal([]byte(raw), &archived))
	assert.Equal(t, s.BatchID, archived.BatchID)
	assert.InDelta(t, s.Revenue, archived.Revenue, 1e-9)
}

func TestQueryBatch(t *testing.T) {
	a := newApp(t, nil)

	s, err := a.ProcessOrders(context.Background(), []bookly.Order{
		{ID: 1, Type: "std", Quantity: 2, UnitPrice: 15, TaxType: "gen", CustomerType: "regular"},
		{ID: 2, Type: "eco", Quantity: 1, UnitPrice: 20, TaxType: "red", CustomerType: "premium", OrderCount: 12},
	}, nil)
	require.NoError(t, err)

	got, err := a.QueryBatch(context.Background(), s.BatchID, "[.lines[].order_id]")
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{1.0, 2.0}}, got)

	_, err = a.QueryBatch(context.Background(), "missing", ".")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProcessOrders_UnknownKind(t *testing.T) {
	a := newApp(t, nil)

	_, err := a.ProcessOrders(context.Background(), []bookly.Order{
		{ID: 1, Type: "drone", Quantity: 1, UnitPrice: 10, TaxType: "gen", CustomerType: "regular"},
	}, nil)
	require.ErrorIs(t, err, bookly.ErrUnknownKind)
}

func TestRegistryGuardsDiscountCapability(t *testing.T) {
	a := newApp(t, nil)

	c, ok := a.Engine().Registry().Lookup("discount")
	require.True(t, ok)
	assert.Equal(t, "discount", c.Name)

	require.ErrorIs(t, a.Registry().Check("discount", 42), capability.ErrCapabilityMismatch)
}

func TestWatch_SwapsStrategiesOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exam.yaml")
	require.NoError(t, os.WriteFile(path, []byte("discount:\n  strategy: regular\n"), 0o644))

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	a := newApp(t, cfg)
	require.NoError(t, a.Watch(path, 20*time.Millisecond))
	require.Error(t, a.Watch(path, 0))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("discount:\n  strategy: premium\n"), 0o644))

	assert.Eventually(t, func() bool {
		return a.Discount().CalculateDiscount(100) == 10
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, "Memoria", a.Store().Name())
}

func TestClose(t *testing.T) {
	a, err := app.New(context.Background(), nil, app.WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, a.Close())
	assert.Nil(t, a.Store())
}
