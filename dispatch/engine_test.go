package dispatch_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ainaplanass/exam/animal"
	"github.com/ainaplanass/exam/capability"
	"github.com/ainaplanass/exam/device"
	"github.com/ainaplanass/exam/dispatch"
)

func newEngine(t *testing.T, opts ...dispatch.Option) *dispatch.Engine {
	t.Helper()
	reg := capability.NewRegistry()
	require.NoError(t, animal.Register(reg))
	require.NoError(t, device.Register(reg))
	return dispatch.NewEngine(reg, opts...)
}

func TestBindAs_CountsOutcomes(t *testing.T) {
	m := dispatch.NewMetrics("exam")
	e := newEngine(t, dispatch.WithMetrics(m))

	h, err := dispatch.BindAs[animal.Flyer](e, "flyer", animal.NewEagle("Águila"))
	require.NoError(t, err)
	assert.Equal(t, "flyer", h.Capability())
	assert.Equal(t, "Águila vuela alto en el cielo", dispatch.Call(h, animal.Flyer.Fly))

	_, err = dispatch.BindAs[animal.Flyer](e, "flyer", animal.NewPenguin("Pingu"))
	require.ErrorIs(t, err, capability.ErrCapabilityMismatch)
	assert.Contains(t, err.Error(), `"flyer"`)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bindings.WithLabelValues("flyer", "animal.Eagle", "bound")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bindings.WithLabelValues("flyer", "animal.Penguin", "rejected")))
}

func TestBindAs_UnknownOrWrongCapability(t *testing.T) {
	e := newEngine(t)

	_, err := dispatch.BindAs[animal.Flyer](e, "teleporter", animal.NewEagle("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a registered capability")

	_, err = dispatch.BindAs[animal.Flyer](e, "swimmer", animal.NewDuck("d"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, capability.ErrCapabilityMismatch)
}

func TestBindAs_LogsRejection(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	e := newEngine(t, dispatch.WithLogger(logger))

	_, err := dispatch.BindAs[device.Scanner](e, "scannable", device.SimplePrinter{})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "capability binding rejected")
	assert.Contains(t, buf.String(), "variant=device.SimplePrinter")
}

func TestObserve_RecordsSpanAndCounter(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	m := dispatch.NewMetrics("exam")
	e := newEngine(t, dispatch.WithMetrics(m), dispatch.WithTracer(tp.Tracer("test")))

	h, err := dispatch.BindAs[device.Printer](e, "printable", device.SimplePrinter{})
	require.NoError(t, err)

	got := dispatch.Observe(context.Background(), e, h, "print", device.Printer.Print, "acta.pdf")
	assert.Equal(t, device.SimplePrinter{}.Print("acta.pdf"), got)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "dispatch.printable.print", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("capability.variant", "device.SimplePrinter"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Invocations.WithLabelValues("printable", "device.SimplePrinter", "print")))
}

func TestObserveCall_WithoutMetrics(t *testing.T) {
	e := newEngine(t)
	assert.Nil(t, e.Metrics())

	h, err := dispatch.BindAs[animal.Communicator](e, "communicator", animal.Fox{})
	require.NoError(t, err)
	assert.Equal(t, "ring-ding-ding-ding-dingeringeding",
		dispatch.ObserveCall(context.Background(), e, h, "communicate", animal.Communicator.Communicate))
}
