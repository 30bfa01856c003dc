package telemetry_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/greenlyst/greenmoney/internal/telemetry"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

type stubTransport struct {
	raw *transport.RawResponse
	err error
}

func (s *stubTransport) Execute(ctx context.Context, p *transport.Payload) (*transport.RawResponse, error) {
	return s.raw, s.err
}

func (s *stubTransport) Name() string { return "form" }

func setup(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider, *telemetry.Metrics) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return recorder, tp, telemetry.NewMetrics(prometheus.NewRegistry())
}

func payload(op string) *transport.Payload {
	return &transport.Payload{
		Operation: transport.Operation{Name: op},
		Endpoint:  "https://cpsandbox.com/echeck.asmx",
		Fields:    transport.FieldsOf("Check_ID", "55"),
	}
}

func attr(kvs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range kvs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestMiddleware_Success(t *testing.T) {
	recorder, tp, metrics := setup(t)
	next := &stubTransport{raw: &transport.RawResponse{Text: "0,ok", StatusCode: 200}}
	wrapped := telemetry.Middleware(tp.Tracer("test"), metrics)(next)

	ctx := transport.WithRequestID(context.Background(), "req-1")
	raw, err := wrapped.Execute(ctx, payload("CheckStatus"))

	require.NoError(t, err)
	assert.Equal(t, "0,ok", raw.Text)
	assert.Equal(t, "form", wrapped.Name())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "greenmoney.CheckStatus", span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)

	v, ok := attr(span.Attributes(), "greenmoney.request_id")
	require.True(t, ok)
	assert.Equal(t, "req-1", v.AsString())
	v, ok = attr(span.Attributes(), "http.response.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(200), v.AsInt64())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Calls.WithLabelValues("CheckStatus", "form", "ok")))
}

func TestMiddleware_Failure(t *testing.T) {
	recorder, tp, metrics := setup(t)
	next := &stubTransport{err: &transport.Error{
		Kind:       transport.KindHTTPStatus,
		Operation:  "CancelCheck",
		Message:    "remote service returned HTTP 503",
		StatusCode: 503,
	}}
	wrapped := telemetry.Middleware(tp.Tracer("test"), metrics)(next)

	_, err := wrapped.Execute(context.Background(), payload("CancelCheck"))

	assert.True(t, transport.IsKind(err, transport.KindHTTPStatus))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "http_status", spans[0].Status().Description)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Calls.WithLabelValues("CancelCheck", "form", "http_status")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Calls.WithLabelValues("CancelCheck", "form", "ok")))
}

func TestMiddleware_NilMetrics(t *testing.T) {
	_, tp, _ := setup(t)
	wrapped := telemetry.Middleware(tp.Tracer("test"), nil)(&stubTransport{raw: &transport.RawResponse{Text: "0"}})

	_, err := wrapped.Execute(context.Background(), payload("CheckStatus"))
	assert.NoError(t, err)
}

func TestNewTracerProvider(t *testing.T) {
	t.Run("stdout exporter writes ended spans", func(t *testing.T) {
		var buf bytes.Buffer
		tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
			Exporter:    telemetry.ExporterStdout,
			ServiceName: "greenmoney-test",
			Writer:      &buf,
		})
		require.NoError(t, err)

		_, span := tp.Tracer("test").Start(context.Background(), "greenmoney.CheckStatus")
		span.End()
		require.NoError(t, tp.Shutdown(context.Background()))

		assert.Contains(t, buf.String(), "greenmoney.CheckStatus")
	})

	t.Run("none builds a provider without exporter", func(t *testing.T) {
		tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{ServiceName: "greenmoney-test"})
		require.NoError(t, err)
		assert.NoError(t, tp.Shutdown(context.Background()))
	})

	t.Run("unknown exporter", func(t *testing.T) {
		_, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{Exporter: "zipkin"})
		assert.Error(t, err)
	})
}
