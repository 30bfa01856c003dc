package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/greenlyst/greenmoney/pkg/transport"
)

const instrumentationName = "github.com/greenlyst/greenmoney"

const outcomeOK = "ok"

type instrumented struct {
	next    transport.Transport
	tracer  trace.Tracer
	metrics *Metrics
}

// Middleware wraps a transport with one client span and one metrics
// sample per remote call. A nil tracer uses the global provider; nil
// metrics records none.
func Middleware(tracer trace.Tracer, metrics *Metrics) transport.Middleware {
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return func(next transport.Transport) transport.Transport {
		return &instrumented{next: next, tracer: tracer, metrics: metrics}
	}
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Execute(ctx context.Context, p *transport.Payload) (*transport.RawResponse, error) {
	op := p.Operation.Name
	ctx, span := i.tracer.Start(ctx, "greenmoney."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("greenmoney.operation", op),
			attribute.String("greenmoney.transport", i.next.Name()),
			attribute.String("greenmoney.request_id", transport.RequestID(ctx)),
			semconv.URLFull(p.Endpoint),
		),
	)
	defer span.End()

	start := time.Now()
	raw, err := i.next.Execute(ctx, p)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		outcome := "error"
		if tErr, ok := transport.AsError(err); ok {
			outcome = string(tErr.Kind)
			if tErr.StatusCode != 0 {
				span.SetAttributes(semconv.HTTPResponseStatusCode(tErr.StatusCode))
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		i.metrics.observe(op, i.next.Name(), outcome, elapsed)
		return nil, err
	}

	if raw != nil && raw.StatusCode != 0 {
		span.SetAttributes(semconv.HTTPResponseStatusCode(raw.StatusCode))
	}
	span.SetStatus(codes.Ok, "")
	i.metrics.observe(op, i.next.Name(), outcomeOK, elapsed)
	return raw, nil
}
