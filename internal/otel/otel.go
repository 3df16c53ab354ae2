package otel

import (
	"context"
	"sync"

	eventbus "github.com/Yunoo/graphql-pagination-transform/internal/eventbus"
	events "github.com/Yunoo/graphql-pagination-transform/internal/events"
	runid "github.com/Yunoo/graphql-pagination-transform/internal/runid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Setup configures OpenTelemetry and attaches subscribers to bus.
// If endpoint is empty, no telemetry is configured.
func Setup(bus *eventbus.Bus, endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	unsubscribe := Register(bus, tp.Tracer("gqlpaginate"))
	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

type subscriber struct {
	tracer trace.Tracer
	spans  sync.Map // run id -> trace.Span
}

// Register records one span per transform run on tracer, with an event for
// each pass. It returns a function removing the subscriptions.
func Register(bus *eventbus.Bus, tracer trace.Tracer) (unsubscribe func()) {
	s := &subscriber{tracer: tracer}
	unsubs := []func(){
		eventbus.Subscribe(bus, func(ctx context.Context, e events.TransformStart) {
			rid, _ := runid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "transform")
			span.SetAttributes(
				attribute.String("transform.run_id", rid),
				attribute.Int("transform.sources", e.Sources),
				attribute.String("transform.directive", e.DirectiveName),
			)
			s.spans.Store(rid, span)
		}),
		eventbus.Subscribe(bus, func(ctx context.Context, e events.TargetsScanned) {
			s.addEvent(ctx, "scan", attribute.Int("transform.targets", e.Targets))
		}),
		eventbus.Subscribe(bus, func(ctx context.Context, e events.TypesSynthesized) {
			s.addEvent(ctx, "synthesize", attribute.Int("transform.definitions", e.Definitions))
		}),
		eventbus.Subscribe(bus, func(ctx context.Context, e events.FieldsRewritten) {
			s.addEvent(ctx, "rewrite", attribute.Int("transform.fields", e.Fields))
		}),
		eventbus.Subscribe(bus, func(ctx context.Context, e events.TransformFinish) {
			rid, _ := runid.FromContext(ctx)
			v, ok := s.spans.LoadAndDelete(rid)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(attribute.Int64("transform.duration_ms", e.Duration.Milliseconds()))
			if e.Err != nil {
				span.RecordError(e.Err)
				span.SetStatus(codes.Error, e.Err.Error())
			}
			span.End()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (s *subscriber) addEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	rid, _ := runid.FromContext(ctx)
	if v, ok := s.spans.Load(rid); ok {
		v.(trace.Span).AddEvent(name, trace.WithAttributes(attrs...))
	}
}
