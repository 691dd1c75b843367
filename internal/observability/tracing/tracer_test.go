package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_EndSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	_, ok := StartSpan(context.Background(), "article.Create", attribute.Int("categories", 2))
	EndSpan(ok, nil)

	_, failed := StartSpan(context.Background(), "article.RemoveBulk")
	EndSpan(failed, errors.New("articles not found: a2"))

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	if spans[0].Name != "article.Create" {
		t.Errorf("span name = %q, want article.Create", spans[0].Name)
	}
	if spans[0].Status.Code == codes.Error {
		t.Error("successful span must not carry an error status")
	}

	if spans[1].Status.Code != codes.Error {
		t.Errorf("failed span status = %v, want Error", spans[1].Status.Code)
	}
	if len(spans[1].Events) == 0 {
		t.Error("failed span should record the error as an event")
	}
}
