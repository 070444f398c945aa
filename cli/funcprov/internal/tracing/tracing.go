// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package tracing emits OpenTelemetry spans for provisioning phases. Spans are dropped
// unless a trace log file is configured with --trace-log-file.
package tracing

import (
	"context"
	"fmt"
	"io"

	"github.com/azure/funcprov/cli/funcprov/internal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/azure/funcprov"

const (
	SubscriptionIdKey = attribute.Key("funcprov.subscription.id")
	ResourceGroupKey  = attribute.Key("funcprov.resourcegroup")
	FunctionAppKey    = attribute.Key("funcprov.functionapp.name")
	FunctionTypeKey   = attribute.Key("funcprov.functionapp.type")
	PhaseKey          = attribute.Key("funcprov.phase")
)

// Start begins a new span using the global tracer provider.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// End ends the span, marking it failed when err is non-nil.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

// NewFileTracerProvider creates a tracer provider that synchronously writes every ended span as JSON to w,
// and installs it as the global provider. The caller must Shutdown the provider to flush it.
func NewFileTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "funcprov"),
			attribute.String("service.version", internal.GetVersionNumber()),
		)),
	)
	otel.SetTracerProvider(tp)

	return tp, nil
}
