package handlers

import (
	"context"
	"fmt"
	"log"

	"weather-api/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceVersion = "0.1.0"

// InitTracer inicializa o tracer OpenTelemetry e retorna uma função para limpeza
func InitTracer(cfg config.Config) (func(), error) {
	// Configurar propagador
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	otel.SetTextMapPropagator(propagator)

	if !cfg.TracingEnabled {
		log.Println("Tracing desativado")
		return func() {}, nil
	}

	// Criar exporter para Zipkin
	exporter, err := zipkin.New(cfg.ZipkinURL)
	if err != nil {
		return nil, fmt.Errorf("error creating zipkin exporter: %w", err)
	}

	// Criar resource que representa a aplicação
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating resource: %w", err)
	}

	// Configurar o provider de tracer
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)

	log.Printf("Tracing ativo, exportando para %s", cfg.ZipkinURL)

	// Retornar função para limpeza de recursos quando a aplicação for encerrada
	return func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Printf("Erro ao encerrar tracer provider: %v", err)
		}
	}, nil
}
