package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore/oteladapters"
)

func Test_NewProviders_WiresProcessorsAndReaders(t *testing.T) {
	// arrange
	recorder := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()

	providers, err := oteladapters.NewProviders("libraryd",
		oteladapters.WithSpanProcessor(recorder),
		oteladapters.WithMetricReader(reader),
		oteladapters.WithoutGlobalRegistration(),
	)
	require.NoError(t, err)

	// act
	tracing := oteladapters.NewTracingCollector(providers.Tracer("test"))
	_, span := tracing.StartSpan(context.Background(), "rentalstore.tx", nil)
	tracing.FinishSpan(span, "success", nil)

	oteladapters.NewMetricsCollector(providers.Meter("test")).IncrementCounter("rentalstore_database_errors_total", nil)

	// assert
	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "rentalstore.tx", ended[0].Name())

	serviceName, ok := ended[0].Resource().Set().Value("service.name")
	require.True(t, ok)
	assert.Equal(t, "libraryd", serviceName.AsString())

	assert.Equal(t, "rentalstore_database_errors_total", collect(t, reader, "rentalstore_database_errors_total").Name)
	assert.NoError(t, providers.Shutdown(context.Background()))
}
