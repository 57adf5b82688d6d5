package oteladapters_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore/oteladapters"
)

func newCollector() (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return oteladapters.NewMetricsCollector(provider.Meter("test")), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics), "collecting metrics failed")

	for _, scope := range resourceMetrics.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	t.Fatalf("metric %s not found", name)

	return metricdata.Metrics{}
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	collector, reader := newCollector()

	// act
	collector.RecordDurationContext(context.Background(), "rentalstore_tx_duration_seconds", 150*time.Millisecond, map[string]string{
		"operation": "within_tx",
		"status":    "success",
	})

	// assert
	histogram, ok := collect(t, reader, "rentalstore_tx_duration_seconds").Data.(metricdata.Histogram[float64])
	require.True(t, ok, "expected a float64 histogram")
	require.Len(t, histogram.DataPoints, 1)

	point := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), point.Count)
	assert.InDelta(t, 0.15, point.Sum, 0.001)

	expected := attribute.NewSet(attribute.String("operation", "within_tx"), attribute.String("status", "success"))
	assert.True(t, point.Attributes.Equals(&expected))
}

func Test_MetricsCollector_IncrementCounter_IsSafeForConcurrentUse(t *testing.T) {
	// arrange
	collector, reader := newCollector()
	labels := map[string]string{"command_type": "RentTitle"}

	var wg sync.WaitGroup

	// act
	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			collector.IncrementCounter("commandhandler_handled_total", labels)
		}()
	}

	wg.Wait()

	// assert
	sum, ok := collect(t, reader, "commandhandler_handled_total").Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected an int64 sum")
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(50), sum.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	collector, reader := newCollector()

	// act
	collector.RecordValue("outboxrelay_pending_records", 3, nil)
	collector.RecordValue("outboxrelay_pending_records", 7, nil)

	// assert
	gauge, ok := collect(t, reader, "outboxrelay_pending_records").Data.(metricdata.Gauge[float64])
	require.True(t, ok, "expected a float64 gauge")
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, float64(7), gauge.DataPoints[0].Value)
}
