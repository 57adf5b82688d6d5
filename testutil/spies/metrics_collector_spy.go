package spies

import (
	"context"
	"maps"
	"sync"
	"time"
)

type metricKind int

const (
	durationMetric metricKind = iota
	counterMetric
	valueMetric
)

type metricRecord struct {
	kind     metricKind
	metric   string
	duration time.Duration
	value    float64
	labels   map[string]string
}

// MetricsCollectorSpy records every metric call, it implements rentalstore.ContextualMetricsCollector.
// A spy created with recordCalls false drops everything.
type MetricsCollectorSpy struct {
	mu          sync.Mutex
	records     []metricRecord
	recordCalls bool
}

func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{recordCalls: recordCalls}
}

func (s *MetricsCollectorSpy) add(record metricRecord) {
	if !s.recordCalls {
		return
	}

	record.labels = maps.Clone(record.labels)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.add(metricRecord{kind: durationMetric, metric: metric, duration: duration, labels: labels})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.add(metricRecord{kind: counterMetric, metric: metric, labels: labels})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.add(metricRecord{kind: valueMetric, metric: metric, value: value, labels: labels})
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

func (s *MetricsCollectorSpy) labelsOf(kind metricKind, metric string) []map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matching []map[string]string
	for _, record := range s.records {
		if record.kind == kind && record.metric == metric {
			matching = append(matching, record.labels)
		}
	}

	return matching
}

// CountCounterRecordsForMetric counts the increments of one counter.
func (s *MetricsCollectorSpy) CountCounterRecordsForMetric(metric string) int {
	return len(s.labelsOf(counterMetric, metric))
}

// HasDurationRecordForMetric starts a matcher over the duration records of metric.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	return &MetricRecordMatcher{candidates: s.labelsOf(durationMetric, metric)}
}

// HasCounterRecordForMetric starts a matcher over the counter records of metric.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	return &MetricRecordMatcher{candidates: s.labelsOf(counterMetric, metric)}
}

// MetricRecordMatcher narrows recorded metrics down by label.
type MetricRecordMatcher struct {
	candidates []map[string]string
}

func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	kept := m.candidates[:0:0]
	for _, labels := range m.candidates {
		if labels[key] == value {
			kept = append(kept, labels)
		}
	}

	m.candidates = kept

	return m
}

// Assert reports whether any record is left.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}
