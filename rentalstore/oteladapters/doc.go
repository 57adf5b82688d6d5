// Package oteladapters implements the rentalstore observability interfaces on top of OpenTelemetry.
//
// The same collectors serve the Postgres engine, the command and query wrappers, and the outbox relay:
//
//	providers, _ := oteladapters.NewProviders("libraryd")
//	metrics := oteladapters.NewMetricsCollector(providers.Meter("libraryd"))
//	tracing := oteladapters.NewTracingCollector(providers.Tracer("libraryd"))
//	logger := oteladapters.NewSlogBridgeLogger("libraryd")
//
//	store, _ := postgresengine.NewStoreFromPGXPool(pool,
//		postgresengine.WithMetrics(metrics),
//		postgresengine.WithTracing(tracing),
//		postgresengine.WithContextualLogger(logger),
//	)
package oteladapters
