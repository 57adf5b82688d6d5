// Package shell is the imperative shell around the pure rental decisions in core.
//
// It holds what all feature slices share: the retry loop for optimistic concurrency conflicts,
// the HandlerResult every command handler returns, the observability helpers (metrics, tracing, logging),
// and the post-commit delivery of member notifications.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
