// Package observable decorates command and query handlers with metrics, tracing, and logging.
package observable
