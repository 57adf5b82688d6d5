// Package spies provides capturing test doubles for the observability interfaces and the notifier.
package spies
