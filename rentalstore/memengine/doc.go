// Package memengine is a process-local rentalstore.Store.
//
// Every unit of work runs under one store-wide lock against a copy of the state,
// the copy replaces the state only when the unit of work returned nil.
// This makes WithinTx serializable, so concurrent rentals of the last copy never oversell.
package memengine
