// Package core contains the domain model of the library rental lifecycle:
// titles (books and DVDs), members, rental entries, waitlist queue items and member messages,
// plus the domain events the rental and waitlist features decide on.
//
// Everything in here is pure: no I/O, no clocks, no randomness. The time of a decision is always
// passed in by the caller, the stores and notifiers live in the shell.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
