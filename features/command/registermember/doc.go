// Package registermember signs up a new library member and sends the welcome message.
// Registering the same personal id twice is idempotent and returns the existing member.
package registermember
