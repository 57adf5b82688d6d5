// Package prolongrental gives an active rental entry another rental period.
package prolongrental
