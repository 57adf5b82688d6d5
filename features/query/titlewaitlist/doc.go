// Package titlewaitlist lists the members still waiting for a title, oldest queue item first.
package titlewaitlist
