// Package rentalentries lists the whole rental history, returned entries included, optionally for one title.
package rentalentries
