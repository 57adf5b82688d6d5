// Package rentalentrydetails reads one ledger entry by id.
package rentalentrydetails
