// Package unreturnedentries lists the active rental entries of the library or of one member.
package unreturnedentries
