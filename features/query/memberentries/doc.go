// Package memberentries lists every rental entry of one member, active and returned.
package memberentries
