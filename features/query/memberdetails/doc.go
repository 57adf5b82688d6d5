// Package memberdetails reads one member by id.
package memberdetails
