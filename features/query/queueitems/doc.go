// Package queueitems lists every waitlist item, resolved ones included.
package queueitems
