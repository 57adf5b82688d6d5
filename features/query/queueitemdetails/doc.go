// Package queueitemdetails reads one waitlist item by id.
package queueitemdetails
