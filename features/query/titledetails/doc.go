// Package titledetails reads one title by id, together with the length of its waitlist.
package titledetails
