package waitlist

import (
	"fmt"
	"strings"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

// Policy decides which of the waiting members gets the returned title.
type Policy string

const (
	// PolicyLatestFirst picks the member who queued most recently.
	PolicyLatestFirst Policy = "latest_first"

	// PolicyFirstComeFirstServed picks the member who queued first.
	PolicyFirstComeFirstServed Policy = "fcfs"
)

// ParsePolicy maps a configuration value to a Policy, an empty value means PolicyLatestFirst.
func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyLatestFirst:
		return PolicyLatestFirst, nil
	case PolicyFirstComeFirstServed:
		return PolicyFirstComeFirstServed, nil
	default:
		return "", fmt.Errorf("unknown waitlist policy %q", value)
	}
}

// Select picks one item of the unresolved items of a title, which must be ordered by TimeAdded ascending.
// Ties on TimeAdded go to the item added last for PolicyLatestFirst and the one added first for FCFS.
func Select(items []core.QueueItem, policy Policy) (core.QueueItem, bool) {
	if len(items) == 0 {
		return core.QueueItem{}, false
	}

	if policy == PolicyFirstComeFirstServed {
		return items[0], true
	}

	return items[len(items)-1], true
}
