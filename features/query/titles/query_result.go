package titles

import (
	"github.com/AntonStoeckl/library-rentals-go/core"
)

// Titles represents the query result, ordered by title id.
type Titles struct {
	TitleType core.TitleType
	Titles    []core.Title
	Count     int
}
