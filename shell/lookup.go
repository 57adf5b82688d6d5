package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
)

// FoundOrNil turns a lookup that failed with rentalstore.ErrRecordNotFound into a nil result without error.
// Decide functions then see a missing record as nil.
func FoundOrNil[T any](value T, err error) (*T, error) {
	if errors.Is(err, rentalstore.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &value, nil
}
