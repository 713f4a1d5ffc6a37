package store

import (
	"github.com/google/uuid"

	"github.com/matzehuels/stopover/pkg/errors"
)

func notFound(id string) error {
	return errors.New(errors.ErrCodeRunNotFound, "run %q not found", id)
}

// validID rejects anything but a UUID, so IDs can never escape the store
// directory.
func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid run id %q", id)
	}
	return nil
}
