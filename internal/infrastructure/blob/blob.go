package blob

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotExist is returned by Get for a missing object. Delete never
// returns it: deleting what is already gone is a success.
var ErrNotExist = errors.New("object does not exist")

// Store holds encrypted file content, keyed by an opaque storage key.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewKey builds a unique storage key for an uploaded file. The original
// filename is kept as a suffix for operability; the uuid prefix prevents
// collisions and path guessing.
func NewKey(filename string) string {
	return fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(filename))
}
