// Package blob provides the key-value blob store backing store persistence.
// A missing key means "no prior state"; callers that find a present but
// unparseable value treat it the same way and clear the key.
package blob

import (
	"context"
	"errors"
)

// Well-known keys written by the state layer.
const (
	KeyCart  = "cart"
	KeyUser  = "user"
	KeyToken = "token"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("blob not found")

// Store is a minimal key-value blob store. Only one component writes any
// given key, so backends need no write-write conflict handling.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
