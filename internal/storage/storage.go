// Package storage contains object storage abstractions for S3-compatible
// stores. File bytes never pass through this process: clients upload and
// download directly against presigned URLs, so the interface deals only in
// grants and deletion.
package storage

import (
	"context"
	"time"
)

// Storage is a reusable, S3-compatible object storage client interface.
type Storage interface {
	// PresignPut returns a time-limited URL authorizing a single PUT of the
	// given object key. No other verb and no other key is covered.
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
}
