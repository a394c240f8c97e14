package adapter

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by GetLatest when no blob has been stored for the key.
var ErrBlobNotFound = errors.New("blob not found")

// RemoteBlobStore is an opaque remote object store with put and get-latest semantics.
type RemoteBlobStore interface {
	// Put stores payload as the latest blob for key.
	Put(ctx context.Context, key string, payload []byte) error

	// GetLatest returns the most recently stored blob for key.
	GetLatest(ctx context.Context, key string) ([]byte, error)
}
