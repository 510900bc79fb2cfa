// Package kv holds the persisted medium abstraction: a slot of bytes per key,
// read and overwritten as a whole.
package kv

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("storage medium unavailable")

type Medium interface {
	// Get returns found=false when nothing is stored under key.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set replaces the value under key with a single write.
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}
