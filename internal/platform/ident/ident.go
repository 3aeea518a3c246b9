// Package ident supplies identifiers and timestamps to the usecases.
package ident

import (
	"time"

	"github.com/google/uuid"
)

// Generator mints globally unique record ids.
type Generator interface {
	NewID() string
}

// Clock is the wall-clock time source for record timestamps.
type Clock interface {
	Now() time.Time
}

// UUIDGenerator mints random (v4) UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SystemClock returns the current UTC time truncated to microseconds, the finest
// precision every backend stores.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
