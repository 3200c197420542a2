// Package store defines the record collections the repositories are built on
// and ships the in-memory backend. Collections assign auto-increment integer
// ids that are never reused, and every mutating call is atomic per record.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no record matches an id or filter.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate is returned when a write breaks a unique index.
	ErrDuplicate = errors.New("store: duplicate key")
)

// Entity is implemented by pointers to stored record types.
type Entity interface {
	Fielder
	EntityID() int64
	SetEntityID(id int64)
	Touch(now time.Time, created bool)
}

// Record constrains T so that *T is an Entity.
type Record[T any] interface {
	*T
	Entity
}

// Cloner is implemented by record types that hold slices or pointers. The
// memory backend uses it to copy records deeply on the way in and out.
type Cloner[T any] interface {
	Clone() T
}

// Collection is a typed record store. Implementations return copies, so
// callers may mutate results freely.
type Collection[T any] interface {
	Create(ctx context.Context, rec *T) (*T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	FindOne(ctx context.Context, f Filter) (*T, error)
	// FindAll returns matches in insertion order.
	FindAll(ctx context.Context, f Filter) ([]*T, error)
	// Update loads the record, applies mutate and writes it back. Returning an
	// error from mutate aborts the write.
	Update(ctx context.Context, id int64, mutate func(*T) error) (*T, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
