// internal/repositories/concurrency.go
package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/poofware/screening-service/internal/utils"
)

/*
EntityWithVersion:

* `comparable`  → lets us use `==` to compare two values of type T
* the three concurrency methods
*/
type EntityWithVersion interface {
	comparable
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}

type UpdateIfVersionFunc[T EntityWithVersion] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (pgconn.CommandTag, error)

type GetByIDFunc[T EntityWithVersion] func(
	ctx context.Context,
	id string,
) (T, error)

/*
WithRetry runs a read-mutate-update loop with optimistic locking.

A mutate error aborts the loop without writing; only a row-version miss
retries. The winning entity (post-mutation, version bumped by the UPDATE)
is returned so callers can build responses without a re-read.
*/
func WithRetry[T EntityWithVersion](
	ctx context.Context,
	maxRetries int,
	id string,
	getByID GetByIDFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) (T, error) {
	var zero T
	for attempt := 0; attempt < maxRetries; attempt++ {
		current, err := getByID(ctx, id)
		if err != nil {
			return zero, err
		}

		// zero value of T (nil for pointers)
		if current == zero {
			return zero, pgx.ErrNoRows
		}

		oldVersion := current.GetRowVersion()

		if err := mutate(current); err != nil {
			return zero, err
		}

		tag, err := updateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return zero, err
		}
		if tag.RowsAffected() == 1 {
			current.SetRowVersion(oldVersion + 1)
			return current, nil
		}
		// someone else updated first – retry
	}
	return zero, fmt.Errorf("too much contention updating %q: %w", id, utils.ErrRowVersionConflict)
}
