// Package ports defines the contracts between the engine's core and its
// adapters: repositories over the persistence store and the room publisher
// the notification side publishes through.
package ports

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates.
// The store behind it must support atomic conditional updates; that is what
// linearizes concurrent transitions on the same order.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus persists the aggregate's status (and rider binding, if
	// newly set) only if the stored status still equals expected.
	//
	// When another actor raced the transition and the stored status moved
	// on, no write happens and ConflictError is returned; the caller should
	// re-fetch and resubmit. Returns ObjectNotFoundError if the order
	// disappeared.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// GetActiveByRider retrieves the rider's orders that are not yet
	// delivered or cancelled. Used by availability checks and the
	// reconciliation job.
	GetActiveByRider(ctx context.Context, riderID kernel.UUID) ([]*order.Order, error)
}
