package ports

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/rider"
)

// RiderRepository is the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider aggregate.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by id.
	// Returns ObjectNotFoundError when no such rider exists.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllBusy retrieves riders currently marked busy.
	// Used by the reconciliation job to find riders whose assigned work has
	// all terminalized without a matching release.
	GetAllBusy(ctx context.Context) ([]*rider.Rider, error)
}
