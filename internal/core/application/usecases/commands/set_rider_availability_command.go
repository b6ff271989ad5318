package commands

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/guard"
)

var ErrSetRiderAvailabilityCommandIsNotConstructed = errors.New(
	"SetRiderAvailabilityCommand must be created via NewSetRiderAvailabilityCommand constructor",
)

// SetRiderAvailabilityCommand flips a rider between available and offline.
type SetRiderAvailabilityCommand struct {
	riderID kernel.UUID
	online  bool

	guard guard.ConstructorGuard
}

// NewSetRiderAvailabilityCommand creates a validated availability flip.
func NewSetRiderAvailabilityCommand(riderID kernel.UUID, online bool) (SetRiderAvailabilityCommand, error) {
	if err := riderID.Validate(); err != nil {
		return SetRiderAvailabilityCommand{}, err
	}

	return SetRiderAvailabilityCommand{
		riderID: riderID,
		online:  online,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RiderID returns the rider whose availability changes.
func (c SetRiderAvailabilityCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Online reports the requested availability.
func (c SetRiderAvailabilityCommand) Online() bool {
	return c.online
}

// Validate ensures the command was created through the constructor.
func (c SetRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderAvailabilityCommandIsNotConstructed)
}
