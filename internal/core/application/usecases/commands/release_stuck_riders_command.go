package commands

import (
	"errors"

	"orderhub/internal/pkg/guard"
)

var ErrReleaseStuckRidersCommandIsNotConstructed = errors.New(
	"ReleaseStuckRidersCommand must be created via NewReleaseStuckRidersCommand constructor",
)

// ReleaseStuckRidersCommand triggers a reconciliation sweep over busy riders.
// It carries no parameters; the handler scans every busy rider.
type ReleaseStuckRidersCommand struct {
	guard guard.ConstructorGuard
}

// NewReleaseStuckRidersCommand creates the sweep command.
func NewReleaseStuckRidersCommand() (ReleaseStuckRidersCommand, error) {
	return ReleaseStuckRidersCommand{guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseStuckRidersCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStuckRidersCommandIsNotConstructed)
}
