package commands

import (
	"context"

	"orderhub/internal/core/domain/model/rider"
	"orderhub/internal/pkg/errs"
)

// AvailabilityNotifier broadcasts a rider's availability flip. Called only
// after the flip committed.
type AvailabilityNotifier interface {
	BroadcastAvailability(rd *rider.Rider)
}

// SetRiderAvailabilityCommandHandler persists availability flips and
// broadcasts them to the riders room.
type SetRiderAvailabilityCommandHandler struct {
	uowFactory RiderUoWFactory
	notifier   AvailabilityNotifier
}

// NewSetRiderAvailabilityCommandHandler creates a handler with its dependencies.
func NewSetRiderAvailabilityCommandHandler(
	uowFactory RiderUoWFactory,
	notifier AvailabilityNotifier,
) (SetRiderAvailabilityCommandHandler, error) {
	if uowFactory == nil {
		return SetRiderAvailabilityCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if notifier == nil {
		return SetRiderAvailabilityCommandHandler{}, errs.NewValueIsRequiredError("notifier")
	}

	return SetRiderAvailabilityCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}, nil
}

// Handle flips the rider's availability and returns the updated rider.
// Coming online fails with HasActiveOrdersError while the rider still carries
// orders; going offline always succeeds.
func (h SetRiderAvailabilityCommandHandler) Handle(
	ctx context.Context, cmd SetRiderAvailabilityCommand,
) (*rider.Rider, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback(ctx)
		}
	}()

	riders := uow.RiderRepository()

	rd, err := riders.Get(ctx, cmd.RiderID())
	if err != nil {
		return nil, err
	}

	if err = rd.SetAvailability(cmd.Online()); err != nil {
		return nil, err
	}
	if err = riders.Update(ctx, rd); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	h.notifier.BroadcastAvailability(rd)
	return rd, nil
}
