package commands

import (
	"context"

	"orderhub/internal/core/domain/model/rider"
	"orderhub/internal/pkg/errs"
)

// ReleaseStuckRidersCommandHandler reconciles rider assigned sets against the
// order store. In the normal flow a terminal transition releases its rider in
// the same transaction, so drift only appears after partial failures or
// manual data fixes; this handler repairs it by dropping assignments whose
// orders are no longer active.
type ReleaseStuckRidersCommandHandler struct {
	uowFactory UoWFactory
	notifier   AvailabilityNotifier
}

// NewReleaseStuckRidersCommandHandler creates a handler with its dependencies.
func NewReleaseStuckRidersCommandHandler(
	uowFactory UoWFactory,
	notifier AvailabilityNotifier,
) (ReleaseStuckRidersCommandHandler, error) {
	if uowFactory == nil {
		return ReleaseStuckRidersCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if notifier == nil {
		return ReleaseStuckRidersCommandHandler{}, errs.NewValueIsRequiredError("notifier")
	}

	return ReleaseStuckRidersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}, nil
}

// Handle sweeps every busy rider and releases assignments whose orders have
// terminalized. Returns the riders whose state changed.
func (h ReleaseStuckRidersCommandHandler) Handle(
	ctx context.Context, cmd ReleaseStuckRidersCommand,
) ([]*rider.Rider, error) {
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

	orders := uow.OrderRepository()
	riders := uow.RiderRepository()

	busy, err := riders.GetAllBusy(ctx)
	if err != nil {
		return nil, err
	}

	var repaired []*rider.Rider
	for _, rd := range busy {
		active, err := orders.GetActiveByRider(ctx, rd.ID())
		if err != nil {
			return nil, err
		}

		activeIDs := make(map[string]struct{}, len(active))
		for _, o := range active {
			activeIDs[o.ID().String()] = struct{}{}
		}

		changed := false
		for _, orderID := range rd.AssignedOrders() {
			if _, ok := activeIDs[orderID.String()]; ok {
				continue
			}
			if err := rd.ReleaseOrder(orderID); err != nil {
				return nil, err
			}
			changed = true
		}
		if !changed {
			continue
		}

		if err := riders.Update(ctx, rd); err != nil {
			return nil, err
		}
		repaired = append(repaired, rd)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	for _, rd := range repaired {
		h.notifier.BroadcastAvailability(rd)
	}
	return repaired, nil
}
