package commands

import (
	"context"
	"errors"

	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/model/rider"
	"orderhub/internal/core/domain/services"
	"orderhub/internal/pkg/errs"
)

// TransitionNotifier publishes a committed transition to the interested rooms.
// Handlers call it strictly after commit; a transition that rolled back is
// never announced.
type TransitionNotifier interface {
	Notify(o *order.Order, status order.Status, extra map[string]any)
}

// RequestTransitionCommandHandler runs a lifecycle transition end to end:
// authorization, edge and guard validation, rider binding and release, the
// conditional status write, and post-commit notification.
type RequestTransitionCommandHandler struct {
	uowFactory UoWFactory
	gate       services.AuthorizationGate
	notifier   TransitionNotifier
}

// NewRequestTransitionCommandHandler creates a handler with its dependencies.
func NewRequestTransitionCommandHandler(
	uowFactory UoWFactory,
	gate services.AuthorizationGate,
	notifier TransitionNotifier,
) (RequestTransitionCommandHandler, error) {
	if uowFactory == nil {
		return RequestTransitionCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if notifier == nil {
		return RequestTransitionCommandHandler{}, errs.NewValueIsRequiredError("notifier")
	}

	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		notifier:   notifier,
	}, nil
}

// Handle applies the requested transition and returns the updated order.
//
// The checks run in a fixed sequence so callers always get the most specific
// error: not-found, then authorization, then edge validity, then guards, then
// rider availability, and last the conditional write, which turns a lost race
// into ConflictError instead of a silent double transition.
func (h RequestTransitionCommandHandler) Handle(
	ctx context.Context, cmd RequestTransitionCommand,
) (*order.Order, error) {
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

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	expected := o.Status()
	to := cmd.ToStatus()

	// A rider self-accepting an unassigned order is authorized against
	// their own availability record.
	var actorRider *rider.Rider
	if cmd.Actor().Role() == actor.RoleRider && o.RiderID() == nil {
		actorRider, err = riders.Get(ctx, cmd.Actor().ID())
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	if err = h.gate.Authorize(cmd.Actor(), o, to, actorRider); err != nil {
		return nil, err
	}

	// Edge legality before guards, so an illegal edge reports
	// invalid-transition even when a guard would also have failed.
	if _, err = expected.TransitionTo(to); err != nil {
		return nil, err
	}

	var boundRider *rider.Rider
	if riderID := o.RiderID(); riderID != nil {
		boundRider, err = riders.Get(ctx, *riderID)
		if err != nil {
			return nil, err
		}
	}
	riderOnline := boundRider != nil && boundRider.Status().IsOnline()
	if err = o.CheckGuards(to, riderOnline); err != nil {
		return nil, err
	}

	// Binding happens on the way into assigned, atomically with the
	// status write: the rider accepts the order and the order records
	// the rider in the same transaction.
	var assignedRider *rider.Rider
	if to == order.Assigned && o.RiderID() == nil {
		targetID, rerr := resolveTargetRider(cmd)
		if rerr != nil {
			return nil, rerr
		}

		if actorRider != nil && actorRider.ID().IsEqual(targetID) {
			assignedRider = actorRider
		} else {
			assignedRider, err = riders.Get(ctx, targetID)
			if err != nil {
				return nil, err
			}
		}

		if err = assignedRider.AcceptOrder(o.ID()); err != nil {
			return nil, err
		}
		if err = o.AssignRider(assignedRider.ID()); err != nil {
			return nil, err
		}
		boundRider = assignedRider
	}

	if err = o.ChangeStatus(to); err != nil {
		return nil, err
	}
	if err = orders.UpdateStatus(ctx, o, expected); err != nil {
		return nil, err
	}
	if assignedRider != nil {
		if err = riders.Update(ctx, assignedRider); err != nil {
			return nil, err
		}
	}

	// On a terminal transition the bound rider releases the order in the
	// same transaction; a partial release can never be observed.
	var releasedRider *rider.Rider
	if to.IsTerminal() && boundRider != nil && assignedRider == nil {
		if err = boundRider.ReleaseOrder(o.ID()); err != nil && !errors.Is(err, rider.ErrOrderNotAssigned) {
			return nil, err
		}
		if err == nil {
			if err = riders.Update(ctx, boundRider); err != nil {
				return nil, err
			}
			releasedRider = boundRider
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	extra := map[string]any{}
	if riderID := o.RiderID(); riderID != nil {
		extra["riderId"] = riderID.String()
	}
	if releasedRider != nil {
		extra["riderStatus"] = releasedRider.Status().String()
	}
	h.notifier.Notify(o, to, extra)

	return o, nil
}

// resolveTargetRider picks the rider to bind on a first-time assignment.
// Rider actors default to themselves; everyone else must name one.
func resolveTargetRider(cmd RequestTransitionCommand) (kernel.UUID, error) {
	if id := cmd.RiderID(); id != nil {
		return *id, nil
	}
	if cmd.Actor().Role() == actor.RoleRider {
		return cmd.Actor().ID(), nil
	}
	return kernel.UUID{}, errs.NewValueIsRequiredError("rider id")
}
