package commands

import (
	"errors"

	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand asks the engine to move an order to a new status
// on behalf of an authenticated actor. The optional rider id is only
// meaningful when the target status is assigned and names the rider to bind;
// when absent, a rider actor self-accepts with their own id.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(orderID, requester, order.Accepted, nil)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type RequestTransitionCommand struct {
	orderID  kernel.UUID
	actor    actor.Actor
	toStatus order.Status
	riderID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a validated transition request.
func NewRequestTransitionCommand(
	orderID kernel.UUID,
	a actor.Actor,
	toStatus order.Status,
	riderID *kernel.UUID,
) (RequestTransitionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RequestTransitionCommand{}, err
	}
	if err := a.Validate(); err != nil {
		return RequestTransitionCommand{}, err
	}
	if err := toStatus.Validate(); err != nil {
		return RequestTransitionCommand{}, err
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return RequestTransitionCommand{}, err
		}
	}

	cmd := RequestTransitionCommand{
		orderID:  orderID,
		actor:    a,
		toStatus: toStatus,
		guard:    guard.NewConstructorGuard(),
	}
	if riderID != nil {
		id := *riderID
		cmd.riderID = &id
	}
	return cmd, nil
}

// OrderID returns the order to transition.
func (c RequestTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the requesting identity.
func (c RequestTransitionCommand) Actor() actor.Actor {
	return c.actor
}

// ToStatus returns the requested target status.
func (c RequestTransitionCommand) ToStatus() order.Status {
	return c.toStatus
}

// RiderID returns the explicitly supplied rider to bind, or nil.
func (c RequestTransitionCommand) RiderID() *kernel.UUID {
	return c.riderID
}

// Validate ensures the command was created through the constructor.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}
