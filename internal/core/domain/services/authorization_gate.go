package services

import (
	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/model/rider"
	"orderhub/internal/pkg/errs"
)

// AuthorizationGate decides whether an actor may request a transition on an
// order. It is the single place role checks live; the transition table and
// guards are a separate, later step, so an admin passing the gate can still
// fail on an illegal edge.
//
// Rules are evaluated in order, first match wins:
//  1. admin: always allowed
//  2. restaurant: allowed only when it owns one of the order's restaurants
//  3. rider: allowed when already the assigned rider, or when self-accepting
//     an unassigned order while online (offline riders cannot accept)
//  4. customer: allowed only for cancelling their own pending order
//  5. everything else: denied
//
// Denials carry structured reasons so the caller can produce a precise
// user-facing message without string matching.
type AuthorizationGate struct{}

// NewAuthorizationGate creates the gate. It is stateless and safe to share.
func NewAuthorizationGate() AuthorizationGate {
	return AuthorizationGate{}
}

// Authorize applies the role rules for the requested transition.
//
// actorRider is the rider record of a rider actor, loaded by the caller when
// the order is unassigned and a first-time acceptance is being evaluated; it
// may be nil in every other case.
func (AuthorizationGate) Authorize(
	a actor.Actor,
	o *order.Order,
	requested order.Status,
	actorRider *rider.Rider,
) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}

	switch a.Role() {
	case actor.RoleAdmin:
		return nil

	case actor.RoleRestaurant:
		if owned := a.OwnedRestaurantID(); owned != nil && o.HasRestaurant(*owned) {
			return nil
		}
		return errs.NewForbiddenError(errs.ReasonNotOwner, "restaurant does not own this order")

	case actor.RoleRider:
		if assigned := o.RiderID(); assigned != nil {
			if assigned.IsEqual(a.ID()) {
				return nil
			}
			return errs.NewForbiddenError(errs.ReasonNotOwner, "order is assigned to another rider")
		}
		if requested != order.Assigned {
			return errs.NewForbiddenError(errs.ReasonRoleForbidden, "rider may only accept unassigned orders")
		}
		if actorRider == nil || !actorRider.Status().IsOnline() {
			return errs.NewForbiddenError(errs.ReasonRiderOffline, "rider must be online to accept")
		}
		return nil

	case actor.RoleCustomer:
		if !o.CustomerID().IsEqual(a.ID()) {
			return errs.NewForbiddenError(errs.ReasonNotOwner, "order belongs to another customer")
		}
		if o.Status() == order.Pending && requested == order.Cancelled {
			return nil
		}
		return errs.NewForbiddenError(errs.ReasonRoleForbidden, "customer may only cancel a pending order")

	default:
		return errs.NewForbiddenError(errs.ReasonRoleForbidden, "unknown role")
	}
}
