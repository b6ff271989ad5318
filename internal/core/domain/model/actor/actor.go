// Package actor models the identity attempting a lifecycle operation.
// Identities are resolved by the authentication collaborator and trusted as
// given; this package only gives them shape and validation.
package actor

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when using an Actor that was not
// created via NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor")

// Role is the actor's role as resolved by authentication.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer placed the order.
	RoleCustomer

	// RoleRestaurant owns one of the order's restaurants. For rider actors
	// the actor id is the rider id; for restaurant actors the owned
	// restaurant travels separately in OwnedRestaurantID.
	RoleRestaurant

	// RoleRider delivers orders; the actor id is the rider id.
	RoleRider

	// RoleAdmin may request any transition, still subject to the
	// transition table and guards.
	RoleAdmin
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleCustomer:   "customer",
		RoleRestaurant: "restaurant",
		RoleRider:      "rider",
		RoleAdmin:      "admin",
	}
}

// RoleFromString parses a wire name into a Role.
func RoleFromString(s string) (Role, error) {
	for role, name := range roleStrings() {
		if name == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidError("role " + s)
}

// Validate checks that the Role is one of the defined roles.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidError("role")
	}
	if _, ok := roleStrings()[r]; !ok {
		return errs.NewValueIsInvalidError("role")
	}
	return nil
}

// String returns the wire name of the role.
func (r Role) String() string {
	if str, ok := roleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor is the authenticated identity behind a transition request.
// For restaurant actors OwnedRestaurantID carries the restaurant they manage;
// it is nil for every other role.
type Actor struct {
	id                kernel.UUID
	role              Role
	ownedRestaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewActor creates a validated actor identity.
// A restaurant actor must carry its owned restaurant id; other roles must not.
func NewActor(id kernel.UUID, role Role, ownedRestaurantID *kernel.UUID) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	if role == RoleRestaurant {
		if ownedRestaurantID == nil {
			return Actor{}, errs.NewValueIsRequiredError("owned restaurant id")
		}
		if err := ownedRestaurantID.Validate(); err != nil {
			return Actor{}, err
		}
	} else if ownedRestaurantID != nil {
		return Actor{}, errs.NewValueIsInvalidError("owned restaurant id is only valid for restaurant actors")
	}

	a := Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}
	if ownedRestaurantID != nil {
		owned := *ownedRestaurantID
		a.ownedRestaurantID = &owned
	}
	return a, nil
}

// Validate ensures the Actor was created via NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's identifier. For rider actors this is the rider id.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// OwnedRestaurantID returns the restaurant a restaurant actor manages,
// or nil for other roles.
func (a Actor) OwnedRestaurantID() *kernel.UUID {
	return a.ownedRestaurantID
}
