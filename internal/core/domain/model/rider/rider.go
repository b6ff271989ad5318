package rider

import (
	"errors"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"
)

var (
	// ErrRiderIsNotConstructed is returned when using a Rider that was not created
	// through NewRider or RestoreRider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider")

	// ErrOrderNotAssigned is returned when releasing an order the rider does not carry.
	ErrOrderNotAssigned = errors.New("order is not assigned to this rider")
)

// Rider is the aggregate root for delivery rider state: availability and the
// set of orders currently owned.
//
// Invariants:
//   - an offline rider never accepts orders
//   - the assigned set only holds orders released on terminal transitions,
//     so a non-empty set means the rider has active work
//   - an automatic release never brings an explicitly offline rider back
//     online; wentOffline records that choice until the rider returns
type Rider struct {
	// id uniquely identifies the rider; transition requests from rider
	// actors carry this id as the actor id
	id kernel.UUID

	// userID is the owning identity in the accounts system
	userID kernel.UUID

	// status is the rider's availability state
	status Status

	// assignedOrders holds the ids of orders the rider currently owns
	assignedOrders []kernel.UUID

	// wentOffline is set when the rider chose to go offline, as opposed to
	// being offline by default before first coming online
	wentOffline bool

	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewRider creates a rider in offline status with no assigned orders.
// Riders come online explicitly through SetAvailability.
func NewRider(id kernel.UUID, userID kernel.UUID) (*Rider, error) {
	r := &Rider{
		status:    Offline,
		updatedAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setUserID(userID),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider reconstructs a rider aggregate from persistent storage.
func RestoreRider(
	id kernel.UUID,
	userID kernel.UUID,
	status Status,
	assignedOrders []kernel.UUID,
	wentOffline bool,
	updatedAt time.Time,
) (*Rider, error) {
	r := &Rider{
		wentOffline: wentOffline,
		updatedAt:   updatedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setUserID(userID),
		r.setStatus(status),
		r.setAssignedOrders(assignedOrders),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Rider was created through a constructor.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// IsEqual compares two riders by identifier.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// UserID returns the owning identity.
func (r *Rider) UserID() kernel.UUID {
	return r.userID
}

// Status returns the rider's availability state.
func (r *Rider) Status() Status {
	return r.status
}

// AssignedOrders returns the ids of orders the rider currently owns.
// The returned slice is a copy.
func (r *Rider) AssignedOrders() []kernel.UUID {
	out := make([]kernel.UUID, len(r.assignedOrders))
	copy(out, r.assignedOrders)
	return out
}

// UpdatedAt returns when the rider last changed.
func (r *Rider) UpdatedAt() time.Time {
	return r.updatedAt
}

// Owns reports whether the rider currently carries the given order.
func (r *Rider) Owns(orderID kernel.UUID) bool {
	for _, id := range r.assignedOrders {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// AcceptOrder adds an order to the rider's assigned set.
// Fails with RiderUnavailableError when the rider is offline. A busy rider may
// accept additional orders. Accepting while available flips the rider to busy.
// Accepting the same order twice is idempotent.
func (r *Rider) AcceptOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !r.status.IsOnline() {
		return errs.NewRiderUnavailableError(r.id.String())
	}
	if r.Owns(orderID) {
		return nil
	}

	r.assignedOrders = append(r.assignedOrders, orderID)
	r.status = Busy
	r.updatedAt = time.Now().UTC()
	return nil
}

// ReleaseOrder removes an order from the assigned set after it terminalized.
// When the set empties the rider returns to available, unless they explicitly
// went offline in the meantime; release never overrides that choice.
func (r *Rider) ReleaseOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	idx := -1
	for i, id := range r.assignedOrders {
		if id.IsEqual(orderID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrOrderNotAssigned
	}

	r.assignedOrders = append(r.assignedOrders[:idx], r.assignedOrders[idx+1:]...)
	if len(r.assignedOrders) == 0 && !r.wentOffline {
		r.status = Available
	}
	r.updatedAt = time.Now().UTC()
	return nil
}

// SetAvailability flips the rider between available and offline.
//
// Going online fails with HasActiveOrdersError while the assigned set is
// non-empty: a rider carrying work is busy, not available. Going offline is
// always allowed and is remembered so an automatic release does not silently
// bring the rider back online.
func (r *Rider) SetAvailability(wantOnline bool) error {
	if wantOnline {
		if n := len(r.assignedOrders); n > 0 {
			return errs.NewHasActiveOrdersError(r.id.String(), n)
		}
		r.status = Available
		r.wentOffline = false
	} else {
		r.status = Offline
		r.wentOffline = true
	}

	r.updatedAt = time.Now().UTC()
	return nil
}

// WentOffline reports whether the rider explicitly chose to go offline.
func (r *Rider) WentOffline() bool {
	return r.wentOffline
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user id", err)
	}
	r.userID = id
	return nil
}

func (r *Rider) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Rider) setAssignedOrders(orderIDs []kernel.UUID) error {
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("assigned order id", err)
		}
	}

	r.assignedOrders = make([]kernel.UUID, len(orderIDs))
	copy(r.assignedOrders, orderIDs)
	return nil
}
