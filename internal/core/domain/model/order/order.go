package order

import (
	"errors"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder. This ensures all orders carry validated state.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrRiderAlreadyAssigned is returned when binding a rider to an order that
	// already has one. A rider is bound at most once per order; after that the
	// order only progresses or cancels.
	ErrRiderAlreadyAssigned = errors.New("order already has an assigned rider")
)

// Order is the aggregate root of the delivery lifecycle. It ties a customer,
// one or more restaurants, and optionally a rider to a set of order lines, and
// it owns the status state machine.
//
// Invariants:
//   - status only changes through edges of the transition table in status.go
//   - the rider id is set at most once; assignment never reverts
//   - the total amount is the sum of line subtotals; transitions never alter
//     items or amount
//   - at least one restaurant and one item
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the customer who placed the order
	customerID kernel.UUID

	// restaurantIDs lists every restaurant fulfilling part of the order
	restaurantIDs []kernel.UUID

	// riderID is the assigned rider's ID (nil until assignment)
	riderID *kernel.UUID

	// items are the order lines
	items []Item

	// totalAmount is the sum of line subtotals, in minor currency units
	totalAmount int64

	// status is the current state in the order lifecycle
	status Status

	// paymentStatus is what the payment subsystem last reported
	paymentStatus PaymentStatus

	// deliveryAddress is where the order is delivered
	deliveryAddress string

	// contactNumber is the customer's phone for the rider
	contactNumber string

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in pending status with payment pending.
// The total amount is derived from the items; it is the only way the engine
// ever computes it.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantIDs []kernel.UUID,
	items []Item,
	deliveryAddress string,
	contactNumber string,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantIDs(restaurantIDs),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setContactNumber(contactNumber),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistent storage,
// preserving its status, payment flag, rider binding, and timestamps.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantIDs []kernel.UUID,
	riderID *kernel.UUID,
	items []Item,
	status Status,
	paymentStatus PaymentStatus,
	deliveryAddress string,
	contactNumber string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantIDs(restaurantIDs),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		o.setContactNumber(contactNumber),
		o.setStatus(status),
		o.setPaymentStatus(paymentStatus),
		o.setRiderID(riderID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
// Call when reconstructing orders from external input.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantIDs returns the restaurants linked to the order.
// The returned slice is a copy.
func (o *Order) RestaurantIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(o.restaurantIDs))
	copy(out, o.restaurantIDs)
	return out
}

// RiderID returns the assigned rider's ID, or nil if unassigned.
func (o *Order) RiderID() *kernel.UUID {
	return o.riderID
}

// Items returns the order lines. The returned slice is a copy.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// TotalAmount returns the sum of line subtotals in minor currency units.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the last reported payment state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// DeliveryAddress returns the delivery destination.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// ContactNumber returns the customer contact phone.
func (o *Order) ContactNumber() string {
	return o.contactNumber
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// HasRestaurant reports whether the given restaurant fulfills part of the order.
func (o *Order) HasRestaurant(restaurantID kernel.UUID) bool {
	for _, id := range o.restaurantIDs {
		if id.IsEqual(restaurantID) {
			return true
		}
	}
	return false
}

// CheckGuards evaluates the extra guard of the edge (current status, to).
// Edges out of the assigned status require the rider to be online; moving out
// for delivery additionally requires completed payment.
//
// riderOnline is supplied by the caller because rider presence lives in the
// rider aggregate, not here.
func (o *Order) CheckGuards(to Status, riderOnline bool) error {
	if o.status != Assigned {
		return nil
	}

	if !riderOnline {
		return errs.NewGuardFailedError(errs.GuardRiderOffline)
	}
	if to == OutForDelivery && o.paymentStatus != PaymentPaid {
		return errs.NewGuardFailedError(errs.GuardPaymentNotPaid)
	}
	return nil
}

// ChangeStatus moves the order along an edge of the transition table and
// stamps updatedAt. Guards are checked separately via CheckGuards; this method
// only enforces edge legality.
func (o *Order) ChangeStatus(to Status) error {
	newStatus, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	return nil
}

// AssignRider binds a rider to the order. The binding happens at most once:
// once a rider is set the order only progresses or cancels.
func (o *Order) AssignRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.riderID != nil {
		return ErrRiderAlreadyAssigned
	}

	o.riderID = &riderID
	o.updatedAt = time.Now().UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("restaurant ids")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("restaurant id", err)
		}
	}

	o.restaurantIDs = make([]kernel.UUID, len(ids))
	copy(o.restaurantIDs, ids)
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)

	var total int64
	for _, item := range o.items {
		total += item.Subtotal()
	}
	o.totalAmount = total
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setContactNumber(contact string) error {
	if contact == "" {
		return errs.NewValueIsRequiredError("contact number")
	}
	o.contactNumber = contact
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setRiderID(riderID *kernel.UUID) error {
	if riderID == nil {
		return nil
	}
	if err := riderID.Validate(); err != nil {
		return err
	}

	id := *riderID
	o.riderID = &id
	return nil
}
