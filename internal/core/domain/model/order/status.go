package order

import (
	"orderhub/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a single canonical transition table so
// every caller validates status changes against the same set of edges.
//
// State transitions:
//
//	pending ──> accepted ──> preparing ──> assigned ──> out-for-delivery ──> delivered
//	                 │            │            │                 │
//	                 └────────> assigned      │                 │
//	   (every non-terminal state) ──────────────────────> cancelled
//
// delivered and cancelled are terminal: no outgoing edges.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is placed.
	Pending

	// Accepted indicates the restaurant has accepted the order.
	Accepted

	// Preparing indicates the restaurant is preparing the order.
	Preparing

	// Assigned indicates a rider has been bound to the order.
	Assigned

	// OutForDelivery indicates the rider is delivering the order.
	OutForDelivery

	// Delivered indicates successful delivery. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled
)

// statusStrings maps every Status to its wire name. The wire names double as
// persisted values and as the status field of published events.
func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Accepted:       "accepted",
		Preparing:      "preparing",
		Assigned:       "assigned",
		OutForDelivery: "out-for-delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// transitionTable holds the allowed edges of the order state machine.
// Role eligibility and extra guards (payment, rider presence) are enforced
// separately; an edge missing here is invalid for every actor.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Accepted, Cancelled},
		Accepted:       {Preparing, Assigned, Cancelled},
		Preparing:      {Assigned, Cancelled},
		Assigned:       {OutForDelivery, Cancelled},
		OutForDelivery: {Delivered, Cancelled},
	}
}

// StatusFromString parses a wire name into a Status.
// Returns an error for unknown names and for the literal "unknown".
func StatusFromString(s string) (Status, error) {
	for status, name := range statusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("status " + s)
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidError("status")
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the wire name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether (s, to) is an edge of the transition table.
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge (s, to) and returns the new status.
// Returns InvalidTransitionError if the edge is not in the table, regardless
// of who is asking.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return to, nil
}
