package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the engine's caller-visible outcomes.
// Use errors.Is against these to classify a failure without string matching.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrGuardFailed        = errors.New("guard failed")
	ErrRiderUnavailable   = errors.New("rider unavailable")
	ErrHasActiveOrders    = errors.New("rider has active orders")
	ErrConflict           = errors.New("conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ForbiddenReason is a stable machine-readable reason attached to authorization denials.
type ForbiddenReason string

const (
	ReasonNotOwner      ForbiddenReason = "not-owner"
	ReasonRiderOffline  ForbiddenReason = "rider-offline"
	ReasonRoleForbidden ForbiddenReason = "role-forbidden"
)

// GuardReason is a stable machine-readable reason attached to transition guard failures.
type GuardReason string

const (
	GuardPaymentNotPaid GuardReason = "payment-not-paid"
	GuardRiderOffline   GuardReason = "rider-offline"
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ObjectNotFoundError reports that an entity could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error { return ErrObjectNotFound }

// Code returns the stable reason code for this error kind.
func (e *ObjectNotFoundError) Code() string { return "not-found" }

// ValueIsInvalidError reports that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error { return ErrValueIsInvalid }

// Code returns the stable reason code for this error kind.
func (e *ValueIsInvalidError) Code() string { return "invalid-value" }

// ValueIsOutOfRangeError reports that a numeric value fell outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error { return ErrValueIsOutOfRange }

// Code returns the stable reason code for this error kind.
func (e *ValueIsOutOfRangeError) Code() string { return "out-of-range" }

// ValueIsRequiredError reports that a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error { return ErrValueIsRequired }

// Code returns the stable reason code for this error kind.
func (e *ValueIsRequiredError) Code() string { return "required-value" }

// ForbiddenError reports an authorization denial with a structured reason,
// so callers can produce a precise user-facing message without string matching.
type ForbiddenError struct {
	Reason ForbiddenReason
	Detail string
}

// NewForbiddenError creates a ForbiddenError with the given reason.
func NewForbiddenError(reason ForbiddenReason, detail string) *ForbiddenError {
	return &ForbiddenError{Reason: reason, Detail: detail}
}

func (e *ForbiddenError) Error() string {
	if e.Detail != "" {
		return sanitize(fmt.Sprintf("%s: %s (%s)", ErrForbidden, e.Reason, e.Detail))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrForbidden, e.Reason))
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// Code returns the stable reason code for this error kind.
func (e *ForbiddenError) Code() string { return "forbidden" }

// InvalidTransitionError reports a status change that is not an edge of the
// order transition table. From and To carry the status names involved.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given edge.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// Code returns the stable reason code for this error kind.
func (e *InvalidTransitionError) Code() string { return "invalid-transition" }

// GuardFailedError reports a transition edge whose extra guard condition was
// not met, such as an unpaid order heading out for delivery.
type GuardFailedError struct {
	Reason GuardReason
}

// NewGuardFailedError creates a GuardFailedError with the given reason.
func NewGuardFailedError(reason GuardReason) *GuardFailedError {
	return &GuardFailedError{Reason: reason}
}

func (e *GuardFailedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrGuardFailed, e.Reason))
}

func (e *GuardFailedError) Unwrap() error { return ErrGuardFailed }

// Code returns the stable reason code for this error kind.
func (e *GuardFailedError) Code() string { return "guard-failed" }

// RiderUnavailableError reports an assignment attempt against a rider who is
// not in a state to accept orders.
type RiderUnavailableError struct {
	RiderID string
}

// NewRiderUnavailableError creates a RiderUnavailableError for the given rider.
func NewRiderUnavailableError(riderID string) *RiderUnavailableError {
	return &RiderUnavailableError{RiderID: riderID}
}

func (e *RiderUnavailableError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrRiderUnavailable, e.RiderID))
}

func (e *RiderUnavailableError) Unwrap() error { return ErrRiderUnavailable }

// Code returns the stable reason code for this error kind.
func (e *RiderUnavailableError) Code() string { return "rider-unavailable" }

// HasActiveOrdersError reports an availability flip blocked by undelivered orders.
type HasActiveOrdersError struct {
	RiderID string
	Count   int
}

// NewHasActiveOrdersError creates a HasActiveOrdersError for the given rider.
func NewHasActiveOrdersError(riderID string, count int) *HasActiveOrdersError {
	return &HasActiveOrdersError{RiderID: riderID, Count: count}
}

func (e *HasActiveOrdersError) Error() string {
	return sanitize(fmt.Sprintf("%s: rider %s has %d active orders", ErrHasActiveOrders, e.RiderID, e.Count))
}

func (e *HasActiveOrdersError) Unwrap() error { return ErrHasActiveOrders }

// Code returns the stable reason code for this error kind.
func (e *HasActiveOrdersError) Code() string { return "has-active-orders" }

// ConflictError reports a lost race: the order's persisted status changed
// between read and write. Callers may safely re-fetch and resubmit.
type ConflictError struct {
	OrderID string
}

// NewConflictError creates a ConflictError for the given order.
func NewConflictError(orderID string) *ConflictError {
	return &ConflictError{OrderID: orderID}
}

func (e *ConflictError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %s was modified concurrently", ErrConflict, e.OrderID))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Code returns the stable reason code for this error kind.
func (e *ConflictError) Code() string { return "conflict" }

// StorageUnavailableError wraps a persistence I/O failure. Transitions that
// hit it are never half-applied and no notification is published.
type StorageUnavailableError struct {
	Cause error
}

// NewStorageUnavailableError creates a StorageUnavailableError wrapping the I/O failure.
func NewStorageUnavailableError(cause error) *StorageUnavailableError {
	return &StorageUnavailableError{Cause: cause}
}

func (e *StorageUnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s (cause: %s)", ErrStorageUnavailable, e.Cause))
	}
	return ErrStorageUnavailable.Error()
}

func (e *StorageUnavailableError) Unwrap() error { return ErrStorageUnavailable }

// Code returns the stable reason code for this error kind.
func (e *StorageUnavailableError) Code() string { return "storage-unavailable" }

// coded is implemented by every taxonomy error in this package.
type coded interface {
	Code() string
}

// CodeOf extracts the stable reason code from any taxonomy error.
// Returns "internal" for errors outside the taxonomy.
func CodeOf(err error) string {
	var c coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return "internal"
}
