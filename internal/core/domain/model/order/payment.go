package order

import (
	"orderhub/internal/pkg/errs"
)

// PaymentStatus reflects what the payment subsystem reports for an order.
// The engine only reads this flag; it never initiates or mutates payments.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means payment has not completed yet.
	PaymentPending

	// PaymentPaid means payment completed successfully.
	PaymentPaid

	// PaymentFailed means payment was attempted and failed.
	PaymentFailed
)

func paymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "unknown",
		PaymentPending: "pending",
		PaymentPaid:    "paid",
		PaymentFailed:  "failed",
	}
}

// PaymentStatusFromString parses a wire name into a PaymentStatus.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, name := range paymentStatusStrings() {
		if name == s && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidError("payment status " + s)
}

// Validate checks that the PaymentStatus is one of the defined states.
func (p PaymentStatus) Validate() error {
	if p == PaymentUnknown {
		return errs.NewValueIsInvalidError("payment status")
	}
	if _, ok := paymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidError("payment status")
	}
	return nil
}

// String returns the wire name of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := paymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}
