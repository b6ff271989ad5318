package rider

import (
	"orderhub/internal/pkg/errs"
)

// Status represents a rider's availability state.
//
//	offline ──> available ──> busy ──> available
//
// Busy is not exclusive: it only signals "not idle". A busy rider can still
// accept additional orders; only an offline rider cannot.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Offline means the rider is not accepting work.
	Offline

	// Available means the rider is online with no assigned orders.
	Available

	// Busy means the rider is online and carrying at least one order.
	Busy
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Offline:   "offline",
		Available: "available",
		Busy:      "busy",
	}
}

// StatusFromString parses a wire name into a Status.
func StatusFromString(s string) (Status, error) {
	for status, name := range statusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("rider status " + s)
}

// Validate checks that the Status is one of the defined states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidError("rider status")
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("rider status")
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsOnline reports whether the rider is reachable for order work.
func (s Status) IsOnline() bool {
	return s == Available || s == Busy
}
