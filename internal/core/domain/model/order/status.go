package order

import (
	"fmt"
	"strings"

	"livestock/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order.
//
// State transitions:
//
//	DRAFT ──> CONFIRMED ──> IN_PROGRESS ──> DELIVERED
//	  │           │              │
//	  └───────────┴──────────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status. Draft orders can be edited and deleted.
	Draft

	// Confirmed orders are accepted by the site and can still be edited.
	Confirmed

	// InProgress orders are being fulfilled.
	InProgress

	// Delivered is terminal. The delivery date defaults to the transition day.
	Delivered

	// Cancelled is terminal and reachable from every non-terminal status.
	Cancelled
)

// getStatusStrings returns the persisted wire name of every valid status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Draft:      "DRAFT",
		Confirmed:  "CONFIRMED",
		InProgress: "IN_PROGRESS",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
	}
}

// next maps each status to the one reached by progressing the order.
func next() map[Status]Status {
	return map[Status]Status{
		Draft:      Confirmed,
		Confirmed:  InProgress,
		InProgress: Delivered,
	}
}

// ParseStatus converts a wire name into a Status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	wanted := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if name == wanted {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not an order status", s))
}

// Validate checks if the Status value is one of the five order statuses.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsEditable reports whether the order details may still change.
func (s Status) IsEditable() bool {
	return s == Draft || s == Confirmed
}

// TransitionTo validates a move to target.
//
// Valid transitions:
//   - one step forward along DRAFT -> CONFIRMED -> IN_PROGRESS -> DELIVERED
//   - any non-terminal status -> CANCELLED
//
// Returns:
//   - (target, nil) on a valid transition
//   - (Unknown, error) otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionError("", s.String(), target.String())
	}
	if target == Cancelled || next()[s] == target {
		return target, nil
	}
	return Unknown, errs.NewInvalidTransitionError("", s.String(), target.String())
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
