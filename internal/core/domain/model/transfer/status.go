package transfer

import (
	"fmt"
	"strings"

	"livestock/internal/pkg/errs"
)

// Status of a transfer.
//
//	OPEN ──dispatch──→ IN_TRANSIT ──confirm reception──→ DELIVERED
//	  └──cancel──────────────┴──cancel reception──────→ CANCELLED
type Status int

const (
	Unknown Status = iota
	Open
	InTransit
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Open:      "OPEN",
	InTransit: "IN_TRANSIT",
	Delivered: "DELIVERED",
	Cancelled: "CANCELLED",
}

func ParseStatus(s string) (Status, error) {
	return parseEnum(statusNames, s, "transfer status")
}

func (s Status) String() string { return nameOf(statusNames, s) }

func (s Status) Validate() error { return validateEnum(statusNames, s) }

// IsActive reports whether members of a transfer in this status are committed to it.
func (s Status) IsActive() bool { return s == Open || s == InTransit }

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ReceptionStatus of the destination-side reconciliation.
//
//	PENDING ──dispatch──→ EN_ROUTE ──begin──→ IN_PROGRESS ──confirm──→ RECEIVED | PARTIAL
//	   └──────cancel─────────┴──────────────────────┴─────────────────→ CANCELLED
type ReceptionStatus int

const (
	ReceptionUnknown ReceptionStatus = iota
	ReceptionPending
	ReceptionEnRoute
	ReceptionInProgress
	ReceptionReceived
	ReceptionPartial
	ReceptionCancelled
)

var receptionStatusNames = map[ReceptionStatus]string{
	ReceptionPending:    "PENDING",
	ReceptionEnRoute:    "EN_ROUTE",
	ReceptionInProgress: "IN_PROGRESS",
	ReceptionReceived:   "RECEIVED",
	ReceptionPartial:    "PARTIAL",
	ReceptionCancelled:  "CANCELLED",
}

func ParseReceptionStatus(s string) (ReceptionStatus, error) {
	return parseEnum(receptionStatusNames, s, "reception status")
}

func (s ReceptionStatus) String() string { return nameOf(receptionStatusNames, s) }

func (s ReceptionStatus) Validate() error { return validateEnum(receptionStatusNames, s) }

// IsAwaiting reports whether the reception can still be confirmed or cancelled.
func (s ReceptionStatus) IsAwaiting() bool {
	return s == ReceptionPending || s == ReceptionEnRoute || s == ReceptionInProgress
}

func (s ReceptionStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Outcome of a member once the reception is confirmed.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomePending
	OutcomeReceived
	OutcomeMissing
)

var outcomeNames = map[Outcome]string{
	OutcomePending:  "PENDING",
	OutcomeReceived: "RECEIVED",
	OutcomeMissing:  "MISSING",
}

func ParseOutcome(s string) (Outcome, error) {
	return parseEnum(outcomeNames, s, "member outcome")
}

func (o Outcome) String() string { return nameOf(outcomeNames, o) }

func (o Outcome) Validate() error { return validateEnum(outcomeNames, o) }

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func parseEnum[T comparable](names map[T]string, s, what string) (T, error) {
	wanted := strings.ToUpper(strings.TrimSpace(s))
	for value, name := range names {
		if name == wanted {
			return value, nil
		}
	}
	var zero T
	return zero, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a %s", s, what))
}

func nameOf[T comparable](names map[T]string, v T) string {
	if name, ok := names[v]; ok {
		return name
	}
	return "UNKNOWN"
}

func validateEnum[T comparable](names map[T]string, v T) error {
	if _, ok := names[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%v is not a valid value", v))
	}
	return nil
}
