package holding

import (
	"fmt"
	"strings"

	"livestock/internal/pkg/errs"
)

// Status of a holding session: OPEN, then CLOSED by finalize or CANCELLED.
type Status int

const (
	Unknown Status = iota
	Open
	Closed
	Cancelled
)

var statusNames = map[Status]string{
	Open:      "OPEN",
	Closed:    "CLOSED",
	Cancelled: "CANCELLED",
}

func ParseStatus(s string) (Status, error) {
	wanted := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == wanted {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a holding status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Closed || s == Cancelled
}

func (s Status) Close() (Status, error) {
	if s != Open {
		return Unknown, errs.NewInvalidTransitionError("", s.String(), Closed.String())
	}
	return Closed, nil
}

func (s Status) Cancel() (Status, error) {
	if s != Open {
		return Unknown, errs.NewInvalidTransitionError("", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
