package animal

import (
	"fmt"
	"strings"

	"livestock/internal/pkg/errs"
)

// Status is the lifecycle state of an animal.
//
//	ALIVE ──> IN_HOLDING ──> SLAUGHTERED
//	  │  <────────┘
//	  ├──> SLAUGHTERED
//	  ├──> DEAD
//	  └──> SOLD
//
// SLAUGHTERED, DEAD and SOLD are terminal.
type Status int

const (
	Unknown Status = iota
	Alive
	InHolding
	Slaughtered
	Dead
	Sold
)

var statusNames = map[Status]string{
	Alive:       "ALIVE",
	InHolding:   "IN_HOLDING",
	Slaughtered: "SLAUGHTERED",
	Dead:        "DEAD",
	Sold:        "SOLD",
}

var transitions = map[Status][]Status{
	Alive:     {InHolding, Slaughtered, Dead, Sold},
	InHolding: {Alive, Slaughtered},
}

// ParseStatus accepts the persisted wire names, case-insensitively.
func ParseStatus(s string) (Status, error) {
	wanted := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == wanted {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an animal status", s))
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
	return s == Slaughtered || s == Dead || s == Sold
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the move is in the transition table.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError("", s.String(), target.String())
	}
	return target, nil
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
