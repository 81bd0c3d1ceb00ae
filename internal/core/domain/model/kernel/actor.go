package kernel

import (
	"strings"

	"livestock/internal/pkg/errs"
)

// ErrActorIsRequired is returned for a blank actor identity.
var ErrActorIsRequired = errs.NewValueIsRequiredError("actor")

// Actor identifies the user on whose behalf a command runs.
// Engines receive it explicitly; it is recorded on memberships,
// lifecycle timestamps and status change events.
type Actor string

// NewActor trims the identity and rejects blank values.
func NewActor(s string) (Actor, error) {
	a := Actor(strings.TrimSpace(s))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

func (a Actor) Validate() error {
	if strings.TrimSpace(string(a)) == "" {
		return ErrActorIsRequired
	}
	return nil
}

func (a Actor) String() string {
	return string(a)
}
