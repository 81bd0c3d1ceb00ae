// Package site models the facilities that own animals and host holding pens.
package site

import (
	"errors"
	"fmt"
	"strings"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var (
	ErrNameIsRequired       = errs.NewValueIsRequiredError("name")
	ErrSiteIsNotConstructed = errors.New("Site must be created via NewSite constructor")
)

// Site is a fixed facility. It is soft-deactivated, never deleted while referenced.
type Site struct {
	id         kernel.UUID
	name       string
	location   string
	capacities map[kernel.Species]int
	active     bool

	guard guard.ConstructorGuard
}

// NewSite creates an active site. Species absent from capacities get zero capacity.
func NewSite(id kernel.UUID, name, location string, capacities map[kernel.Species]int) (*Site, error) {
	return RestoreSite(id, name, location, capacities, true)
}

func RestoreSite(
	id kernel.UUID,
	name, location string,
	capacities map[kernel.Species]int,
	active bool,
) (*Site, error) {
	s := &Site{
		location:   strings.TrimSpace(location),
		capacities: make(map[kernel.Species]int, len(kernel.AllSpecies())),
		active:     active,
		guard:      guard.NewConstructorGuard(),
	}

	errList := []error{s.setID(id), s.setName(name)}
	for species, capacity := range capacities {
		errList = append(errList, s.SetCapacity(species, capacity))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Site) Validate() error {
	if s == nil {
		return ErrSiteIsNotConstructed
	}
	return s.guard.Validate(ErrSiteIsNotConstructed)
}

func (s *Site) ID() kernel.UUID  { return s.id }
func (s *Site) Name() string     { return s.name }
func (s *Site) Location() string { return s.location }
func (s *Site) IsActive() bool   { return s.active }

// Capacity returns the configured holding capacity for species.
func (s *Site) Capacity(species kernel.Species) int {
	return s.capacities[species]
}

// Capacities returns a copy covering every species.
func (s *Site) Capacities() map[kernel.Species]int {
	out := make(map[kernel.Species]int, len(kernel.AllSpecies()))
	for _, species := range kernel.AllSpecies() {
		out[species] = s.capacities[species]
	}
	return out
}

func (s *Site) SetCapacity(species kernel.Species, capacity int) error {
	if err := species.Validate(); err != nil {
		return err
	}
	if capacity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"capacity",
			fmt.Errorf("%s capacity %d is negative", species, capacity),
		)
	}
	s.capacities[species] = capacity
	return nil
}

func (s *Site) Deactivate() { s.active = false }
func (s *Site) Activate()   { s.active = true }

// EnsureCanHold checks that holding sessions for species may be opened here.
func (s *Site) EnsureCanHold(species kernel.Species) error {
	if err := species.Validate(); err != nil {
		return err
	}
	if !s.active {
		return errs.NewInvalidStateError("site", s.name, "INACTIVE", "open a holding session")
	}
	if s.capacities[species] == 0 {
		return errs.NewCapacityExceededError(fmt.Sprintf("site %s %s holding", s.name, species), 1, 0)
	}
	return nil
}

// RemainingCapacity is the configured capacity minus the animals of that
// species currently in holding at this site, never below zero.
func (s *Site) RemainingCapacity(species kernel.Species, inHolding int) int {
	remaining := s.capacities[species] - inHolding
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *Site) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Site) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}
