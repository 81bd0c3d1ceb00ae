package commands

import (
	"errors"
	"maps"
	"strings"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/site"
	"livestock/internal/pkg/guard"
)

var ErrCreateSiteCommandIsNotConstructed = errors.New(
	"CreateSiteCommand must be created via NewCreateSiteCommand constructor",
)

// CreateSiteCommand registers a facility with its per-species holding capacity.
type CreateSiteCommand struct { //nolint:recvcheck //using for validation
	name       string
	location   string
	capacities map[kernel.Species]int

	guard guard.ConstructorGuard
}

func NewCreateSiteCommand(name, location string, capacities map[kernel.Species]int) (CreateSiteCommand, error) {
	if strings.TrimSpace(name) == "" {
		return CreateSiteCommand{}, site.ErrNameIsRequired
	}

	return CreateSiteCommand{
		name:       name,
		location:   location,
		capacities: maps.Clone(capacities),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateSiteCommand) Validate() error {
	return c.guard.Validate(ErrCreateSiteCommandIsNotConstructed)
}

func (c CreateSiteCommand) Name() string                       { return c.name }
func (c CreateSiteCommand) Location() string                   { return c.location }
func (c CreateSiteCommand) Capacities() map[kernel.Species]int { return maps.Clone(c.capacities) }
