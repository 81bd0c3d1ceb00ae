package animal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var (
	ErrTagIsRequired              = errs.NewValueIsRequiredError("tag")
	ErrPostSlaughterTagIsRequired = errs.NewValueIsRequiredError("post_slaughter_tag")
	ErrAnimalIsNotConstructed     = errors.New("Animal must be created via NewAnimal constructor")
)

// Animal is a tagged individual. Its status is mutated only through StatusManager;
// its owning site is set at registration and reassigned only on transfer delivery.
type Animal struct {
	id                kernel.UUID
	tag               string
	postSlaughterTag  string
	species           kernel.Species
	sex               Sex
	liveWeight        float64
	hotCarcassWeight  *float64
	coldCarcassWeight *float64
	status            Status
	healthy           bool
	urgentSlaughter   bool
	siteID            kernel.UUID
	createdAt         time.Time
	updatedAt         time.Time

	guard guard.ConstructorGuard
}

// State is the persisted form accepted by RestoreAnimal.
type State struct {
	ID                kernel.UUID
	Tag               string
	PostSlaughterTag  string
	Species           kernel.Species
	Sex               Sex
	LiveWeight        float64
	HotCarcassWeight  *float64
	ColdCarcassWeight *float64
	Status            Status
	Healthy           bool
	UrgentSlaughter   bool
	SiteID            kernel.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewAnimal registers a healthy, ALIVE animal owned by siteID.
func NewAnimal(
	id kernel.UUID,
	tag string,
	species kernel.Species,
	sex Sex,
	liveWeight float64,
	siteID kernel.UUID,
	now time.Time,
) (*Animal, error) {
	return RestoreAnimal(State{
		ID:         id,
		Tag:        tag,
		Species:    species,
		Sex:        sex,
		LiveWeight: liveWeight,
		Status:     Alive,
		Healthy:    true,
		SiteID:     siteID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func RestoreAnimal(s State) (*Animal, error) {
	a := &Animal{
		postSlaughterTag:  strings.TrimSpace(s.PostSlaughterTag),
		sex:               s.Sex,
		hotCarcassWeight:  s.HotCarcassWeight,
		coldCarcassWeight: s.ColdCarcassWeight,
		healthy:           s.Healthy,
		urgentSlaughter:   s.UrgentSlaughter,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(s.ID),
		a.setTag(s.Tag),
		a.setSpecies(s.Species),
		a.setLiveWeight(s.LiveWeight),
		a.setStatus(s.Status),
		a.setSiteID(s.SiteID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Animal) Validate() error {
	if a == nil {
		return ErrAnimalIsNotConstructed
	}
	return a.guard.Validate(ErrAnimalIsNotConstructed)
}

func (a *Animal) IsEqual(other *Animal) bool {
	return other != nil && a.id.IsEqual(other.id)
}

func (a *Animal) ID() kernel.UUID             { return a.id }
func (a *Animal) Tag() string                 { return a.tag }
func (a *Animal) PostSlaughterTag() string    { return a.postSlaughterTag }
func (a *Animal) Species() kernel.Species     { return a.species }
func (a *Animal) Sex() Sex                    { return a.sex }
func (a *Animal) LiveWeight() float64         { return a.liveWeight }
func (a *Animal) HotCarcassWeight() *float64  { return a.hotCarcassWeight }
func (a *Animal) ColdCarcassWeight() *float64 { return a.coldCarcassWeight }
func (a *Animal) Status() Status              { return a.status }
func (a *Animal) IsHealthy() bool             { return a.healthy }
func (a *Animal) IsUrgentSlaughter() bool     { return a.urgentSlaughter }
func (a *Animal) SiteID() kernel.UUID         { return a.siteID }
func (a *Animal) CreatedAt() time.Time        { return a.createdAt }
func (a *Animal) UpdatedAt() time.Time        { return a.updatedAt }

// RecordSlaughter stores the hot-carcass weight and post-slaughter tag.
// The SLAUGHTERED status itself is applied by StatusManager in the same transaction.
func (a *Animal) RecordSlaughter(hotWeight float64, postSlaughterTag string, now time.Time) error {
	postSlaughterTag = strings.TrimSpace(postSlaughterTag)
	if postSlaughterTag == "" {
		return ErrPostSlaughterTagIsRequired
	}
	if hotWeight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("hot_weight", fmt.Errorf("%v is not greater than 0", hotWeight))
	}
	if a.status != Alive && a.status != InHolding {
		return errs.NewInvalidStateError("animal", a.tag, a.status.String(), "record slaughter")
	}

	a.hotCarcassWeight = &hotWeight
	a.postSlaughterTag = postSlaughterTag
	a.updatedAt = now
	return nil
}

// RecordColdWeight stores the carcass weight measured after chilling.
func (a *Animal) RecordColdWeight(coldWeight float64, now time.Time) error {
	if a.status != Slaughtered {
		return errs.NewInvalidStateError("animal", a.tag, a.status.String(), "record cold weight")
	}
	if coldWeight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("cold_weight", fmt.Errorf("%v is not greater than 0", coldWeight))
	}
	a.coldCarcassWeight = &coldWeight
	a.updatedAt = now
	return nil
}

// Relocate reassigns the owning site. Only live animals move between sites.
func (a *Animal) Relocate(siteID kernel.UUID, now time.Time) error {
	if a.status != Alive {
		return errs.NewInvalidStateError("animal", a.tag, a.status.String(), "relocate")
	}
	if err := a.setSiteID(siteID); err != nil {
		return err
	}
	a.updatedAt = now
	return nil
}

func (a *Animal) SetHealth(healthy, urgentSlaughter bool, now time.Time) {
	a.healthy = healthy
	a.urgentSlaughter = urgentSlaughter
	a.updatedAt = now
}

func (a *Animal) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Animal) setTag(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrTagIsRequired
	}
	a.tag = tag
	return nil
}

func (a *Animal) setSpecies(species kernel.Species) error {
	if err := species.Validate(); err != nil {
		return err
	}
	a.species = species
	return nil
}

func (a *Animal) setLiveWeight(weight float64) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("live_weight", fmt.Errorf("%v is negative", weight))
	}
	a.liveWeight = weight
	return nil
}

func (a *Animal) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.status = status
	return nil
}

func (a *Animal) setSiteID(siteID kernel.UUID) error {
	if err := siteID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("site", err)
	}
	a.siteID = siteID
	return nil
}
