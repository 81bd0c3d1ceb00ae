package animal

import (
	"sort"
	"time"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
)

const EventAnimalStatusChanged = "AnimalStatusChanged"

// ErrAnimalIDsAreRequired is returned for an empty status change batch.
var ErrAnimalIDsAreRequired = errs.NewValueIsRequiredError("animal_ids")

// StatusManager is the only code path that mutates Animal.status.
// A batch either moves every requested animal or none of them.
type StatusManager struct{}

func NewStatusManager() StatusManager {
	return StatusManager{}
}

// StatusGroup lists the animals of a batch that shared the same source status.
type StatusGroup struct {
	From      Status        `json:"from"`
	AnimalIDs []kernel.UUID `json:"animal_ids"`
}

// StatusChange is the outcome of an accepted batch. Repositories persist it
// with conditional updates keyed on each group's source status.
type StatusChange struct {
	batchID kernel.UUID
	target  Status
	reason  string
	actor   kernel.Actor
	at      time.Time
	groups  []StatusGroup
	count   int

	kernel.EventRecorder
}

// AnimalStatusChanged is emitted once per accepted batch for audit sinks.
type AnimalStatusChanged struct {
	kernel.EventHeader
	To          Status        `json:"to"`
	Reason      string        `json:"reason"`
	Transitions []StatusGroup `json:"transitions"`
	Count       int           `json:"count"`
}

func (c *StatusChange) BatchID() kernel.UUID { return c.batchID }
func (c *StatusChange) Target() Status       { return c.target }
func (c *StatusChange) Reason() string       { return c.reason }
func (c *StatusChange) Actor() kernel.Actor  { return c.actor }
func (c *StatusChange) At() time.Time        { return c.at }

// Count is the number of animals that changed status.
func (c *StatusChange) Count() int { return c.count }

func (c *StatusChange) Groups() []StatusGroup {
	out := make([]StatusGroup, len(c.groups))
	copy(out, c.groups)
	return out
}

// Change moves every animal in requested to target. animals must hold the
// current state of the requested ids; ids missing from it are reported as not
// found. On any rejection no animal is modified and a *errs.RejectionsError
// lists every offending id.
func (StatusManager) Change(
	animals []*Animal,
	requested []kernel.UUID,
	target Status,
	reason string,
	actor kernel.Actor,
	at time.Time,
) (*StatusChange, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if len(requested) == 0 {
		return nil, ErrAnimalIDsAreRequired
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*Animal, len(animals))
	for _, a := range animals {
		if a != nil {
			byID[a.id] = a
		}
	}

	ids := kernel.UniqueUUIDs(requested)
	var rejections []errs.Rejection
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			rejections = append(rejections, errs.Rejection{
				ID:  id.String(),
				Err: errs.NewObjectNotFoundError("animal", id.String()),
			})
			continue
		}
		if !a.status.CanTransitionTo(target) {
			rejections = append(rejections, errs.Rejection{
				ID:  id.String(),
				Err: errs.NewInvalidTransitionError(a.tag, a.status.String(), target.String()),
			})
		}
	}
	if len(rejections) > 0 {
		return nil, errs.NewRejectionsError(rejections)
	}

	byFrom := make(map[Status][]kernel.UUID)
	for _, id := range ids {
		a := byID[id]
		byFrom[a.status] = append(byFrom[a.status], id)
		a.status = target
		a.updatedAt = at
	}

	change := &StatusChange{
		batchID: kernel.NewUUID(),
		target:  target,
		reason:  reason,
		actor:   actor,
		at:      at,
		count:   len(ids),
	}
	for from, groupIDs := range byFrom {
		change.groups = append(change.groups, StatusGroup{From: from, AnimalIDs: groupIDs})
	}
	sort.Slice(change.groups, func(i, j int) bool { return change.groups[i].From < change.groups[j].From })

	change.Record(AnimalStatusChanged{
		EventHeader: kernel.NewEventHeader(EventAnimalStatusChanged, change.batchID, actor, at),
		To:          target,
		Reason:      reason,
		Transitions: change.Groups(),
		Count:       change.count,
	})

	return change, nil
}
