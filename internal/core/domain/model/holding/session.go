package holding

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/site"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var (
	ErrSerialIsRequired        = errs.NewValueIsRequiredError("serial")
	ErrAnimalIDsAreRequired    = errs.NewValueIsRequiredError("animal_ids")
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")
)

// SlaughterRecord is the per-animal finalize payload.
// An empty PostSlaughterTag asks the engine to allocate one.
type SlaughterRecord struct {
	HotWeight        float64
	PostSlaughterTag string
}

// Session is a batched pre-slaughter staging of animals at one site.
// Membership and status are immutable once the session is CLOSED or CANCELLED.
type Session struct {
	id        kernel.UUID
	serial    string
	siteID    kernel.UUID
	species   kernel.Species
	status    Status
	startAt   time.Time
	endAt     *time.Time
	note      string
	createdBy kernel.Actor
	members   []*Member

	kernel.EventRecorder
	guard guard.ConstructorGuard
}

type State struct {
	ID        kernel.UUID
	Serial    string
	SiteID    kernel.UUID
	Species   kernel.Species
	Status    Status
	StartAt   time.Time
	EndAt     *time.Time
	Note      string
	CreatedBy kernel.Actor
	Members   []*Member
}

// NewSession opens a session at s for species. The site must be active with a
// non-zero capacity for species and startAt must not fall on a past calendar day.
func NewSession(
	id kernel.UUID,
	serial string,
	s *site.Site,
	species kernel.Species,
	startAt time.Time,
	note string,
	actor kernel.Actor,
	now time.Time,
) (*Session, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := errors.Join(actor.Validate(), validateStartDay(startAt, now)); err != nil {
		return nil, err
	}
	if err := s.EnsureCanHold(species); err != nil {
		return nil, err
	}

	session, err := RestoreSession(State{
		ID:        id,
		Serial:    serial,
		SiteID:    s.ID(),
		Species:   species,
		Status:    Open,
		StartAt:   startAt,
		Note:      note,
		CreatedBy: actor,
	})
	if err != nil {
		return nil, err
	}

	session.Record(HoldingCreated{
		EventHeader: kernel.NewEventHeader(EventHoldingCreated, id, actor, now),
		Serial:      session.serial,
		SiteID:      session.siteID,
		Species:     species,
	})
	return session, nil
}

func RestoreSession(st State) (*Session, error) {
	s := &Session{
		startAt:   st.StartAt,
		endAt:     st.EndAt,
		note:      strings.TrimSpace(st.Note),
		createdBy: st.CreatedBy,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(st.ID),
		s.setSerial(st.Serial),
		s.setSiteID(st.SiteID),
		st.Species.Validate(),
		st.Status.Validate(),
	); err != nil {
		return nil, err
	}
	s.species = st.Species
	s.status = st.Status
	s.members = append(s.members, st.Members...)

	return s, nil
}

func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s *Session) ID() kernel.UUID         { return s.id }
func (s *Session) Serial() string          { return s.serial }
func (s *Session) SiteID() kernel.UUID     { return s.siteID }
func (s *Session) Species() kernel.Species { return s.species }
func (s *Session) Status() Status          { return s.status }
func (s *Session) StartAt() time.Time      { return s.startAt }
func (s *Session) EndAt() *time.Time       { return s.endAt }
func (s *Session) Note() string            { return s.note }
func (s *Session) CreatedBy() kernel.Actor { return s.createdBy }

func (s *Session) Members() []*Member {
	out := make([]*Member, len(s.members))
	copy(out, s.members)
	return out
}

func (s *Session) MemberIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(s.members))
	for _, m := range s.members {
		ids = append(ids, m.animalID)
	}
	return ids
}

func (s *Session) HasMember(animalID kernel.UUID) bool {
	return s.memberIndex(animalID) >= 0
}

// Duration is the absolute distance between start and end. An open session
// is measured against now.
func (s *Session) Duration(now time.Time) time.Duration {
	end := now
	if s.endAt != nil {
		end = *s.endAt
	}
	d := end.Sub(s.startAt)
	if d < 0 {
		return -d
	}
	return d
}

// Admit adds animals to the session. Each must be ALIVE, of the session's
// species and owned by the session's site; remaining is the site's free
// capacity for that species. The caller moves the animals to IN_HOLDING.
func (s *Session) Admit(animals []*animal.Animal, remaining int, actor kernel.Actor, now time.Time) error {
	if err := s.ensureOpen("admit"); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if len(animals) == 0 {
		return ErrAnimalIDsAreRequired
	}

	unique := make([]*animal.Animal, 0, len(animals))
	seen := make(map[kernel.UUID]struct{}, len(animals))
	var rejections []errs.Rejection
	for _, a := range animals {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, dup := seen[a.ID()]; dup {
			continue
		}
		seen[a.ID()] = struct{}{}

		if reason := s.admissionFailure(a); reason != "" {
			rejections = append(rejections, errs.Rejection{
				ID:  a.ID().String(),
				Err: errs.NewPredicateFailedError(a.Tag(), reason),
			})
			continue
		}
		unique = append(unique, a)
	}
	if len(rejections) > 0 {
		return errs.NewRejectionsError(rejections)
	}

	if len(unique) > remaining {
		return errs.NewCapacityExceededError(fmt.Sprintf("%s holding at site %s", s.species, s.siteID), len(unique), remaining)
	}

	for _, a := range unique {
		s.members = append(s.members, &Member{animalID: a.ID(), admittedBy: actor, admittedAt: now})
	}
	return nil
}

// Withdraw removes members and returns the distinct removed ids.
// The caller moves them back to ALIVE.
func (s *Session) Withdraw(animalIDs []kernel.UUID) ([]kernel.UUID, error) {
	if err := s.ensureOpen("withdraw"); err != nil {
		return nil, err
	}
	if len(animalIDs) == 0 {
		return nil, ErrAnimalIDsAreRequired
	}

	ids := kernel.UniqueUUIDs(animalIDs)
	var rejections []errs.Rejection
	for _, id := range ids {
		if !s.HasMember(id) {
			rejections = append(rejections, errs.Rejection{
				ID:  id.String(),
				Err: errs.NewPredicateFailedError(id.String(), "is not a member of session "+s.serial),
			})
		}
	}
	if len(rejections) > 0 {
		return nil, errs.NewRejectionsError(rejections)
	}

	for _, id := range ids {
		i := s.memberIndex(id)
		s.members = append(s.members[:i], s.members[i+1:]...)
	}
	return ids, nil
}

// Cancel ends the session without slaughter. Membership is kept for history;
// the returned member ids go back to ALIVE.
func (s *Session) Cancel(actor kernel.Actor, now time.Time) ([]kernel.UUID, error) {
	if err := s.ensureOpen("cancel"); err != nil {
		return nil, err
	}
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	next, err := s.status.Cancel()
	if err != nil {
		return nil, err
	}

	s.status = next
	s.endAt = &now
	ids := s.MemberIDs()
	s.Record(HoldingCancelled{
		EventHeader: kernel.NewEventHeader(EventHoldingCancelled, s.id, actor, now),
		Serial:      s.serial,
		AnimalIDs:   ids,
	})
	return ids, nil
}

// CheckFinalizePayload requires exactly one record per member.
func (s *Session) CheckFinalizePayload(payload map[kernel.UUID]SlaughterRecord) error {
	if err := s.ensureOpen("finalize"); err != nil {
		return err
	}

	var problems []error
	for _, m := range s.members {
		if _, ok := payload[m.animalID]; !ok {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(
				"payload",
				fmt.Errorf("member %s has no slaughter record", m.animalID),
			))
		}
	}
	for id := range payload {
		if !s.HasMember(id) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"payload",
				fmt.Errorf("%s is not a member of session %s", id, s.serial),
			))
		}
	}
	return errors.Join(problems...)
}

// Finalize closes the session once every member has been slaughtered.
func (s *Session) Finalize(payload map[kernel.UUID]SlaughterRecord, actor kernel.Actor, now time.Time) error {
	if err := s.CheckFinalizePayload(payload); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	next, err := s.status.Close()
	if err != nil {
		return err
	}

	s.status = next
	s.endAt = &now
	s.Record(HoldingClosed{
		EventHeader: kernel.NewEventHeader(EventHoldingClosed, s.id, actor, now),
		Serial:      s.serial,
		AnimalIDs:   s.MemberIDs(),
	})
	return nil
}

func (s *Session) admissionFailure(a *animal.Animal) string {
	switch {
	case s.HasMember(a.ID()):
		return "is already a member of session " + s.serial
	case a.Species() != s.species:
		return fmt.Sprintf("species %s does not match session species %s", a.Species(), s.species)
	case a.Status() != animal.Alive:
		return "status is " + a.Status().String()
	case !a.SiteID().IsEqual(s.siteID):
		return "is not at the session site"
	}
	return ""
}

func (s *Session) ensureOpen(operation string) error {
	if s.status != Open {
		return errs.NewInvalidStateError("holding session", s.serial, s.status.String(), operation)
	}
	return nil
}

func (s *Session) memberIndex(animalID kernel.UUID) int {
	for i, m := range s.members {
		if m.animalID.IsEqual(animalID) {
			return i
		}
	}
	return -1
}

func (s *Session) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Session) setSerial(serial string) error {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return ErrSerialIsRequired
	}
	s.serial = serial
	return nil
}

func (s *Session) setSiteID(siteID kernel.UUID) error {
	if err := siteID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("site", err)
	}
	s.siteID = siteID
	return nil
}

func validateStartDay(startAt, now time.Time) error {
	if startAt.IsZero() {
		return errs.NewValueIsRequiredError("start_time")
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if startAt.In(now.Location()).Before(today) {
		return errs.NewValueIsInvalidErrorWithCause(
			"start_time",
			fmt.Errorf("%s is a past date", startAt.Format(time.DateOnly)),
		)
	}
	return nil
}
