package transfer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var (
	ErrSerialIsRequired         = errs.NewValueIsRequiredError("serial")
	ErrAnimalsAreRequired       = errs.NewValueIsRequiredError("animals")
	ErrSameSourceAndDestination = errs.NewValueIsInvalidErrorWithCause(
		"destination", errors.New("destination must differ from source"),
	)
	ErrLastMember = errs.NewValueIsInvalidErrorWithCause(
		"animal_id", errors.New("a transfer keeps at least one animal"),
	)
	ErrZeroReceiptNotConfirmed  = errs.NewValueIsRequiredError("confirm_zero_receipt")
	ErrTransferIsNotConstructed = errors.New("Transfer must be created via NewTransfer constructor")
)

// Transfer moves a named set of animals from a source site to a destination.
// Animals stay ALIVE and owned by the source until the reception confirms them.
type Transfer struct {
	id            kernel.UUID
	serial        string
	sourceID      kernel.UUID
	destinationID kernel.UUID
	declaredCount int
	motive        string
	status        Status
	createdAt     time.Time
	createdBy     kernel.Actor
	dispatchedAt  *time.Time
	deliveredAt   *time.Time
	validatedBy   kernel.Actor
	cancelledAt   *time.Time
	cancelledBy   kernel.Actor
	cancelReason  string
	members       []*Member
	reception     *Reception

	kernel.EventRecorder
	guard guard.ConstructorGuard
}

type State struct {
	ID            kernel.UUID
	Serial        string
	SourceID      kernel.UUID
	DestinationID kernel.UUID
	DeclaredCount int
	Motive        string
	Status        Status
	CreatedAt     time.Time
	CreatedBy     kernel.Actor
	DispatchedAt  *time.Time
	DeliveredAt   *time.Time
	ValidatedBy   kernel.Actor
	CancelledAt   *time.Time
	CancelledBy   kernel.Actor
	CancelReason  string
	Members       []*Member
	Reception     *Reception
}

// Seed carries the identifiers allocated for a new transfer and its reception.
type Seed struct {
	ID              kernel.UUID
	Serial          string
	ReceptionID     kernel.UUID
	ReceptionSerial string
}

// Confirmation is the destination's account of what arrived.
type Confirmation struct {
	ReceivedIDs []kernel.UUID
	MissingTags []string
	Note        string
	// StrictMissingTags requires every missing tag to name a member.
	StrictMissingTags bool
	// ConfirmZeroReceipt must be set to close a reception that received nothing.
	ConfirmZeroReceipt bool
}

// NewTransfer creates an OPEN transfer with a PENDING reception expecting
// declaredCount animals. Repeated animals are collapsed; declaredCount must
// equal the number of distinct animals.
func NewTransfer(
	seed Seed,
	sourceID, destinationID kernel.UUID,
	animals []*animal.Animal,
	declaredCount int,
	motive string,
	actor kernel.Actor,
	now time.Time,
) (*Transfer, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if sourceID.IsEqual(destinationID) {
		return nil, ErrSameSourceAndDestination
	}

	reception, err := RestoreReception(ReceptionState{
		ID:        seed.ReceptionID,
		Serial:    seed.ReceptionSerial,
		Status:    ReceptionPending,
		CreatedAt: now,
		CreatedBy: actor,
	})
	if err != nil {
		return nil, err
	}

	t, err := RestoreTransfer(State{
		ID:            seed.ID,
		Serial:        seed.Serial,
		SourceID:      sourceID,
		DestinationID: destinationID,
		Motive:        motive,
		Status:        Open,
		CreatedAt:     now,
		CreatedBy:     actor,
		Reception:     reception,
	})
	if err != nil {
		return nil, err
	}

	if len(animals) == 0 {
		return nil, ErrAnimalsAreRequired
	}
	var rejections []errs.Rejection
	for _, a := range animals {
		if err = a.Validate(); err != nil {
			return nil, err
		}
		if t.HasMember(a.ID()) {
			continue
		}
		if reason := t.admissionFailure(a); reason != "" {
			rejections = append(rejections, errs.Rejection{
				ID:  a.ID().String(),
				Err: errs.NewPredicateFailedError(a.Tag(), reason),
			})
			continue
		}
		t.members = append(t.members, &Member{animalID: a.ID(), tag: a.Tag(), addedBy: actor, addedAt: now, outcome: OutcomePending})
	}
	if len(rejections) > 0 {
		return nil, errs.NewRejectionsError(rejections)
	}

	if declaredCount < 1 || declaredCount != len(t.members) {
		return nil, errs.NewValueIsOutOfRangeError("declared_count", declaredCount, len(t.members), len(t.members))
	}
	t.syncCounts()

	t.Record(TransferCreated{
		EventHeader:     kernel.NewEventHeader(EventTransferCreated, t.id, actor, now),
		Serial:          t.serial,
		ReceptionSerial: reception.serial,
		SourceID:        sourceID,
		DestinationID:   destinationID,
		AnimalIDs:       t.MemberIDs(),
	})
	return t, nil
}

func RestoreTransfer(st State) (*Transfer, error) {
	serial := strings.TrimSpace(st.Serial)
	var serialErr error
	if serial == "" {
		serialErr = ErrSerialIsRequired
	}
	var receptionErr error
	if st.Reception == nil {
		receptionErr = errs.NewValueIsRequiredError("reception")
	}
	if err := errors.Join(
		st.ID.Validate(),
		serialErr,
		siteErr("source", st.SourceID),
		siteErr("destination", st.DestinationID),
		st.Status.Validate(),
		receptionErr,
	); err != nil {
		return nil, err
	}

	return &Transfer{
		id:            st.ID,
		serial:        serial,
		sourceID:      st.SourceID,
		destinationID: st.DestinationID,
		declaredCount: st.DeclaredCount,
		motive:        strings.TrimSpace(st.Motive),
		status:        st.Status,
		createdAt:     st.CreatedAt,
		createdBy:     st.CreatedBy,
		dispatchedAt:  st.DispatchedAt,
		deliveredAt:   st.DeliveredAt,
		validatedBy:   st.ValidatedBy,
		cancelledAt:   st.CancelledAt,
		cancelledBy:   st.CancelledBy,
		cancelReason:  st.CancelReason,
		members:       append([]*Member(nil), st.Members...),
		reception:     st.Reception,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (t *Transfer) Validate() error {
	if t == nil {
		return ErrTransferIsNotConstructed
	}
	return t.guard.Validate(ErrTransferIsNotConstructed)
}

func (t *Transfer) ID() kernel.UUID            { return t.id }
func (t *Transfer) Serial() string             { return t.serial }
func (t *Transfer) SourceID() kernel.UUID      { return t.sourceID }
func (t *Transfer) DestinationID() kernel.UUID { return t.destinationID }
func (t *Transfer) DeclaredCount() int         { return t.declaredCount }
func (t *Transfer) Motive() string             { return t.motive }
func (t *Transfer) Status() Status             { return t.status }
func (t *Transfer) CreatedAt() time.Time       { return t.createdAt }
func (t *Transfer) CreatedBy() kernel.Actor    { return t.createdBy }
func (t *Transfer) DispatchedAt() *time.Time   { return t.dispatchedAt }
func (t *Transfer) DeliveredAt() *time.Time    { return t.deliveredAt }
func (t *Transfer) ValidatedBy() kernel.Actor  { return t.validatedBy }
func (t *Transfer) CancelledAt() *time.Time    { return t.cancelledAt }
func (t *Transfer) CancelledBy() kernel.Actor  { return t.cancelledBy }
func (t *Transfer) CancelReason() string       { return t.cancelReason }
func (t *Transfer) Reception() *Reception      { return t.reception }

func (t *Transfer) Members() []*Member {
	return append([]*Member(nil), t.members...)
}

func (t *Transfer) MemberIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(t.members))
	for _, m := range t.members {
		ids = append(ids, m.animalID)
	}
	return ids
}

func (t *Transfer) HasMember(animalID kernel.UUID) bool {
	return t.member(animalID) != nil
}

// Add appends an animal to an OPEN transfer and grows the declared and expected counts.
func (t *Transfer) Add(a *animal.Animal, actor kernel.Actor, now time.Time) error {
	if err := t.ensureStatus("add an animal", Open); err != nil {
		return err
	}
	if err := errors.Join(a.Validate(), actor.Validate()); err != nil {
		return err
	}
	if t.HasMember(a.ID()) {
		return errs.NewPredicateFailedError(a.Tag(), "is already a member of transfer "+t.serial)
	}
	if reason := t.admissionFailure(a); reason != "" {
		return errs.NewPredicateFailedError(a.Tag(), reason)
	}

	t.members = append(t.members, &Member{animalID: a.ID(), tag: a.Tag(), addedBy: actor, addedAt: now, outcome: OutcomePending})
	t.syncCounts()
	return nil
}

// Remove drops an animal from an OPEN transfer. The last member cannot be removed.
func (t *Transfer) Remove(animalID kernel.UUID) error {
	if err := t.ensureStatus("remove an animal", Open); err != nil {
		return err
	}
	i := t.memberIndex(animalID)
	if i < 0 {
		return errs.NewPredicateFailedError(animalID.String(), "is not a member of transfer "+t.serial)
	}
	if len(t.members) == 1 {
		return ErrLastMember
	}

	t.members = append(t.members[:i], t.members[i+1:]...)
	t.syncCounts()
	return nil
}

// Dispatch puts the transfer on the road and the reception EN_ROUTE.
// Animal statuses and sites do not change.
func (t *Transfer) Dispatch(actor kernel.Actor, now time.Time) error {
	if err := t.ensureStatus("dispatch", Open); err != nil {
		return err
	}
	if t.reception.status != ReceptionPending {
		return errs.NewInvalidStateError("reception", t.reception.serial, t.reception.status.String(), "dispatch")
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	t.status = InTransit
	t.dispatchedAt = &now
	t.reception.status = ReceptionEnRoute
	t.Record(TransferDispatched{
		EventHeader: kernel.NewEventHeader(EventTransferDispatched, t.id, actor, now),
		Serial:      t.serial,
	})
	return nil
}

// Cancel aborts an OPEN transfer at the source; its pending reception is cancelled with it.
func (t *Transfer) Cancel(actor kernel.Actor, reason string, now time.Time) error {
	if err := t.ensureStatus("cancel", Open); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	t.markCancelled(actor, reason, now)
	if t.reception.status.IsAwaiting() {
		t.reception.cancel(actor, reason, now)
	}
	t.Record(TransferCancelled{
		EventHeader: kernel.NewEventHeader(EventTransferCancelled, t.id, actor, now),
		Serial:      t.serial,
		Reason:      reason,
	})
	return nil
}

// BeginReception marks the destination as unloading: EN_ROUTE -> IN_PROGRESS.
func (t *Transfer) BeginReception(actor kernel.Actor, now time.Time) error {
	if t.reception.status != ReceptionEnRoute {
		return errs.NewInvalidStateError("reception", t.reception.serial, t.reception.status.String(), "begin")
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	t.reception.status = ReceptionInProgress
	t.reception.startedAt = &now
	return nil
}

// ConfirmReception reconciles the reception and delivers the transfer.
// It returns the ids of the received animals, which the caller relocates to
// the destination; every other member stays at the source.
func (t *Transfer) ConfirmReception(c Confirmation, actor kernel.Actor, now time.Time) ([]kernel.UUID, error) {
	if err := t.reception.ensureAwaiting("confirm"); err != nil {
		return nil, err
	}
	if err := t.ensureStatus("confirm reception", Open, InTransit); err != nil {
		return nil, err
	}
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	received := kernel.UniqueUUIDs(c.ReceivedIDs)
	receivedSet := make(map[kernel.UUID]struct{}, len(received))
	var rejections []errs.Rejection
	for _, id := range received {
		receivedSet[id] = struct{}{}
		if !t.HasMember(id) {
			rejections = append(rejections, errs.Rejection{
				ID:  id.String(),
				Err: errs.NewPredicateFailedError(id.String(), "is not a member of transfer "+t.serial),
			})
		}
	}

	// Missing tags are stored as given. Only the member lookup trims them.
	missingTags := append([]string{}, c.MissingTags...)
	for _, given := range c.MissingTags {
		tag := strings.TrimSpace(given)
		if tag == "" {
			if c.StrictMissingTags {
				rejections = append(rejections, errs.Rejection{
					ID:  given,
					Err: errs.NewPredicateFailedError("missing_tags", "contains a blank tag"),
				})
			}
			continue
		}

		m := t.memberByTag(tag)
		switch {
		case m == nil && c.StrictMissingTags:
			rejections = append(rejections, errs.Rejection{
				ID:  tag,
				Err: errs.NewPredicateFailedError(tag, "does not match any animal of transfer "+t.serial),
			})
		case m != nil:
			if _, both := receivedSet[m.animalID]; both {
				rejections = append(rejections, errs.Rejection{
					ID: m.animalID.String(),
					Err: errs.NewValueIsInvalidErrorWithCause(
						"missing_tags",
						fmt.Errorf("%s is reported both received and missing", tag),
					),
				})
			}
		}
	}
	if len(rejections) > 0 {
		return nil, errs.NewRejectionsError(rejections)
	}

	status, err := t.receptionOutcome(len(received), c.ConfirmZeroReceipt)
	if err != nil {
		return nil, err
	}

	for _, m := range t.members {
		m.outcome = OutcomeMissing
		if _, ok := receivedSet[m.animalID]; ok {
			m.outcome = OutcomeReceived
		}
	}

	r := t.reception
	r.receivedCount = len(received)
	r.missingCount = len(missingTags)
	r.missingTags = missingTags
	r.note = strings.TrimSpace(c.Note)
	r.status = status
	r.confirmedAt = &now
	r.validatedBy = actor

	t.status = Delivered
	t.deliveredAt = &now
	t.validatedBy = actor

	t.Record(ReceptionConfirmed{
		EventHeader:   kernel.NewEventHeader(EventReceptionConfirmed, r.id, actor, now),
		Serial:        r.serial,
		Status:        status,
		ReceivedCount: r.receivedCount,
		MissingCount:  r.missingCount,
		MissingTags:   r.MissingTags(),
	})
	t.Record(TransferDelivered{
		EventHeader:   kernel.NewEventHeader(EventTransferDelivered, t.id, actor, now),
		Serial:        t.serial,
		DestinationID: t.destinationID,
	})
	return received, nil
}

// CancelReception cancels an awaiting reception and cascades to the transfer
// while it is still OPEN or IN_TRANSIT. Animals stay ALIVE at the source.
func (t *Transfer) CancelReception(actor kernel.Actor, reason string, now time.Time) error {
	if err := t.reception.ensureAwaiting("cancel"); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	t.reception.cancel(actor, reason, now)
	if t.status.IsActive() {
		t.markCancelled(actor, reason, now)
		t.Record(TransferCancelled{
			EventHeader: kernel.NewEventHeader(EventTransferCancelled, t.id, actor, now),
			Serial:      t.serial,
			Reason:      reason,
			ByReception: true,
		})
	}
	return nil
}

func (t *Transfer) receptionOutcome(received int, confirmZero bool) (ReceptionStatus, error) {
	expected := t.reception.expectedCount
	switch {
	case received == 0 && !confirmZero:
		return ReceptionUnknown, ErrZeroReceiptNotConfirmed
	case received == 0:
		return ReceptionReceived, nil
	case received < expected:
		return ReceptionPartial, nil
	case received == expected:
		return ReceptionReceived, nil
	}
	return ReceptionUnknown, errs.NewValueIsOutOfRangeError("received_count", received, 0, expected)
}

func (t *Transfer) markCancelled(actor kernel.Actor, reason string, now time.Time) {
	t.status = Cancelled
	t.cancelledAt = &now
	t.cancelledBy = actor
	t.cancelReason = reason
}

func (t *Transfer) syncCounts() {
	t.declaredCount = len(t.members)
	if t.reception.status == ReceptionPending {
		t.reception.expectedCount = t.declaredCount
	}
}

func (t *Transfer) admissionFailure(a *animal.Animal) string {
	switch {
	case a.Status() != animal.Alive:
		return "status is " + a.Status().String()
	case !a.SiteID().IsEqual(t.sourceID):
		return "is not at the transfer source"
	}
	return ""
}

func (t *Transfer) ensureStatus(operation string, allowed ...Status) error {
	for _, s := range allowed {
		if t.status == s {
			return nil
		}
	}
	return errs.NewInvalidStateError("transfer", t.serial, t.status.String(), operation)
}

func (t *Transfer) member(animalID kernel.UUID) *Member {
	if i := t.memberIndex(animalID); i >= 0 {
		return t.members[i]
	}
	return nil
}

func (t *Transfer) memberIndex(animalID kernel.UUID) int {
	for i, m := range t.members {
		if m.animalID.IsEqual(animalID) {
			return i
		}
	}
	return -1
}

func (t *Transfer) memberByTag(tag string) *Member {
	for _, m := range t.members {
		if m.tag == tag {
			return m
		}
	}
	return nil
}

func siteErr(field string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(field, err)
	}
	return nil
}
