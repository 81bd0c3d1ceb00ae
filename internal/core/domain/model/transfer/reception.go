package transfer

import (
	"errors"
	"strings"
	"time"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
)

// Reception is the destination-side record paired one-to-one with a Transfer.
type Reception struct {
	id            kernel.UUID
	serial        string
	expectedCount int
	receivedCount int
	missingCount  int
	missingTags   []string
	status        ReceptionStatus
	note          string
	createdAt     time.Time
	createdBy     kernel.Actor
	startedAt     *time.Time
	confirmedAt   *time.Time
	validatedBy   kernel.Actor
	cancelledAt   *time.Time
	cancelledBy   kernel.Actor
	cancelReason  string
}

type ReceptionState struct {
	ID            kernel.UUID
	Serial        string
	ExpectedCount int
	ReceivedCount int
	MissingCount  int
	MissingTags   []string
	Status        ReceptionStatus
	Note          string
	CreatedAt     time.Time
	CreatedBy     kernel.Actor
	StartedAt     *time.Time
	ConfirmedAt   *time.Time
	ValidatedBy   kernel.Actor
	CancelledAt   *time.Time
	CancelledBy   kernel.Actor
	CancelReason  string
}

func RestoreReception(st ReceptionState) (*Reception, error) {
	serial := strings.TrimSpace(st.Serial)
	var serialErr error
	if serial == "" {
		serialErr = errs.NewValueIsRequiredError("reception serial")
	}
	if err := errors.Join(st.ID.Validate(), serialErr, st.Status.Validate()); err != nil {
		return nil, err
	}

	return &Reception{
		id:            st.ID,
		serial:        serial,
		expectedCount: st.ExpectedCount,
		receivedCount: st.ReceivedCount,
		missingCount:  st.MissingCount,
		missingTags:   append([]string(nil), st.MissingTags...),
		status:        st.Status,
		note:          st.Note,
		createdAt:     st.CreatedAt,
		createdBy:     st.CreatedBy,
		startedAt:     st.StartedAt,
		confirmedAt:   st.ConfirmedAt,
		validatedBy:   st.ValidatedBy,
		cancelledAt:   st.CancelledAt,
		cancelledBy:   st.CancelledBy,
		cancelReason:  st.CancelReason,
	}, nil
}

func (r *Reception) ID() kernel.UUID           { return r.id }
func (r *Reception) Serial() string            { return r.serial }
func (r *Reception) ExpectedCount() int        { return r.expectedCount }
func (r *Reception) ReceivedCount() int        { return r.receivedCount }
func (r *Reception) MissingCount() int         { return r.missingCount }
func (r *Reception) Status() ReceptionStatus   { return r.status }
func (r *Reception) Note() string              { return r.note }
func (r *Reception) CreatedAt() time.Time      { return r.createdAt }
func (r *Reception) CreatedBy() kernel.Actor   { return r.createdBy }
func (r *Reception) StartedAt() *time.Time     { return r.startedAt }
func (r *Reception) ConfirmedAt() *time.Time   { return r.confirmedAt }
func (r *Reception) ValidatedBy() kernel.Actor { return r.validatedBy }
func (r *Reception) CancelledAt() *time.Time   { return r.cancelledAt }
func (r *Reception) CancelledBy() kernel.Actor { return r.cancelledBy }
func (r *Reception) CancelReason() string      { return r.cancelReason }

// MissingTags returns the tags reported missing, verbatim.
func (r *Reception) MissingTags() []string {
	return append([]string(nil), r.missingTags...)
}

func (r *Reception) ensureAwaiting(operation string) error {
	if !r.status.IsAwaiting() {
		return errs.NewInvalidStateError("reception", r.serial, r.status.String(), operation)
	}
	return nil
}

func (r *Reception) cancel(actor kernel.Actor, reason string, now time.Time) {
	r.status = ReceptionCancelled
	r.cancelledAt = &now
	r.cancelledBy = actor
	r.cancelReason = reason
}
