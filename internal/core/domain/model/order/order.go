package order

import (
	"errors"
	"strings"
	"time"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
)

var (
	ErrClientIsRequired      = errs.NewValueIsRequiredError("client")
	ErrSerialIsRequired      = errs.NewValueIsRequiredError("serial")
	ErrPlannedOnIsRequired   = errs.NewValueIsRequiredError("planned_on")
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details are the client-editable fields of an order.
type Details struct {
	ClientRef   string
	SiteID      kernel.UUID
	Quantity    Quantity
	Species     kernel.Species
	ProductForm ProductForm
	WithOffal   bool
	PlannedOn   time.Time
	Note        string
}

// Order is a demand addressed to a site for a client. It never touches animal
// statuses; fulfilment happens elsewhere.
type Order struct {
	id          kernel.UUID
	serial      string
	details     Details
	status      Status
	deliveredOn *time.Time
	archived    bool
	createdBy   kernel.Actor
	createdAt   time.Time
	updatedAt   time.Time

	kernel.EventRecorder
	guard guard.ConstructorGuard
}

type State struct {
	ID          kernel.UUID
	Serial      string
	Details     Details
	Status      Status
	DeliveredOn *time.Time
	Archived    bool
	CreatedBy   kernel.Actor
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderCreated struct {
	kernel.EventHeader
	Serial    string      `json:"serial"`
	ClientRef string      `json:"client"`
	SiteID    kernel.UUID `json:"site_id"`
}

type OrderStatusChanged struct {
	kernel.EventHeader
	Serial string `json:"serial"`
	From   Status `json:"from"`
	To     Status `json:"to"`
}

// NewOrder creates a DRAFT order.
func NewOrder(id kernel.UUID, serial string, details Details, actor kernel.Actor, now time.Time) (*Order, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	o, err := RestoreOrder(State{
		ID:        id,
		Serial:    serial,
		Details:   details,
		Status:    Draft,
		CreatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	o.Record(OrderCreated{
		EventHeader: kernel.NewEventHeader(EventOrderCreated, o.id, actor, now),
		Serial:      o.serial,
		ClientRef:   o.details.ClientRef,
		SiteID:      o.details.SiteID,
	})
	return o, nil
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(st State) (*Order, error) {
	o := &Order{
		status:      st.Status,
		deliveredOn: st.DeliveredOn,
		archived:    st.Archived,
		createdBy:   st.CreatedBy,
		createdAt:   st.CreatedAt,
		updatedAt:   st.UpdatedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(st.ID),
		o.setSerial(st.Serial),
		o.setDetails(st.Details),
		st.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) Serial() string          { return o.serial }
func (o *Order) Details() Details        { return o.details }
func (o *Order) Status() Status          { return o.status }
func (o *Order) DeliveredOn() *time.Time { return o.deliveredOn }
func (o *Order) IsArchived() bool        { return o.archived }
func (o *Order) CreatedBy() kernel.Actor { return o.createdBy }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }

// Update replaces the order details while the order is DRAFT or CONFIRMED.
func (o *Order) Update(details Details, now time.Time) error {
	if !o.status.IsEditable() {
		return errs.NewInvalidStateError("order", o.serial, o.status.String(), "update")
	}
	if err := o.setDetails(details); err != nil {
		return err
	}
	o.updatedAt = now
	return nil
}

// SetStatus moves the order to target. Reaching DELIVERED without an explicit
// deliveredOn records today's date; reaching a terminal status archives the order.
func (o *Order) SetStatus(target Status, deliveredOn *time.Time, actor kernel.Actor, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	from := o.status
	if from.IsTerminal() {
		return errs.NewInvalidStateError("order", o.serial, from.String(), "change status")
	}
	to, err := from.TransitionTo(target)
	if err != nil {
		return err
	}

	if to == Delivered {
		day := dateOf(now)
		if deliveredOn != nil {
			day = dateOf(*deliveredOn)
		}
		o.deliveredOn = &day
	}
	o.status = to
	o.archived = to.IsTerminal()
	o.updatedAt = now

	o.Record(OrderStatusChanged{
		EventHeader: kernel.NewEventHeader(EventOrderStatusChanged, o.id, actor, now),
		Serial:      o.serial,
		From:        from,
		To:          to,
	})
	return nil
}

// Cancel is SetStatus(Cancelled).
func (o *Order) Cancel(actor kernel.Actor, now time.Time) error {
	return o.SetStatus(Cancelled, nil, actor, now)
}

// EnsureDeletable allows deletion of DRAFT orders only.
func (o *Order) EnsureDeletable() error {
	if o.status != Draft {
		return errs.NewInvalidStateError("order", o.serial, o.status.String(), "delete")
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSerial(serial string) error {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return ErrSerialIsRequired
	}
	o.serial = serial
	return nil
}

func (o *Order) setDetails(d Details) error {
	d.ClientRef = strings.TrimSpace(d.ClientRef)
	d.Note = strings.TrimSpace(d.Note)

	var clientErr, plannedErr, quantityErr, formErr error
	if d.ClientRef == "" {
		clientErr = ErrClientIsRequired
	}
	if d.PlannedOn.IsZero() {
		plannedErr = ErrPlannedOnIsRequired
	}
	if _, err := NewQuantity(d.Quantity.amount, d.Quantity.kind); err != nil {
		quantityErr = err
	}
	if d.ProductForm != Live && d.ProductForm != Carcass {
		formErr = errs.NewValueIsRequiredError("product_form")
	}
	var siteErr error
	if err := d.SiteID.Validate(); err != nil {
		siteErr = errs.NewValueIsRequiredErrorWithCause("site", err)
	}

	if err := errors.Join(clientErr, plannedErr, quantityErr, formErr, siteErr, d.Species.Validate()); err != nil {
		return err
	}

	d.PlannedOn = dateOf(d.PlannedOn)
	o.details = d
	return nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
