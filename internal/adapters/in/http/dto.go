package http

import (
	"time"

	"livestock/internal/core/application/usecases/queries"
	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/order"
	"livestock/internal/core/domain/model/site"
	"livestock/internal/core/domain/model/transfer"

	"github.com/oapi-codegen/runtime/types"
)

// Requests. Identifiers and species decode through their text unmarshalers,
// the remaining enums are parsed in the handlers.

type createSiteRequest struct {
	Name       string                 `json:"name"`
	Location   string                 `json:"location"`
	Capacities map[kernel.Species]int `json:"capacities"`
}

type setCapacityRequest struct {
	Species  kernel.Species `json:"species"`
	Capacity int            `json:"capacity"`
}

type registerAnimalRequest struct {
	Tag        string         `json:"tag"`
	Species    kernel.Species `json:"species"`
	Sex        string         `json:"sex"`
	LiveWeight float64        `json:"live_weight"`
	SiteID     kernel.UUID    `json:"site_id"`
}

type changeStatusRequest struct {
	AnimalIDs []kernel.UUID `json:"animal_ids"`
	Status    string        `json:"status"`
	Reason    string        `json:"reason"`
}

type coldWeightRequest struct {
	Weight float64 `json:"weight"`
}

type healthRequest struct {
	Healthy         bool `json:"healthy"`
	UrgentSlaughter bool `json:"urgent_slaughter"`
}

type createHoldingRequest struct {
	SiteID    kernel.UUID    `json:"site_id"`
	Species   kernel.Species `json:"species"`
	StartTime *time.Time     `json:"start_time"`
	Note      string         `json:"note"`
}

type animalIDsRequest struct {
	AnimalIDs []kernel.UUID `json:"animal_ids"`
}

type slaughterRecordRequest struct {
	AnimalID         kernel.UUID `json:"animal_id"`
	HotWeight        float64     `json:"hot_weight"`
	PostSlaughterTag string      `json:"post_slaughter_tag"`
}

type finalizeRequest struct {
	Records []slaughterRecordRequest `json:"records"`
}

func (r finalizeRequest) payload() map[kernel.UUID]holding.SlaughterRecord {
	out := make(map[kernel.UUID]holding.SlaughterRecord, len(r.Records))
	for _, rec := range r.Records {
		out[rec.AnimalID] = holding.SlaughterRecord{HotWeight: rec.HotWeight, PostSlaughterTag: rec.PostSlaughterTag}
	}
	return out
}

type createTransferRequest struct {
	SourceID      kernel.UUID   `json:"source_id"`
	DestinationID kernel.UUID   `json:"destination_id"`
	AnimalIDs     []kernel.UUID `json:"animal_ids"`
	DeclaredCount int           `json:"declared_count"`
	Motive        string        `json:"motive"`
}

type transferMemberRequest struct {
	AnimalID kernel.UUID `json:"animal_id"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type confirmReceptionRequest struct {
	ReceivedIDs        []kernel.UUID `json:"received_ids"`
	MissingTags        []string      `json:"missing_tags"`
	Note               string        `json:"note"`
	StrictMissingTags  bool          `json:"strict_missing_tags"`
	ConfirmZeroReceipt bool          `json:"confirm_zero_receipt"`
}

func (r confirmReceptionRequest) confirmation() transfer.Confirmation {
	return transfer.Confirmation{
		ReceivedIDs:        r.ReceivedIDs,
		MissingTags:        r.MissingTags,
		Note:               r.Note,
		StrictMissingTags:  r.StrictMissingTags,
		ConfirmZeroReceipt: r.ConfirmZeroReceipt,
	}
}

type orderRequest struct {
	ClientRef    string         `json:"client_ref"`
	SiteID       kernel.UUID    `json:"site_id"`
	Quantity     float64        `json:"quantity"`
	QuantityKind string         `json:"quantity_kind"`
	Species      kernel.Species `json:"species"`
	ProductForm  string         `json:"product_form"`
	WithOffal    bool           `json:"with_offal"`
	PlannedOn    types.Date     `json:"planned_on"`
	Note         string         `json:"note"`
}

func (r orderRequest) details() (order.Details, error) {
	kind, err := order.ParseQuantityKind(r.QuantityKind)
	if err != nil {
		return order.Details{}, err
	}
	quantity, err := order.NewQuantity(r.Quantity, kind)
	if err != nil {
		return order.Details{}, err
	}
	form, err := order.ParseProductForm(r.ProductForm)
	if err != nil {
		return order.Details{}, err
	}
	return order.Details{
		ClientRef:   r.ClientRef,
		SiteID:      r.SiteID,
		Quantity:    quantity,
		Species:     r.Species,
		ProductForm: form,
		WithOffal:   r.WithOffal,
		PlannedOn:   r.PlannedOn.Time,
		Note:        r.Note,
	}, nil
}

type orderStatusRequest struct {
	Status      string      `json:"status"`
	DeliveredOn *types.Date `json:"delivered_on"`
}

// Responses.

type siteResponse struct {
	ID         kernel.UUID            `json:"id"`
	Name       string                 `json:"name"`
	Location   string                 `json:"location,omitempty"`
	Active     bool                   `json:"active"`
	Capacities map[kernel.Species]int `json:"capacities"`
}

func newSiteResponse(s *site.Site) siteResponse {
	return siteResponse{
		ID:         s.ID(),
		Name:       s.Name(),
		Location:   s.Location(),
		Active:     s.IsActive(),
		Capacities: s.Capacities(),
	}
}

type capacityResponse struct {
	SiteID  kernel.UUID               `json:"site_id"`
	Name    string                    `json:"name"`
	Active  bool                      `json:"active"`
	Species []speciesCapacityResponse `json:"species"`
}

type speciesCapacityResponse struct {
	Species   kernel.Species `json:"species"`
	Capacity  int            `json:"capacity"`
	InHolding int            `json:"in_holding"`
	Remaining int            `json:"remaining"`
}

func newCapacityResponse(r *queries.GetSiteCapacityQueryResponse) capacityResponse {
	out := capacityResponse{SiteID: r.SiteID, Name: r.Name, Active: r.Active}
	for _, c := range r.Species {
		out.Species = append(out.Species, speciesCapacityResponse(c))
	}
	return out
}

type animalResponse struct {
	ID                kernel.UUID    `json:"id"`
	Tag               string         `json:"tag"`
	PostSlaughterTag  string         `json:"post_slaughter_tag,omitempty"`
	Species           kernel.Species `json:"species"`
	Sex               animal.Sex     `json:"sex"`
	LiveWeight        float64        `json:"live_weight"`
	HotCarcassWeight  *float64       `json:"hot_carcass_weight,omitempty"`
	ColdCarcassWeight *float64       `json:"cold_carcass_weight,omitempty"`
	Status            animal.Status  `json:"status"`
	Healthy           bool           `json:"healthy"`
	UrgentSlaughter   bool           `json:"urgent_slaughter"`
	SiteID            kernel.UUID    `json:"site_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func newAnimalResponse(a *animal.Animal) animalResponse {
	return animalResponse{
		ID:                a.ID(),
		Tag:               a.Tag(),
		PostSlaughterTag:  a.PostSlaughterTag(),
		Species:           a.Species(),
		Sex:               a.Sex(),
		LiveWeight:        a.LiveWeight(),
		HotCarcassWeight:  a.HotCarcassWeight(),
		ColdCarcassWeight: a.ColdCarcassWeight(),
		Status:            a.Status(),
		Healthy:           a.IsHealthy(),
		UrgentSlaughter:   a.IsUrgentSlaughter(),
		SiteID:            a.SiteID(),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
	}
}

type statusChangeResponse struct {
	BatchID kernel.UUID   `json:"batch_id"`
	Status  animal.Status `json:"status"`
	Count   int           `json:"count"`
	Reason  string        `json:"reason,omitempty"`
}

func newStatusChangeResponse(c *animal.StatusChange) statusChangeResponse {
	return statusChangeResponse{BatchID: c.BatchID(), Status: c.Target(), Count: c.Count(), Reason: c.Reason()}
}

type sessionResponse struct {
	ID        kernel.UUID             `json:"id"`
	Serial    string                  `json:"serial"`
	SiteID    kernel.UUID             `json:"site_id"`
	Species   kernel.Species          `json:"species"`
	Status    holding.Status          `json:"status"`
	StartTime time.Time               `json:"start_time"`
	EndTime   *time.Time              `json:"end_time,omitempty"`
	Note      string                  `json:"note,omitempty"`
	CreatedBy kernel.Actor            `json:"created_by"`
	Members   []sessionMemberResponse `json:"members"`
}

type sessionMemberResponse struct {
	AnimalID   kernel.UUID  `json:"animal_id"`
	AdmittedBy kernel.Actor `json:"admitted_by"`
	AdmittedAt time.Time    `json:"admitted_at"`
}

func newSessionResponse(s *holding.Session) sessionResponse {
	members := make([]sessionMemberResponse, 0, len(s.Members()))
	for _, m := range s.Members() {
		members = append(members, sessionMemberResponse{AnimalID: m.AnimalID(), AdmittedBy: m.AdmittedBy(), AdmittedAt: m.AdmittedAt()})
	}
	return sessionResponse{
		ID:        s.ID(),
		Serial:    s.Serial(),
		SiteID:    s.SiteID(),
		Species:   s.Species(),
		Status:    s.Status(),
		StartTime: s.StartAt(),
		EndTime:   s.EndAt(),
		Note:      s.Note(),
		CreatedBy: s.CreatedBy(),
		Members:   members,
	}
}

type transferResponse struct {
	ID            kernel.UUID              `json:"id"`
	Serial        string                   `json:"serial"`
	SourceID      kernel.UUID              `json:"source_id"`
	DestinationID kernel.UUID              `json:"destination_id"`
	DeclaredCount int                      `json:"declared_count"`
	Motive        string                   `json:"motive,omitempty"`
	Status        transfer.Status          `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
	CreatedBy     kernel.Actor             `json:"created_by"`
	DispatchedAt  *time.Time               `json:"dispatched_at,omitempty"`
	DeliveredAt   *time.Time               `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time               `json:"cancelled_at,omitempty"`
	CancelReason  string                   `json:"cancel_reason,omitempty"`
	Reception     receptionResponse        `json:"reception"`
	Members       []transferMemberResponse `json:"members"`
}

type receptionResponse struct {
	ID            kernel.UUID              `json:"id"`
	Serial        string                   `json:"serial"`
	Status        transfer.ReceptionStatus `json:"status"`
	ExpectedCount int                      `json:"expected_count"`
	ReceivedCount int                      `json:"received_count"`
	MissingCount  int                      `json:"missing_count"`
	MissingTags   []string                 `json:"missing_tags"`
	Note          string                   `json:"note,omitempty"`
}

type transferMemberResponse struct {
	AnimalID kernel.UUID      `json:"animal_id"`
	Tag      string           `json:"tag"`
	Outcome  transfer.Outcome `json:"outcome"`
}

func newTransferResponse(t *transfer.Transfer) transferResponse {
	r := t.Reception()
	members := make([]transferMemberResponse, 0, len(t.Members()))
	for _, m := range t.Members() {
		members = append(members, transferMemberResponse{AnimalID: m.AnimalID(), Tag: m.Tag(), Outcome: m.Outcome()})
	}
	missing := r.MissingTags()
	if missing == nil {
		missing = []string{}
	}
	return transferResponse{
		ID:            t.ID(),
		Serial:        t.Serial(),
		SourceID:      t.SourceID(),
		DestinationID: t.DestinationID(),
		DeclaredCount: t.DeclaredCount(),
		Motive:        t.Motive(),
		Status:        t.Status(),
		CreatedAt:     t.CreatedAt(),
		CreatedBy:     t.CreatedBy(),
		DispatchedAt:  t.DispatchedAt(),
		DeliveredAt:   t.DeliveredAt(),
		CancelledAt:   t.CancelledAt(),
		CancelReason:  t.CancelReason(),
		Reception: receptionResponse{
			ID:            r.ID(),
			Serial:        r.Serial(),
			Status:        r.Status(),
			ExpectedCount: r.ExpectedCount(),
			ReceivedCount: r.ReceivedCount(),
			MissingCount:  r.MissingCount(),
			MissingTags:   missing,
			Note:          r.Note(),
		},
		Members: members,
	}
}

type staleTransferResponse struct {
	ID            kernel.UUID `json:"id"`
	Serial        string      `json:"serial"`
	SourceID      kernel.UUID `json:"source_id"`
	DestinationID kernel.UUID `json:"destination_id"`
	DeclaredCount int         `json:"declared_count"`
	DispatchedAt  time.Time   `json:"dispatched_at"`
}

type orderResponse struct {
	ID           kernel.UUID        `json:"id"`
	Serial       string             `json:"serial"`
	ClientRef    string             `json:"client_ref"`
	SiteID       kernel.UUID        `json:"site_id"`
	Quantity     float64            `json:"quantity"`
	QuantityKind order.QuantityKind `json:"quantity_kind"`
	Species      kernel.Species     `json:"species"`
	ProductForm  order.ProductForm  `json:"product_form"`
	WithOffal    bool               `json:"with_offal"`
	PlannedOn    types.Date         `json:"planned_on"`
	DeliveredOn  *types.Date        `json:"delivered_on,omitempty"`
	Note         string             `json:"note,omitempty"`
	Status       order.Status       `json:"status"`
	Archived     bool               `json:"archived"`
	CreatedBy    kernel.Actor       `json:"created_by"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func newOrderResponse(o *order.Order) orderResponse {
	d := o.Details()
	var delivered *types.Date
	if on := o.DeliveredOn(); on != nil {
		delivered = &types.Date{Time: *on}
	}
	return orderResponse{
		ID:           o.ID(),
		Serial:       o.Serial(),
		ClientRef:    d.ClientRef,
		SiteID:       d.SiteID,
		Quantity:     d.Quantity.Amount(),
		QuantityKind: d.Quantity.Kind(),
		Species:      d.Species,
		ProductForm:  d.ProductForm,
		WithOffal:    d.WithOffal,
		PlannedOn:    types.Date{Time: d.PlannedOn},
		DeliveredOn:  delivered,
		Note:         d.Note,
		Status:       o.Status(),
		Archived:     o.IsArchived(),
		CreatedBy:    o.CreatedBy(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}
