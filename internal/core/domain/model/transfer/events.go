package transfer

import "livestock/internal/core/domain/model/kernel"

const (
	EventTransferCreated    = "TransferCreated"
	EventTransferDispatched = "TransferDispatched"
	EventTransferDelivered  = "TransferDelivered"
	EventTransferCancelled  = "TransferCancelled"
	EventReceptionConfirmed = "ReceptionConfirmed"
)

type TransferCreated struct {
	kernel.EventHeader
	Serial          string        `json:"serial"`
	ReceptionSerial string        `json:"reception_serial"`
	SourceID        kernel.UUID   `json:"source_id"`
	DestinationID   kernel.UUID   `json:"destination_id"`
	AnimalIDs       []kernel.UUID `json:"animal_ids"`
}

type TransferDispatched struct {
	kernel.EventHeader
	Serial string `json:"serial"`
}

type TransferDelivered struct {
	kernel.EventHeader
	Serial        string      `json:"serial"`
	DestinationID kernel.UUID `json:"destination_id"`
}

type TransferCancelled struct {
	kernel.EventHeader
	Serial string `json:"serial"`
	Reason string `json:"reason"`
	// ByReception is set when the cancellation cascaded from the reception.
	ByReception bool `json:"by_reception"`
}

type ReceptionConfirmed struct {
	kernel.EventHeader
	Serial        string          `json:"serial"`
	Status        ReceptionStatus `json:"status"`
	ReceivedCount int             `json:"received_count"`
	MissingCount  int             `json:"missing_count"`
	MissingTags   []string        `json:"missing_tags"`
}
