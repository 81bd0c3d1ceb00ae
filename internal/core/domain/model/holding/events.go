package holding

import (
	"livestock/internal/core/domain/model/kernel"
)

const (
	EventHoldingCreated   = "HoldingCreated"
	EventHoldingClosed    = "HoldingClosed"
	EventHoldingCancelled = "HoldingCancelled"
)

type HoldingCreated struct {
	kernel.EventHeader
	Serial  string         `json:"serial"`
	SiteID  kernel.UUID    `json:"site_id"`
	Species kernel.Species `json:"species"`
}

type HoldingClosed struct {
	kernel.EventHeader
	Serial    string        `json:"serial"`
	AnimalIDs []kernel.UUID `json:"animal_ids"`
}

type HoldingCancelled struct {
	kernel.EventHeader
	Serial    string        `json:"serial"`
	AnimalIDs []kernel.UUID `json:"animal_ids"`
}
