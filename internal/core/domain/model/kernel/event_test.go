package kernel_test

import (
	"testing"
	"time"

	"livestock/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

type siteOpened struct {
	kernel.EventHeader
}

func TestEventRecorder(t *testing.T) {
	var recorder kernel.EventRecorder
	id := kernel.NewUUID()
	at := time.Date(2025, 3, 4, 8, 30, 0, 0, time.UTC)

	recorder.Record(siteOpened{EventHeader: kernel.NewEventHeader("SiteOpened", id, "ops", at)})

	events := recorder.DomainEvents()
	assert.Len(t, events, 1)
	assert.Equal(t, "SiteOpened", events[0].EventName())
	assert.True(t, id.IsEqual(events[0].AggregateID()))
	assert.Equal(t, at, events[0].OccurredAt())

	events[0] = nil
	assert.NotNil(t, recorder.DomainEvents()[0])

	recorder.ClearDomainEvents()
	assert.Empty(t, recorder.DomainEvents())
}
