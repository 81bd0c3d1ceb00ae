package notify

import (
	"context"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeDelivered = "delivered"
	outcomeFailed    = "failed"
)

// MetricsPublisher counts events handed to next, labelled by event name and
// outcome. A batch that fails counts every event in it as failed.
type MetricsPublisher struct {
	next      ports.EventPublisher
	published *prometheus.CounterVec
}

func NewMetricsPublisher(next ports.EventPublisher, registerer prometheus.Registerer) (*MetricsPublisher, error) {
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "livestock",
		Name:      "events_published_total",
		Help:      "Domain events handed to the event publisher after commit.",
	}, []string{"event", "outcome"})
	if err := registerer.Register(published); err != nil {
		return nil, err
	}
	return &MetricsPublisher{next: next, published: published}, nil
}

func (p *MetricsPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	err := p.next.Publish(ctx, events...)
	outcome := outcomeDelivered
	if err != nil {
		outcome = outcomeFailed
	}
	for _, e := range events {
		p.published.WithLabelValues(e.EventName(), outcome).Inc()
	}
	return err
}
