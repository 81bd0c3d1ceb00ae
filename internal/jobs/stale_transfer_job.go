package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"livestock/internal/core/application/usecases/queries"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// DefaultStaleTransferSchedule checks for stale transfers every ten minutes.
const DefaultStaleTransferSchedule = "@every 10m"

// StaleTransferFinder is satisfied by queries.GetStaleTransfersQueryHandler.
type StaleTransferFinder interface {
	Handle(ctx context.Context, query queries.GetStaleTransfersQuery) ([]queries.GetStaleTransfersQueryResponse, error)
}

// StaleTransferJob reports IN_TRANSIT transfers dispatched longer than
// olderThan ago. It only logs and exports a gauge; transfers are left as they
// are.
type StaleTransferJob struct {
	finder    StaleTransferFinder
	schedule  string
	olderThan time.Duration
	cron      *cron.Cron
	gauge     prometheus.Gauge
	clock     func() time.Time
	logger    *slog.Logger
}

// NewStaleTransferJob registers the livestock_stale_transfers gauge on reg.
func NewStaleTransferJob(
	finder StaleTransferFinder,
	schedule string,
	olderThan time.Duration,
	reg prometheus.Registerer,
	logger *slog.Logger,
) (*StaleTransferJob, error) {
	if olderThan <= 0 {
		return nil, fmt.Errorf("stale transfer threshold must be positive, got %s", olderThan)
	}
	if schedule == "" {
		schedule = DefaultStaleTransferSchedule
	}

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "livestock_stale_transfers",
		Help: "Transfers in transit for longer than the configured threshold at the last check.",
	})
	if err := reg.Register(gauge); err != nil {
		return nil, fmt.Errorf("register stale transfers gauge: %w", err)
	}

	return &StaleTransferJob{
		finder:    finder,
		schedule:  schedule,
		olderThan: olderThan,
		cron:      cron.New(),
		gauge:     gauge,
		clock:     func() time.Time { return time.Now().UTC() },
		logger:    logger.With("component", "stale_transfer_job"),
	}, nil
}

// Start schedules the check. The first run happens at the first tick.
func (j *StaleTransferJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale transfer check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale transfer job started",
		"schedule", j.schedule,
		"older_than", j.olderThan.String(),
	)
	return nil
}

// Stop unschedules the job and waits for a running check to return.
func (j *StaleTransferJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale transfer job stopped")
}

// Run performs one check and returns the number of stale transfers found.
func (j *StaleTransferJob) Run(ctx context.Context) (int, error) {
	now := j.clock()
	query, err := queries.NewGetStaleTransfersQuery(j.olderThan, now)
	if err != nil {
		return 0, err
	}
	stale, err := j.finder.Handle(ctx, query)
	if err != nil {
		return 0, errors.Join(errors.New("find stale transfers"), err)
	}

	j.gauge.Set(float64(len(stale)))
	for _, t := range stale {
		j.logger.WarnContext(ctx, "Transfer is overdue",
			"transfer_id", t.ID.String(),
			"serial", t.Serial,
			"source_id", t.SourceID.String(),
			"destination_id", t.DestinationID.String(),
			"declared_count", t.DeclaredCount,
			"in_transit_for", now.Sub(t.DispatchedAt).Round(time.Minute).String(),
		)
	}
	return len(stale), nil
}
