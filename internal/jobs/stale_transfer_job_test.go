package jobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"livestock/internal/core/application/usecases/queries"
	"livestock/internal/core/domain/model/kernel"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStaleTransferFinder struct {
	mock.Mock
}

func (m *MockStaleTransferFinder) Handle(
	ctx context.Context,
	query queries.GetStaleTransfersQuery,
) ([]queries.GetStaleTransfersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetStaleTransfersQueryResponse), args.Error(1)
}

var now = time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)

func newTestJob(t *testing.T, finder StaleTransferFinder, out io.Writer) *StaleTransferJob {
	t.Helper()
	job, err := NewStaleTransferJob(finder, "", 24*time.Hour, prometheus.NewRegistry(), slog.New(slog.NewTextHandler(out, nil)))
	require.NoError(t, err)
	job.clock = func() time.Time { return now }
	return job
}

func TestStaleTransferJob_Run(t *testing.T) {
	finder := &MockStaleTransferFinder{}
	stale := []queries.GetStaleTransfersQueryResponse{
		{ID: kernel.NewUUID(), Serial: "TRF-20250312-080000-001", DeclaredCount: 12, DispatchedAt: now.Add(-58 * time.Hour)},
		{ID: kernel.NewUUID(), Serial: "TRF-20250313-070000-001", DeclaredCount: 3, DispatchedAt: now.Add(-35 * time.Hour)},
	}
	finder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetStaleTransfersQuery) bool {
		return q.DispatchedBefore().Equal(now.Add(-24 * time.Hour))
	})).Return(stale, nil).Once()

	var logs bytes.Buffer
	job := newTestJob(t, finder, &logs)

	found, err := job.Run(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 2, found)
	assert.InDelta(t, 2.0, testutil.ToFloat64(job.gauge), 0)
	assert.Contains(t, logs.String(), "TRF-20250312-080000-001")
	assert.Contains(t, logs.String(), "in_transit_for=58h0m0s")
	finder.AssertExpectations(t)
}

func TestStaleTransferJob_RunKeepsGaugeOnFailure(t *testing.T) {
	finder := &MockStaleTransferFinder{}
	finder.On("Handle", mock.Anything, mock.Anything).
		Return([]queries.GetStaleTransfersQueryResponse{{ID: kernel.NewUUID(), DispatchedAt: now.Add(-48 * time.Hour)}}, nil).Once()
	finder.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	job := newTestJob(t, finder, io.Discard)
	_, err := job.Run(t.Context())
	require.NoError(t, err)

	_, err = job.Run(t.Context())

	require.ErrorContains(t, err, "connection reset")
	assert.InDelta(t, 1.0, testutil.ToFloat64(job.gauge), 0)
}

func TestNewStaleTransferJob_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewStaleTransferJob(&MockStaleTransferFinder{}, "", 0, prometheus.NewRegistry(), logger)
	require.Error(t, err)

	reg := prometheus.NewRegistry()
	_, err = NewStaleTransferJob(&MockStaleTransferFinder{}, "", time.Hour, reg, logger)
	require.NoError(t, err)
	_, err = NewStaleTransferJob(&MockStaleTransferFinder{}, "", time.Hour, reg, logger)
	require.Error(t, err, "gauge registered twice")
}

func TestJobManager_StartStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	jm, err := NewJobManager(&MockStaleTransferFinder{}, "@every 1h", time.Hour, prometheus.NewRegistry(), logger)
	require.NoError(t, err)
	require.NoError(t, jm.StartAll())
	jm.StopAll()

	jm, err = NewJobManager(&MockStaleTransferFinder{}, "every now and then", time.Hour, prometheus.NewRegistry(), logger)
	require.NoError(t, err)
	require.Error(t, jm.StartAll())
}
