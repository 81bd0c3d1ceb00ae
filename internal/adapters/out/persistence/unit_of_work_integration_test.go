package persistence_test

import (
	"context"
	"testing"
	"time"

	"livestock/internal/adapters/out/persistence"
	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/site"
	"livestock/internal/core/domain/model/transfer"
	"livestock/internal/core/ports"
	"livestock/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the gorm Unit of Work against PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *MockEventPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := persistence.Open(persistence.Config{Driver: persistence.DriverPostgres, DSN: dsn})
	suite.Require().NoError(err)
	suite.Require().NoError(persistence.Migrate(db))
	suite.db = db
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE orders, receptions, transfer_members, transfers,
		holding_members, holding_sessions, animals, sites`).Error
	suite.Require().NoError(err)

	suite.publisher = new(MockEventPublisher)
	suite.factory = persistence.NewGormUnitOfWorkFactory(suite.db, suite.publisher, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) seed(animals int) (*site.Site, *site.Site, []*animal.Animal) {
	ctx := context.Background()
	t := suite.T()

	source := newSite(t)
	destination, err := site.NewSite(kernel.NewUUID(), "South", "", map[kernel.Species]int{kernel.Bovine: 5})
	suite.Require().NoError(err)

	herd := make([]*animal.Animal, 0, animals)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SiteRepository().Add(ctx, source))
	suite.Require().NoError(uow.SiteRepository().Add(ctx, destination))
	for i := range animals {
		a := newAnimal(t, source.ID(), "FR-"+string(rune('A'+i)))
		suite.Require().NoError(uow.AnimalRepository().Add(ctx, a))
		herd = append(herd, a)
	}
	suite.Require().NoError(uow.Commit(ctx))
	return source, destination, herd
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestHoldingSessionRoundTrip() {
	ctx := context.Background()
	s, _, herd := suite.seed(2)

	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	session, err := holding.NewSession(kernel.NewUUID(), "STAB-20250314-093000-001", s, kernel.Bovine, now, "", "alice", now)
	suite.Require().NoError(err)
	suite.Require().NoError(session.Admit(herd, 10, "alice", now))
	suite.Require().NoError(uow.HoldingRepository().Add(ctx, session))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.HoldingRepository().Get(ctx, session.ID())
	suite.Require().NoError(err)
	suite.ElementsMatch(session.MemberIDs(), loaded.MemberIDs())

	_, err = loaded.Withdraw([]kernel.UUID{herd[0].ID()})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.HoldingRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	reloaded, err := suite.factory.Create().HoldingRepository().Get(ctx, session.ID())
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{herd[1].ID()}, reloaded.MemberIDs())

	exists, err := suite.factory.Create().HoldingRepository().SerialExists(ctx, session.Serial())
	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransferRoundTripAndActiveMembers() {
	ctx := context.Background()
	source, destination, herd := suite.seed(3)

	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	tr, err := transfer.NewTransfer(transfer.Seed{
		ID:              kernel.NewUUID(),
		Serial:          "TRF-20250314-093000-001",
		ReceptionID:     kernel.NewUUID(),
		ReceptionSerial: "REC-20250314-093000-001",
	}, source.ID(), destination.ID(), herd[:2], 2, "grazing", "alice", now)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TransferRepository().Add(ctx, tr))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().TransferRepository()
	active, err := repo.ActiveMembers(ctx, []kernel.UUID{herd[0].ID(), herd[2].ID()}, kernel.UUID{})
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{herd[0].ID()}, active)

	active, err = repo.ActiveMembers(ctx, []kernel.UUID{herd[0].ID()}, tr.ID())
	suite.Require().NoError(err)
	suite.Empty(active)

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.TransferRepository().Get(ctx, tr.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Dispatch("bob", now))
	_, err = loaded.ConfirmReception(transfer.Confirmation{
		ReceivedIDs: []kernel.UUID{herd[0].ID()},
		MissingTags: []string{herd[1].Tag()},
	}, "carol", now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TransferRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	delivered, err := repo.Get(ctx, tr.ID())
	suite.Require().NoError(err)
	suite.Equal(transfer.Delivered, delivered.Status())
	suite.Equal(transfer.ReceptionPartial, delivered.Reception().Status())
	suite.Equal([]string{herd[1].Tag()}, delivered.Reception().MissingTags())
	suite.Equal(1, delivered.Reception().ReceivedCount())

	active, err = repo.ActiveMembers(ctx, []kernel.UUID{herd[0].ID(), herd[1].ID()}, kernel.UUID{})
	suite.Require().NoError(err)
	suite.Empty(active)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDuplicateSerialIsUniqueConflict() {
	ctx := context.Background()
	s, _, _ := suite.seed(0)

	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	for i, want := range []error{nil, errs.ErrUniqueConflict} {
		session, err := holding.NewSession(kernel.NewUUID(), "STAB-20250314-093000-001", s, kernel.Bovine, now, "", "alice", now)
		suite.Require().NoError(err)

		uow := suite.factory.Create()
		suite.Require().NoError(uow.Begin(ctx))
		err = uow.HoldingRepository().Add(ctx, session)
		if want == nil {
			suite.Require().NoError(err, "attempt %d", i)
			suite.Require().NoError(uow.Commit(ctx))
			continue
		}
		suite.Require().ErrorIs(err, want)
		suite.Require().NoError(uow.Rollback(ctx))
	}
}

// TestSiteRowLockSerializesWriters checks that a second transaction reading
// the same site waits for the first one to finish.
func (suite *UnitOfWorkIntegrationTestSuite) TestSiteRowLockSerializesWriters() {
	ctx := context.Background()
	s, _, _ := suite.seed(0)

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	_, err := first.SiteRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)

	acquired := make(chan time.Time, 1)
	go func() {
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			acquired <- time.Time{}
			return
		}
		defer func() { _ = second.Rollback(ctx) }()
		_, _ = second.SiteRepository().Get(ctx, s.ID())
		acquired <- time.Now()
	}()

	time.Sleep(300 * time.Millisecond)
	released := time.Now()
	suite.Require().NoError(first.Rollback(ctx))

	got := <-acquired
	suite.False(got.Before(released), "second reader must wait for the lock")
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
