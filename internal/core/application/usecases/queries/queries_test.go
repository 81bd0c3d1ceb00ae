package queries_test

import (
	"context"
	"testing"
	"time"

	"livestock/internal/adapters/out/persistence"
	"livestock/internal/adapters/out/persistence/persistencetest"
	"livestock/internal/core/application/usecases/queries"
	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/site"
	"livestock/internal/core/domain/model/transfer"
	"livestock/internal/core/ports"
	"livestock/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type QueriesTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	factory *persistence.GormUnitOfWorkFactory
	now     time.Time
}

func (s *QueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = persistencetest.NewSQLite(s.T())
	s.factory = persistence.NewGormUnitOfWorkFactory(s.db, nil, nil)
	s.now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
}

func (s *QueriesTestSuite) store(write func(uow ports.UnitOfWork) error) {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	defer func() { _ = uow.Rollback(s.ctx) }()
	s.Require().NoError(write(uow))
	s.Require().NoError(uow.Commit(s.ctx))
}

func (s *QueriesTestSuite) addSite(name string, capacities map[kernel.Species]int) *site.Site {
	st, err := site.NewSite(kernel.NewUUID(), name, "", capacities)
	s.Require().NoError(err)
	s.store(func(uow ports.UnitOfWork) error { return uow.SiteRepository().Add(s.ctx, st) })
	return st
}

func (s *QueriesTestSuite) addAnimal(siteID kernel.UUID, tag string, species kernel.Species, status animal.Status) *animal.Animal {
	a, err := animal.RestoreAnimal(animal.State{
		ID:         kernel.NewUUID(),
		Tag:        tag,
		Species:    species,
		Sex:        animal.Female,
		LiveWeight: 500,
		Status:     status,
		Healthy:    true,
		SiteID:     siteID,
		CreatedAt:  s.now,
		UpdatedAt:  s.now,
	})
	s.Require().NoError(err)
	s.store(func(uow ports.UnitOfWork) error { return uow.AnimalRepository().Add(s.ctx, a) })
	return a
}

func (s *QueriesTestSuite) addTransfer(serial string, from, to kernel.UUID, a *animal.Animal, dispatchedAt *time.Time) *transfer.Transfer {
	t, err := transfer.NewTransfer(transfer.Seed{
		ID:              kernel.NewUUID(),
		Serial:          serial,
		ReceptionID:     kernel.NewUUID(),
		ReceptionSerial: "REC" + serial[3:],
	}, from, to, []*animal.Animal{a}, 1, "", "dispatcher", s.now.Add(-72*time.Hour))
	s.Require().NoError(err)
	if dispatchedAt != nil {
		s.Require().NoError(t.Dispatch("dispatcher", *dispatchedAt))
	}
	s.store(func(uow ports.UnitOfWork) error { return uow.TransferRepository().Add(s.ctx, t) })
	return t
}

func (s *QueriesTestSuite) TestSiteCapacity_CountsHeldAnimalsPerSpecies() {
	north := s.addSite("North", map[kernel.Species]int{kernel.Bovine: 10, kernel.Ovine: 5})
	south := s.addSite("South", map[kernel.Species]int{kernel.Bovine: 10})

	s.addAnimal(north.ID(), "B1", kernel.Bovine, animal.InHolding)
	s.addAnimal(north.ID(), "B2", kernel.Bovine, animal.InHolding)
	s.addAnimal(north.ID(), "B3", kernel.Bovine, animal.InHolding)
	s.addAnimal(north.ID(), "B4", kernel.Bovine, animal.Alive)
	s.addAnimal(north.ID(), "O1", kernel.Ovine, animal.InHolding)
	s.addAnimal(south.ID(), "B5", kernel.Bovine, animal.InHolding)

	query, err := queries.NewGetSiteCapacityQuery(north.ID())
	s.Require().NoError(err)
	result, err := queries.NewGetSiteCapacityQueryHandler(s.db).Handle(s.ctx, query)
	s.Require().NoError(err)

	s.Equal("North", result.Name)
	s.True(result.Active)
	s.Equal([]queries.SpeciesCapacity{
		{Species: kernel.Bovine, Capacity: 10, InHolding: 3, Remaining: 7},
		{Species: kernel.Ovine, Capacity: 5, InHolding: 1, Remaining: 4},
		{Species: kernel.Caprine},
		{Species: kernel.OtherSpecies},
	}, result.Species)
}

func (s *QueriesTestSuite) TestSiteCapacity_RemainingNeverNegative() {
	small := s.addSite("Small", map[kernel.Species]int{kernel.Bovine: 1})
	s.addAnimal(small.ID(), "B1", kernel.Bovine, animal.InHolding)
	s.addAnimal(small.ID(), "B2", kernel.Bovine, animal.InHolding)

	query, err := queries.NewGetSiteCapacityQuery(small.ID())
	s.Require().NoError(err)
	result, err := queries.NewGetSiteCapacityQueryHandler(s.db).Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Equal(2, result.Species[0].InHolding)
	s.Zero(result.Species[0].Remaining)
}

func (s *QueriesTestSuite) TestSiteCapacity_UnknownSite() {
	query, err := queries.NewGetSiteCapacityQuery(kernel.NewUUID())
	s.Require().NoError(err)
	result, err := queries.NewGetSiteCapacityQueryHandler(s.db).Handle(s.ctx, query)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
	s.Nil(result)
}

func (s *QueriesTestSuite) TestSiteCapacity_InvalidQuery() {
	result, err := queries.NewGetSiteCapacityQueryHandler(s.db).Handle(s.ctx, queries.GetSiteCapacityQuery{})
	s.Require().ErrorIs(err, queries.ErrGetSiteCapacityQueryIsNotConstructed)
	s.Nil(result)
}

func (s *QueriesTestSuite) TestStaleTransfers_OnlyLongRunningInTransit() {
	north := s.addSite("North", map[kernel.Species]int{kernel.Bovine: 10})
	south := s.addSite("South", map[kernel.Species]int{kernel.Bovine: 10})

	longAgo := s.now.Add(-48 * time.Hour)
	yesterday := s.now.Add(-30 * time.Hour)
	recently := s.now.Add(-2 * time.Hour)

	older := s.addTransfer("TRF-20250312-093000-001", north.ID(), south.ID(),
		s.addAnimal(north.ID(), "B1", kernel.Bovine, animal.Alive), &longAgo)
	stale := s.addTransfer("TRF-20250313-033000-001", north.ID(), south.ID(),
		s.addAnimal(north.ID(), "B2", kernel.Bovine, animal.Alive), &yesterday)
	s.addTransfer("TRF-20250314-073000-001", north.ID(), south.ID(),
		s.addAnimal(north.ID(), "B3", kernel.Bovine, animal.Alive), &recently)
	s.addTransfer("TRF-20250311-093000-001", north.ID(), south.ID(),
		s.addAnimal(north.ID(), "B4", kernel.Bovine, animal.Alive), nil)

	query, err := queries.NewGetStaleTransfersQuery(24*time.Hour, s.now)
	s.Require().NoError(err)
	result, err := queries.NewGetStaleTransfersQueryHandler(s.db).Handle(s.ctx, query)
	s.Require().NoError(err)

	s.Require().Len(result, 2)
	s.Equal(older.ID(), result[0].ID)
	s.Equal(stale.ID(), result[1].ID)
	s.Equal(stale.Serial(), result[1].Serial)
	s.Equal(north.ID(), result[1].SourceID)
	s.Equal(south.ID(), result[1].DestinationID)
	s.Equal(1, result[1].DeclaredCount)
	s.True(yesterday.Equal(result[1].DispatchedAt))
}

func (s *QueriesTestSuite) TestStaleTransfers_RejectsNonPositiveWindow() {
	_, err := queries.NewGetStaleTransfersQuery(0, s.now)
	s.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}
