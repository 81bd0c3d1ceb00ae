package commands

import (
	"context"

	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/services"
)

type CreateHoldingCommandHandler struct {
	uowFactory HoldingUoWFactory
	allocator  services.SerialAllocator
	clock      Clock
}

func NewCreateHoldingCommandHandler(uowFactory HoldingUoWFactory) CreateHoldingCommandHandler {
	return CreateHoldingCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewSerialAllocator(),
		clock:      systemClock,
	}
}

// Handle allocates a STAB serial inside the transaction that inserts the session.
func (h *CreateHoldingCommandHandler) Handle(ctx context.Context, cmd CreateHoldingCommand) (*holding.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.SiteRepository().Get(ctx, cmd.SiteID())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	repo := uow.HoldingRepository()
	serial, err := h.allocator.Allocate(ctx, services.HoldingSerial, now, repo.SerialExists)
	if err != nil {
		return nil, err
	}

	session, err := holding.NewSession(kernel.NewUUID(), serial, s, cmd.Species(), cmd.StartAt(), cmd.Note(), cmd.Actor(), now)
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, session); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return session, nil
}
