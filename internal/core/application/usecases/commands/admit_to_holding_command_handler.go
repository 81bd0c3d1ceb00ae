package commands

import (
	"context"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/holding"
)

// AdmitToHoldingCommandHandler admits animals into an OPEN session and moves
// them to IN_HOLDING in the same transaction.
//
// The site row is locked before the IN_HOLDING count is read, so two
// admissions at one site cannot both consume the last free places, and an
// animal raced into another session is seen as no longer ALIVE.
type AdmitToHoldingCommandHandler struct {
	uowFactory HoldingUoWFactory
	clock      Clock
}

func NewAdmitToHoldingCommandHandler(uowFactory HoldingUoWFactory) AdmitToHoldingCommandHandler {
	return AdmitToHoldingCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *AdmitToHoldingCommandHandler) Handle(ctx context.Context, cmd AdmitToHoldingCommand) (*holding.Session, error) {
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

	sessions := uow.HoldingRepository()
	session, err := sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return nil, err
	}
	s, err := uow.SiteRepository().Get(ctx, session.SiteID())
	if err != nil {
		return nil, err
	}

	animals := uow.AnimalRepository()
	herd, err := loadAnimals(ctx, animals, cmd.AnimalIDs())
	if err != nil {
		return nil, err
	}
	if err = ensureNotInActiveTransfer(ctx, uow.TransferRepository(), cmd.AnimalIDs(), anyTransfer); err != nil {
		return nil, err
	}

	inHolding, err := animals.CountInHolding(ctx, s.ID(), session.Species())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	if err = session.Admit(herd, s.RemainingCapacity(session.Species(), inHolding), cmd.Actor(), now); err != nil {
		return nil, err
	}
	reason := "admitted to holding session " + session.Serial()
	if _, err = changeStatus(ctx, animals, herd, cmd.AnimalIDs(), animal.InHolding, reason, cmd.Actor(), now); err != nil {
		return nil, err
	}
	if err = sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return session, nil
}
