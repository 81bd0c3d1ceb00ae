package commands

import (
	"context"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/holding"
)

// CancelHoldingCommandHandler cancels an OPEN session and returns its members
// to ALIVE. Membership stays recorded.
type CancelHoldingCommandHandler struct {
	uowFactory HoldingUoWFactory
	clock      Clock
}

func NewCancelHoldingCommandHandler(uowFactory HoldingUoWFactory) CancelHoldingCommandHandler {
	return CancelHoldingCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *CancelHoldingCommandHandler) Handle(ctx context.Context, cmd CancelHoldingCommand) (*holding.Session, error) {
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

	now := h.clock()
	sessions := uow.HoldingRepository()
	session, err := sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return nil, err
	}
	released, err := session.Cancel(cmd.Actor(), now)
	if err != nil {
		return nil, err
	}

	if len(released) > 0 {
		animals := uow.AnimalRepository()
		herd, err := loadAnimals(ctx, animals, released)
		if err != nil {
			return nil, err
		}
		reason := "holding session " + session.Serial() + " cancelled"
		if _, err = changeStatus(ctx, animals, herd, released, animal.Alive, reason, cmd.Actor(), now); err != nil {
			return nil, err
		}
	}

	if err = sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return session, nil
}
