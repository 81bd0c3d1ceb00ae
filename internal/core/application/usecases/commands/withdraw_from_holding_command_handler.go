package commands

import (
	"context"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/holding"
)

// WithdrawFromHoldingCommandHandler takes members out of an OPEN session and
// returns them to ALIVE.
type WithdrawFromHoldingCommandHandler struct {
	uowFactory HoldingUoWFactory
	clock      Clock
}

func NewWithdrawFromHoldingCommandHandler(uowFactory HoldingUoWFactory) WithdrawFromHoldingCommandHandler {
	return WithdrawFromHoldingCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *WithdrawFromHoldingCommandHandler) Handle(
	ctx context.Context,
	cmd WithdrawFromHoldingCommand,
) (*holding.Session, error) {
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
	removed, err := session.Withdraw(cmd.AnimalIDs())
	if err != nil {
		return nil, err
	}

	animals := uow.AnimalRepository()
	herd, err := loadAnimals(ctx, animals, removed)
	if err != nil {
		return nil, err
	}
	reason := "withdrawn from holding session " + session.Serial()
	if _, err = changeStatus(ctx, animals, herd, removed, animal.Alive, reason, cmd.Actor(), h.clock()); err != nil {
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
