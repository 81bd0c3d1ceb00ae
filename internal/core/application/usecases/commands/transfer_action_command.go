package commands

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var ErrTransferActionCommandIsNotConstructed = errors.New(
	"TransferActionCommand must be created via NewTransferActionCommand constructor",
)

// TransferAction names a lifecycle step of a transfer or of its reception.
type TransferAction int

const (
	UnknownTransferAction TransferAction = iota
	DispatchTransfer
	CancelTransfer
	BeginReception
	CancelReception
)

var transferActionNames = map[TransferAction]string{
	DispatchTransfer: "dispatch",
	CancelTransfer:   "cancel",
	BeginReception:   "begin reception",
	CancelReception:  "cancel reception",
}

func (a TransferAction) String() string {
	if name, ok := transferActionNames[a]; ok {
		return name
	}
	return "unknown"
}

// TransferActionCommand drives one lifecycle step. Cancellations take a reason.
type TransferActionCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID
	action     TransferAction
	reason     string
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewTransferActionCommand(
	transferID kernel.UUID,
	action TransferAction,
	reason string,
	actor kernel.Actor,
) (TransferActionCommand, error) {
	var actionErr error
	if _, ok := transferActionNames[action]; !ok {
		actionErr = errs.NewValueIsInvalidError("action")
	}
	if err := errors.Join(transferID.Validate(), actionErr, actor.Validate()); err != nil {
		return TransferActionCommand{}, err
	}

	return TransferActionCommand{
		transferID: transferID,
		action:     action,
		reason:     reason,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TransferActionCommand) Validate() error {
	return c.guard.Validate(ErrTransferActionCommandIsNotConstructed)
}

func (c TransferActionCommand) TransferID() kernel.UUID { return c.transferID }
func (c TransferActionCommand) Action() TransferAction  { return c.action }
func (c TransferActionCommand) Reason() string          { return c.reason }
func (c TransferActionCommand) Actor() kernel.Actor     { return c.actor }
