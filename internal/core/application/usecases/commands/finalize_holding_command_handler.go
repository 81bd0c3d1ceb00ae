package commands

import (
	"context"
	"strings"
	"time"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/services"
	"livestock/internal/core/ports"
	"livestock/internal/pkg/errs"
)

// FinalizeHoldingCommandHandler slaughters every member of an OPEN session and
// closes it. Post-slaughter tags are checked against the whole store before
// anything is written; the unique index catches a concurrent writer.
type FinalizeHoldingCommandHandler struct {
	uowFactory HoldingUoWFactory
	allocator  services.SerialAllocator
	clock      Clock
}

func NewFinalizeHoldingCommandHandler(uowFactory HoldingUoWFactory) FinalizeHoldingCommandHandler {
	return FinalizeHoldingCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewSerialAllocator(),
		clock:      systemClock,
	}
}

func (h *FinalizeHoldingCommandHandler) Handle(ctx context.Context, cmd FinalizeHoldingCommand) (*holding.Session, error) {
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
	records := cmd.Records()
	if err = session.CheckFinalizePayload(records); err != nil {
		return nil, err
	}

	now := h.clock()
	members := session.MemberIDs()
	if len(members) > 0 {
		animals := uow.AnimalRepository()
		herd, err := loadAnimals(ctx, animals, members)
		if err != nil {
			return nil, err
		}
		if err = h.assignTags(ctx, animals, herd, records, now); err != nil {
			return nil, err
		}

		for _, a := range herd {
			rec := records[a.ID()]
			if err = a.RecordSlaughter(rec.HotWeight, rec.PostSlaughterTag, now); err != nil {
				return nil, err
			}
			if err = animals.Update(ctx, a); err != nil {
				return nil, err
			}
		}

		reason := "slaughtered in holding session " + session.Serial()
		if _, err = changeStatus(ctx, animals, herd, members, animal.Slaughtered, reason, cmd.Actor(), now); err != nil {
			return nil, err
		}
	}

	if err = session.Finalize(records, cmd.Actor(), now); err != nil {
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

// assignTags rejects supplied tags that repeat within the batch or are carried
// by another animal, then fills the empty ones with fresh PA serials.
func (h *FinalizeHoldingCommandHandler) assignTags(
	ctx context.Context,
	animals ports.AnimalRepository,
	herd []*animal.Animal,
	records map[kernel.UUID]holding.SlaughterRecord,
	now time.Time,
) error {
	members := make([]kernel.UUID, 0, len(herd))
	used := make(map[string]struct{}, len(herd))
	var supplied []string
	for _, a := range herd {
		members = append(members, a.ID())

		rec := records[a.ID()]
		rec.PostSlaughterTag = strings.TrimSpace(rec.PostSlaughterTag)
		records[a.ID()] = rec
		if rec.PostSlaughterTag == "" {
			continue
		}
		if _, dup := used[rec.PostSlaughterTag]; dup {
			return errs.NewUniqueConflictError("post_slaughter_tag", rec.PostSlaughterTag)
		}
		used[rec.PostSlaughterTag] = struct{}{}
		supplied = append(supplied, rec.PostSlaughterTag)
	}

	taken, err := animals.PostSlaughterTagsInUse(ctx, supplied, members)
	if err != nil {
		return err
	}
	if len(taken) > 0 {
		return errs.NewUniqueConflictError("post_slaughter_tag", taken[0])
	}

	exists := func(ctx context.Context, tag string) (bool, error) {
		if _, ok := used[tag]; ok {
			return true, nil
		}
		found, err := animals.PostSlaughterTagsInUse(ctx, []string{tag}, nil)
		return len(found) > 0, err
	}
	for _, a := range herd {
		rec := records[a.ID()]
		if rec.PostSlaughterTag != "" {
			continue
		}
		tag, err := h.allocator.Allocate(ctx, services.PostSlaughterTag, now, exists)
		if err != nil {
			return err
		}
		used[tag] = struct{}{}
		rec.PostSlaughterTag = tag
		records[a.ID()] = rec
	}
	return nil
}
