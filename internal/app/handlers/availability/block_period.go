package availability

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	"stayhub/internal/app/outbox"
	"stayhub/internal/app/uow"
	domainreservation "stayhub/internal/domain/reservation"
	domainresource "stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/interval"
)

const (
	blockPeriodKey   = "calendar.block"
	unblockPeriodKey = "calendar.unblock"
)

type BlockPeriodCommand struct {
	ResourceID string
	Start      time.Time
	End        time.Time
	Reason     string
}

func (c BlockPeriodCommand) Key() string { return blockPeriodKey }

type BlockPeriodHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
}

// Handle creates a manual hold over an interval. The block repository
// rejects spans overlapping active reservations or existing blocks, so a
// block can never retroactively invalidate a confirmed stay.
func (h *BlockPeriodHandler) Handle(ctx context.Context, cmd BlockPeriodCommand) (*dto.BlockedPeriod, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}

	span, err := interval.New(cmd.Start, cmd.End)
	if err != nil {
		return nil, err
	}
	resourceID := domainresource.ResourceID(strings.TrimSpace(cmd.ResourceID))
	if _, err := unit.Resources().ByID(ctx, resourceID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	block, err := domainreservation.NewBlockedPeriod(
		domainreservation.BlockID(uuid.NewString()),
		resourceID,
		span,
		strings.TrimSpace(cmd.Reason),
		now,
	)
	if err != nil {
		return nil, err
	}
	if err := unit.Blocks().Create(ctx, block); err != nil {
		return nil, err
	}

	blocked := domainreservation.PeriodBlocked{
		BlockID:    block.ID,
		ResourceID: block.ResourceID,
		Span:       block.Span,
		Reason:     block.Reason,
		At:         now,
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), []events.DomainEvent{blocked}); err != nil {
		return nil, err
	}

	mapped := dto.MapBlockedPeriod(block)
	return &mapped, nil
}

func (h *BlockPeriodHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

type UnblockPeriodCommand struct {
	ResourceID string
	BlockID    string
}

func (c UnblockPeriodCommand) Key() string { return unblockPeriodKey }

type UnblockPeriodHandler struct {
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
}

func (h *UnblockPeriodHandler) Handle(ctx context.Context, cmd UnblockPeriodCommand) (struct{}, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return struct{}{}, uow.ErrUnitOfWorkMissing
	}

	resourceID := domainresource.ResourceID(strings.TrimSpace(cmd.ResourceID))
	blockID := domainreservation.BlockID(strings.TrimSpace(cmd.BlockID))
	if err := unit.Blocks().Delete(ctx, resourceID, blockID); err != nil {
		return struct{}{}, err
	}

	released := domainreservation.PeriodReleased{
		BlockID:    blockID,
		ResourceID: resourceID,
		At:         time.Now().UTC(),
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), []events.DomainEvent{released}); err != nil {
		return struct{}{}, err
	}
	return struct{}{}, nil
}

func (h *UnblockPeriodHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[BlockPeriodCommand, *dto.BlockedPeriod] = (*BlockPeriodHandler)(nil)
var _ commands.Handler[UnblockPeriodCommand, struct{}] = (*UnblockPeriodHandler)(nil)
