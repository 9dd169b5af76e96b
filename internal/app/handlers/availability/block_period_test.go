package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/dto"
	availabilityapp "stayhub/internal/app/handlers/availability"
	bookingapp "stayhub/internal/app/handlers/booking"
	"stayhub/internal/app/middleware"
	"stayhub/internal/app/queries"
	domainreservation "stayhub/internal/domain/reservation"
	domainresource "stayhub/internal/domain/resource"
	"stayhub/internal/infra/storage/memory"
)

type fixture struct {
	commands commands.Bus
	queries  queries.Bus
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	registry := memory.NewResourceRegistry(
		&domainresource.Resource{ID: "prop-1", Kind: domainresource.KindPropertyStay, Granularity: domainresource.GranularityDay},
	)
	store := memory.NewStore()
	outboxStore := memory.NewOutbox()
	factory := memory.Factory{Store: store, Registry: registry}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, availabilityapp.BlockPeriodCommand{}.Key(), &availabilityapp.BlockPeriodHandler{Outbox: outboxStore})
	commands.RegisterHandler(commandBus, availabilityapp.UnblockPeriodCommand{}.Key(), &availabilityapp.UnblockPeriodHandler{Outbox: outboxStore})
	commands.RegisterHandler(commandBus, bookingapp.RequestReservationCommand{}.Key(), &bookingapp.RequestReservationHandler{
		UoWFactory: factory,
		Outbox:     outboxStore,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.CheckAvailabilityQuery{}.Key(), &availabilityapp.CheckAvailabilityHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, availabilityapp.GetSummaryQuery{}.Key(), &availabilityapp.GetSummaryHandler{UoWFactory: factory, CommissionRate: 0.10})

	return fixture{
		commands: middleware.ChainCommands(
			commandBus,
			middleware.Transaction(factory, nil),
			middleware.OutboxFlush(outboxStore),
		),
		queries: middleware.ChainQueries(queryBus),
	}
}

func futureDay(daysAhead int) time.Time {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Truncate(24 * time.Hour)
}

func TestBlockPeriodShadowsAvailability(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	block, err := commands.Dispatch[availabilityapp.BlockPeriodCommand, *dto.BlockedPeriod](ctx, fx.commands, availabilityapp.BlockPeriodCommand{
		ResourceID: "prop-1",
		Start:      futureDay(10),
		End:        futureDay(14),
		Reason:     "maintenance",
	})
	require.NoError(t, err)
	require.NotEmpty(t, block.ID)

	check, err := queries.Ask[availabilityapp.CheckAvailabilityQuery, dto.AvailabilityCheck](ctx, fx.queries, availabilityapp.CheckAvailabilityQuery{
		ResourceID: "prop-1",
		Start:      futureDay(12),
		End:        futureDay(16),
	})
	require.NoError(t, err)
	assert.False(t, check.Free)
	require.Len(t, check.Conflicts, 1)
	assert.Equal(t, "BLOCK", check.Conflicts[0].Kind)

	_, err = commands.Dispatch[bookingapp.RequestReservationCommand, *bookingapp.RequestReservationResult](ctx, fx.commands, bookingapp.RequestReservationCommand{
		CommandID:   "r1",
		ResourceID:  "prop-1",
		RequesterID: "guest-1",
		Start:       futureDay(12),
		End:         futureDay(16),
		Amount:      10000,
		Currency:    "EUR",
	})
	assert.ErrorIs(t, err, domainreservation.ErrConflict)
}

func TestUnblockReleasesPeriod(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	block, err := commands.Dispatch[availabilityapp.BlockPeriodCommand, *dto.BlockedPeriod](ctx, fx.commands, availabilityapp.BlockPeriodCommand{
		ResourceID: "prop-1",
		Start:      futureDay(10),
		End:        futureDay(14),
		Reason:     "repainting",
	})
	require.NoError(t, err)

	_, err = commands.Dispatch[availabilityapp.UnblockPeriodCommand, struct{}](ctx, fx.commands, availabilityapp.UnblockPeriodCommand{
		ResourceID: "prop-1",
		BlockID:    block.ID,
	})
	require.NoError(t, err)

	check, err := queries.Ask[availabilityapp.CheckAvailabilityQuery, dto.AvailabilityCheck](ctx, fx.queries, availabilityapp.CheckAvailabilityQuery{
		ResourceID: "prop-1",
		Start:      futureDay(10),
		End:        futureDay(14),
	})
	require.NoError(t, err)
	assert.True(t, check.Free)
}

func TestBlockRequiresReason(t *testing.T) {
	fx := newFixture(t)

	_, err := commands.Dispatch[availabilityapp.BlockPeriodCommand, *dto.BlockedPeriod](context.Background(), fx.commands, availabilityapp.BlockPeriodCommand{
		ResourceID: "prop-1",
		Start:      futureDay(10),
		End:        futureDay(14),
	})
	assert.ErrorIs(t, err, domainreservation.ErrReasonRequired)
}

func TestCalendarQueryShape(t *testing.T) {
	fx := newFixture(t)

	next := time.Now().UTC().AddDate(0, 1, 0)
	cal, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](context.Background(), fx.queries, availabilityapp.GetCalendarQuery{
		ResourceID: "prop-1",
		Year:       next.Year(),
		Month:      int(next.Month()),
	})
	require.NoError(t, err)
	assert.Len(t, cal.Days, 42)

	_, err = queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](context.Background(), fx.queries, availabilityapp.GetCalendarQuery{
		ResourceID: "prop-1",
		Year:       next.Year(),
		Month:      13,
	})
	assert.ErrorIs(t, err, availabilityapp.ErrInvalidMonth)
}
