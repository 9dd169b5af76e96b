package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainreservation "stayhub/internal/domain/reservation"
	domainresource "stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
	"stayhub/internal/domain/shared/money"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newReservation(t *testing.T, id, requester string, start, end time.Time) *domainreservation.Reservation {
	t.Helper()
	span, err := interval.New(start, end)
	require.NoError(t, err)
	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:          domainreservation.ReservationID(id),
		ResourceID:  "prop-1",
		RequesterID: requester,
		Span:        span,
		Amount:      money.Must(10000, "EUR"),
		CreatedAt:   day(2026, time.January, 1),
	})
	require.NoError(t, err)
	return res
}

func TestCreateRejectsOverlap(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := newReservation(t, "r1", "guest-1", day(2026, time.March, 10), day(2026, time.March, 15))
	require.NoError(t, store.Reservations().Create(ctx, first))

	second := newReservation(t, "r2", "guest-2", day(2026, time.March, 14), day(2026, time.March, 18))
	err := store.Reservations().Create(ctx, second)
	assert.ErrorIs(t, err, domainreservation.ErrConflict)
}

func TestCreateAllowsBackToBack(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := newReservation(t, "r1", "guest-1", day(2026, time.March, 10), day(2026, time.March, 15))
	require.NoError(t, store.Reservations().Create(ctx, first))

	second := newReservation(t, "r2", "guest-2", day(2026, time.March, 15), day(2026, time.March, 18))
	assert.NoError(t, store.Reservations().Create(ctx, second))
}

func TestCancellationFreesInterval(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := newReservation(t, "r1", "guest-1", day(2026, time.March, 10), day(2026, time.March, 15))
	require.NoError(t, store.Reservations().Create(ctx, first))
	require.NoError(t, first.Cancel("plans changed", day(2026, time.February, 1)))
	require.NoError(t, store.Reservations().Save(ctx, first))

	second := newReservation(t, "r2", "guest-2", day(2026, time.March, 10), day(2026, time.March, 15))
	assert.NoError(t, store.Reservations().Create(ctx, second))
}

func TestCreateSerializesConcurrentClaims(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	const racers = 32

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := newReservation(t, fmt.Sprintf("r%d", i), fmt.Sprintf("guest-%d", i),
				day(2026, time.July, 1), day(2026, time.July, 8))
			errs[i] = store.Reservations().Create(ctx, res)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, domainreservation.ErrConflict)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestSaveDetectsConcurrentUpdate(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	res := newReservation(t, "r1", "guest-1", day(2026, time.March, 10), day(2026, time.March, 15))
	require.NoError(t, store.Reservations().Create(ctx, res))

	loadedA, err := store.Reservations().ByID(ctx, "r1")
	require.NoError(t, err)
	loadedB, err := store.Reservations().ByID(ctx, "r1")
	require.NoError(t, err)

	require.NoError(t, loadedA.Confirm(day(2026, time.February, 1)))
	require.NoError(t, store.Reservations().Save(ctx, loadedA))

	require.NoError(t, loadedB.Decline("late", day(2026, time.February, 1)))
	err = store.Reservations().Save(ctx, loadedB)
	assert.ErrorIs(t, err, domainreservation.ErrConcurrentUpdate)
}

func TestBlockRejectsOverlapWithReservation(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	res := newReservation(t, "r1", "guest-1", day(2026, time.March, 10), day(2026, time.March, 15))
	require.NoError(t, store.Reservations().Create(ctx, res))

	span, err := interval.New(day(2026, time.March, 12), day(2026, time.March, 20))
	require.NoError(t, err)
	block, err := domainreservation.NewBlockedPeriod("b1", "prop-1", span, "maintenance", time.Now())
	require.NoError(t, err)
	err = store.Blocks().Create(ctx, block)
	assert.ErrorIs(t, err, domainreservation.ErrConflict)
}

func TestBlockDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	span, err := interval.New(day(2026, time.April, 1), day(2026, time.April, 5))
	require.NoError(t, err)
	block, err := domainreservation.NewBlockedPeriod("b1", "prop-1", span, "maintenance", time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Blocks().Create(ctx, block))

	require.NoError(t, store.Blocks().Delete(ctx, "prop-1", "b1"))
	err = store.Blocks().Delete(ctx, "prop-1", "b1")
	assert.True(t, errors.Is(err, domainreservation.ErrBlockNotFound))

	listed, err := store.Blocks().ListForResource(ctx, "prop-1")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestRegistryByID(t *testing.T) {
	registry := NewResourceRegistry(&domainresource.Resource{
		ID:          "prop-1",
		Kind:        domainresource.KindPropertyStay,
		Granularity: domainresource.GranularityDay,
	})

	res, err := registry.ByID(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.Equal(t, domainresource.KindPropertyStay, res.Kind)

	_, err = registry.ByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domainresource.ErrResourceNotFound)
}
