package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"venuedesk/internal/domain"
)

func newEventService(t *testing.T) (*EventService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)

	return NewEventService(env.events, env.settings, env.bookings), env
}

func TestCalculateLabourCostSaturday(t *testing.T) {
	svc, env := newEventService(t)
	ctx := context.Background()

	event := env.mustCreateEvent(t, domain.Event{
		Name:      "Saturday showdown",
		Date:      "2026-09-05", // a Saturday
		StartTime: timePtr("18:00:00"),
		EndTime:   timePtr("22:00:00"),
	})

	entry, err := svc.CalculateLabourCost(ctx, event.ID, 2)
	require.NoError(t, err)
	require.Equal(t, domain.RateSaturday, entry.RateType)
	require.InDelta(t, 4.0, entry.HoursWorked, 0.001)
	require.InDelta(t, 30.0, entry.HourlyRate, 0.001)
	require.InDelta(t, 240.0, entry.TotalCost, 0.001)
	require.Equal(t, domain.WorkFull, entry.WorkStatus)

	// Repeated runs replace the derived entry instead of stacking rows.
	_, err = svc.CalculateLabourCost(ctx, event.ID, 3)
	require.NoError(t, err)

	entries, err := env.events.GetLabourEntries(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 3, entries[0].StaffCount)
}

func TestCalculateLabourCostRateSelection(t *testing.T) {
	svc, env := newEventService(t)
	ctx := context.Background()

	sunday := env.mustCreateEvent(t, domain.Event{
		Name: "Sunday", Date: "2026-09-06",
		StartTime: timePtr("10:00:00"), EndTime: timePtr("12:00:00"),
	})

	entry, err := svc.CalculateLabourCost(ctx, sunday.ID, 1)
	require.NoError(t, err)
	require.Equal(t, domain.RateSunday, entry.RateType)
	require.InDelta(t, 35.0, entry.HourlyRate, 0.001)

	weekday := env.mustCreateEvent(t, domain.Event{
		Name: "Wednesday", Date: "2026-09-02",
		StartTime: timePtr("18:30:00"), EndTime: timePtr("21:30:00"),
	})

	entry, err = svc.CalculateLabourCost(ctx, weekday.ID, 1)
	require.NoError(t, err)
	require.Equal(t, domain.RateWeekdayAfter6pm, entry.RateType)
	require.InDelta(t, 28.0, entry.HourlyRate, 0.001)
}

func TestCalculateLabourCostPublicHoliday(t *testing.T) {
	svc, env := newEventService(t)
	ctx := context.Background()

	_, err := env.bookings.AddCalendarEntry(ctx, domain.CalendarEntry{
		Date: "2026-12-25", Title: "Christmas Day", Kind: domain.CalendarPublicHoliday,
	})
	require.NoError(t, err)

	event := env.mustCreateEvent(t, domain.Event{
		Name: "Christmas casual", Date: "2026-12-25", // a Friday
		StartTime: timePtr("11:00:00"), EndTime: timePtr("15:00:00"),
	})

	entry, err := svc.CalculateLabourCost(ctx, event.ID, 1)
	require.NoError(t, err)
	require.Equal(t, domain.RatePublicHoliday, entry.RateType)
	require.InDelta(t, 50.0, entry.HourlyRate, 0.001)
}

func TestCalculateLabourCostWrapsPastMidnight(t *testing.T) {
	svc, env := newEventService(t)

	event := env.mustCreateEvent(t, domain.Event{
		Name: "Midnight prerelease", Date: "2026-09-04",
		StartTime: timePtr("22:00:00"), EndTime: timePtr("01:00:00"),
	})

	entry, err := svc.CalculateLabourCost(context.Background(), event.ID, 1)
	require.NoError(t, err)
	require.InDelta(t, 3.0, entry.HoursWorked, 0.001)
}

func TestCalculateLabourCostRequiresTimes(t *testing.T) {
	svc, env := newEventService(t)

	event := env.mustCreateEvent(t, domain.Event{Name: "Untimed", Date: "2026-09-04"})

	_, err := svc.CalculateLabourCost(context.Background(), event.ID, 1)
	require.ErrorIs(t, err, ErrMissingTimes)

	_, err = svc.CalculateLabourCost(context.Background(), 9999, 1)
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestRecalculateFinancials(t *testing.T) {
	svc, env := newEventService(t)
	ctx := context.Background()

	event := env.mustCreateEvent(t, domain.Event{Name: "Money", Date: "2026-09-12"})

	tier, err := env.events.AddTicketTier(ctx, domain.TicketTier{
		ParentID: event.ID, Name: "Standard", Price: 10, QuantityAvailable: 20,
	})
	require.NoError(t, err)

	_, err = env.events.RecordTierSale(ctx, tier.ID, 5)
	require.NoError(t, err)

	_, err = env.events.AddLabourEntry(ctx, domain.LabourEntry{
		EventID: event.ID, HoursWorked: 2, HourlyRate: 10, StaffCount: 1,
	})
	require.NoError(t, err)

	_, err = env.events.AddPrizeItem(ctx, domain.PrizeItem{
		ParentID: event.ID, Description: "Boosters", Kind: domain.KindPrize,
		QuantityPerPlayer: 2, Recipients: 8, CostPerItem: 1.5,
	})
	require.NoError(t, err)

	_, err = env.events.AddCostEntry(ctx, domain.CostEntry{
		EventID: event.ID, Description: "Flyers", Amount: 6,
	})
	require.NoError(t, err)

	// Qualitative scores recorded beforehand survive the recalculation.
	_, err = env.events.SaveAnalysis(ctx, domain.EventAnalysis{
		EventID: event.ID, AttendeeSatisfaction: 8, EventSmoothness: 7,
	})
	require.NoError(t, err)

	analysis, err := svc.RecalculateFinancials(ctx, event.ID)
	require.NoError(t, err)
	require.InDelta(t, 50.0, analysis.RevenueTotal, 0.001) // 5 x 10
	require.InDelta(t, 50.0, analysis.CostTotal, 0.001)    // 20 labour + 24 prizes + 6 ledger
	require.InDelta(t, 0.0, analysis.ProfitMargin, 0.001)
	require.InDelta(t, 15.0, analysis.OverallSuccessScore, 0.001)
}

func TestCancelEvent(t *testing.T) {
	svc, env := newEventService(t)
	ctx := context.Background()

	event := env.mustCreateEvent(t, domain.Event{Name: "Rained off", Date: "2026-09-13"})

	cancelled, err := svc.CancelEvent(ctx, event.ID, "2026-09-10", "venue flooded")
	require.NoError(t, err)
	require.True(t, cancelled.IsCancelled)
	require.Equal(t, "2026-09-10", *cancelled.CancellationDate)
	require.Equal(t, "venue flooded", cancelled.CancellationReason)
	require.False(t, cancelled.ActiveOnSchedule())
}

func TestSplitPlayerList(t *testing.T) {
	names := SplitPlayerList("Alice\n\n  Bob  \nCarol\n")
	require.Equal(t, []string{"Alice", "Bob", "Carol"}, names)

	require.Empty(t, SplitPlayerList("\n  \n"))
}
