package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"venuedesk/internal/domain"
)

func newScheduler(t *testing.T) (*SchedulingModel, *testEnv) {
	t.Helper()
	env := newTestEnv(t)

	return NewSchedulingModel(env.events, env.bookings, env.settings), env
}

func TestDaySchedule(t *testing.T) {
	svc, env := newScheduler(t)
	ctx := context.Background()
	date := "2026-09-05"

	first := env.mustCreateEvent(t, domain.Event{
		Name: "Draft", Date: date,
		StartTime: timePtr("18:00:00"), EndTime: timePtr("20:00:00"), TablesBooked: 3,
	})
	second := env.mustCreateEvent(t, domain.Event{
		Name: "Commander", Date: date,
		StartTime: timePtr("19:30:00"), EndTime: timePtr("21:00:00"), TablesBooked: 5,
	})
	// Touching windows do not conflict.
	late := env.mustCreateEvent(t, domain.Event{
		Name: "Late casual", Date: date,
		StartTime: timePtr("21:00:00"), EndTime: timePtr("22:00:00"), TablesBooked: 1,
	})
	env.mustCreateEvent(t, domain.Event{
		Name: "Sometime", Date: date, TablesBooked: 2,
	})

	cancelled := env.mustCreateEvent(t, domain.Event{
		Name: "Cancelled", Date: date,
		StartTime: timePtr("18:00:00"), EndTime: timePtr("22:00:00"), TablesBooked: 5,
	})
	cancelled.IsCancelled = true
	_, err := env.events.UpdateEvent(ctx, cancelled)
	require.NoError(t, err)

	start, end := "14:00", "16:00"
	_, err = env.bookings.CreateBooking(ctx, domain.StandaloneBooking{
		Name: "Club booking", Date: date, TablesBooked: 2,
		StartTime: &start, EndTime: &end,
	})
	require.NoError(t, err)

	day, err := svc.DaySchedule(ctx, date)
	require.NoError(t, err)

	require.Len(t, day.Scheduled, 4) // booking + three timed events
	require.Len(t, day.Unscheduled, 1)
	require.Equal(t, domain.ItemBooking, day.Scheduled[0].Type) // earliest start first
	require.Equal(t, first.Name, day.Scheduled[1].Name)

	require.Equal(t, []uint{first.ID, second.ID}, day.ConflictingEventIDs)
	require.NotContains(t, day.ConflictingEventIDs, late.ID)

	require.Equal(t, 10, day.EffectiveCapacity) // seeded default
	require.Equal(t, 11, day.ScheduledTables)   // 3 + 5 + 1 + 2
	require.Equal(t, 2, day.UnscheduledTables)
	require.True(t, day.OverBooked)

	require.True(t, day.Hours.IsOpen)
	require.Equal(t, "10:00", day.Hours.OpenTime)

	// A capacity override absorbs the extra tables.
	_, err = env.bookings.SetCapacityOverride(ctx, domain.CapacityOverride{Date: date, TotalTables: 16})
	require.NoError(t, err)

	day, err = svc.DaySchedule(ctx, date)
	require.NoError(t, err)
	require.Equal(t, 16, day.EffectiveCapacity)
	require.False(t, day.OverBooked)
}

func TestFindTimeConflicts(t *testing.T) {
	svc, env := newScheduler(t)
	ctx := context.Background()
	date := "2026-09-11"

	existing := env.mustCreateEvent(t, domain.Event{
		Name: "Existing", Date: date,
		StartTime: timePtr("18:00:00"), EndTime: timePtr("20:00:00"),
	})

	conflicts, err := svc.FindTimeConflicts(ctx, date, "19:30", "21:00", 0)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	require.Equal(t, existing.ID, conflicts[0].ID)

	conflicts, err = svc.FindTimeConflicts(ctx, date, "20:00", "22:00", 0)
	require.NoError(t, err)
	require.Empty(t, conflicts)

	// An event never conflicts with itself while being edited.
	conflicts, err = svc.FindTimeConflicts(ctx, date, "18:30", "19:30", existing.ID)
	require.NoError(t, err)
	require.Empty(t, conflicts)

	_, err = svc.FindTimeConflicts(ctx, date, "not-a-time", "20:00", 0)
	require.Error(t, err)
}

func TestWeekOverviewStartsOnMonday(t *testing.T) {
	svc, env := newScheduler(t)
	ctx := context.Background()

	env.mustCreateEvent(t, domain.Event{
		Name: "Saturday draft", Date: "2026-09-05",
		StartTime: timePtr("18:00:00"), EndTime: timePtr("22:00:00"), TablesBooked: 4,
	})

	// Any date in the week resolves to the same Monday-anchored view.
	week, err := svc.WeekOverview(ctx, "2026-09-02") // a Wednesday
	require.NoError(t, err)
	require.Len(t, week, 7)
	require.Equal(t, "2026-08-31", week[0].Date)
	require.Equal(t, "2026-09-06", week[6].Date)

	require.Equal(t, 1, week[5].EventCount) // Saturday
	require.Equal(t, 4, week[5].ScheduledTables)
	require.Equal(t, 0, week[0].EventCount)
}

func TestUpcomingWeekDates(t *testing.T) {
	now, err := time.Parse(domain.DateLayout, "2026-08-31")
	require.NoError(t, err)

	dates := UpcomingWeekDates(now)
	require.Len(t, dates, 7)
	require.Equal(t, "2026-08-31", dates[0])
	require.Equal(t, "2026-09-06", dates[6])
}
