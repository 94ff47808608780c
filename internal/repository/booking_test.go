package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

func newBookingRepo(t *testing.T) *BookingRepository {
	t.Helper()

	return NewBookingRepository(dao.NewBookingDAO(openStore(t)))
}

func TestBookingValidation(t *testing.T) {
	repo := newBookingRepo(t)
	ctx := context.Background()

	_, err := repo.CreateBooking(ctx, domain.StandaloneBooking{Date: "2026-09-05", TablesBooked: 2})
	require.Error(t, err) // name required

	_, err = repo.CreateBooking(ctx, domain.StandaloneBooking{Name: "Club", Date: "05/09/2026", TablesBooked: 2})
	require.Error(t, err) // date format

	_, err = repo.CreateBooking(ctx, domain.StandaloneBooking{Name: "Club", Date: "2026-09-05"})
	require.Error(t, err) // needs at least one table

	start := "14:00"
	_, err = repo.CreateBooking(ctx, domain.StandaloneBooking{
		Name: "Club", Date: "2026-09-05", TablesBooked: 2, StartTime: &start,
	})
	require.ErrorIs(t, err, domain.ErrHalfOpenWindow)
}

func TestBookingTimesAreNormalized(t *testing.T) {
	repo := newBookingRepo(t)
	ctx := context.Background()

	start, end := "14:00", "17:30"
	created, err := repo.CreateBooking(ctx, domain.StandaloneBooking{
		Name: "Warhammer Club", Date: "2026-09-05", TablesBooked: 3,
		StartTime: &start, EndTime: &end,
	})
	require.NoError(t, err)
	require.Equal(t, "14:00:00", *created.StartTime)
	require.Equal(t, "17:30:00", *created.EndTime)
}

func TestBookingTrashRoundTrip(t *testing.T) {
	repo := newBookingRepo(t)
	ctx := context.Background()

	booking, err := repo.CreateBooking(ctx, domain.StandaloneBooking{
		Name: "Birthday party", Date: "2026-09-06", TablesBooked: 4,
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBooking(ctx, booking.ID))

	active, err := repo.GetAllBookings(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	binned, err := repo.GetDeletedBookings(ctx)
	require.NoError(t, err)
	require.Len(t, binned, 1)

	require.NoError(t, repo.RestoreBooking(ctx, booking.ID))

	active, err = repo.GetAllBookings(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, repo.DeleteBooking(ctx, booking.ID))
	require.NoError(t, repo.PermanentlyDeleteBooking(ctx, booking.ID))

	_, err = repo.GetBooking(ctx, booking.ID)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestEffectiveHoursResolution(t *testing.T) {
	repo := newBookingRepo(t)
	ctx := context.Background()

	// Seeded weekday default.
	hours, err := repo.EffectiveHours(ctx, "2026-09-07") // a Monday
	require.NoError(t, err)
	require.True(t, hours.IsOpen)
	require.Equal(t, "10:00", hours.OpenTime)
	require.Equal(t, "22:00", hours.CloseTime)

	// Weekday default edited for Mondays.
	open, close := "12:00", "20:00"
	_, err = repo.SaveOperatingHours(ctx, domain.OperatingHours{
		DayOfWeek: 1, IsOpen: true, OpenTime: &open, CloseTime: &close,
	})
	require.NoError(t, err)

	hours, err = repo.EffectiveHours(ctx, "2026-09-07")
	require.NoError(t, err)
	require.Equal(t, "12:00", hours.OpenTime)

	// A per-date override wins over the weekday default.
	_, err = repo.SaveDateSpecificHours(ctx, domain.DateSpecificHours{
		Date: "2026-09-07", IsOpen: false, Reason: "Stocktake",
	})
	require.NoError(t, err)

	hours, err = repo.EffectiveHours(ctx, "2026-09-07")
	require.NoError(t, err)
	require.False(t, hours.IsOpen)
	require.Equal(t, "Stocktake", hours.Reason)

	// Clearing the override falls back to the weekday default.
	require.NoError(t, repo.ClearDateSpecificHours(ctx, "2026-09-07"))

	hours, err = repo.EffectiveHours(ctx, "2026-09-07")
	require.NoError(t, err)
	require.True(t, hours.IsOpen)
	require.Equal(t, "12:00", hours.OpenTime)
}

func TestClosedDayRejectsTimes(t *testing.T) {
	repo := newBookingRepo(t)

	open := "10:00"
	_, err := repo.SaveDateSpecificHours(context.Background(), domain.DateSpecificHours{
		Date: "2026-09-08", IsOpen: false, OpenTime: &open,
	})
	require.ErrorIs(t, err, domain.ErrClosedHasTimes)
}

func TestCapacityOverrideLifecycle(t *testing.T) {
	repo := newBookingRepo(t)
	ctx := context.Background()

	override, err := repo.GetCapacityOverride(ctx, "2026-09-09")
	require.NoError(t, err)
	require.Nil(t, override)

	_, err = repo.SetCapacityOverride(ctx, domain.CapacityOverride{Date: "2026-09-09", TotalTables: 16})
	require.NoError(t, err)

	override, err = repo.GetCapacityOverride(ctx, "2026-09-09")
	require.NoError(t, err)
	require.NotNil(t, override)
	require.Equal(t, 16, override.TotalTables)

	// Setting the same date again replaces rather than stacks.
	_, err = repo.SetCapacityOverride(ctx, domain.CapacityOverride{Date: "2026-09-09", TotalTables: 12})
	require.NoError(t, err)

	override, err = repo.GetCapacityOverride(ctx, "2026-09-09")
	require.NoError(t, err)
	require.Equal(t, 12, override.TotalTables)

	require.NoError(t, repo.ClearCapacityOverride(ctx, "2026-09-09"))

	override, err = repo.GetCapacityOverride(ctx, "2026-09-09")
	require.NoError(t, err)
	require.Nil(t, override)
}

func TestCalendarEntriesByMonth(t *testing.T) {
	repo := newBookingRepo(t)
	ctx := context.Background()

	_, err := repo.AddCalendarEntry(ctx, domain.CalendarEntry{
		Date: "2026-12-25", Title: "Christmas Day", Kind: domain.CalendarPublicHoliday,
	})
	require.NoError(t, err)

	_, err = repo.AddCalendarEntry(ctx, domain.CalendarEntry{
		Date: "2026-12-31", Title: "NYE party", Kind: domain.CalendarMiscellaneous,
	})
	require.NoError(t, err)

	_, err = repo.AddCalendarEntry(ctx, domain.CalendarEntry{
		Date: "2027-01-01", Title: "New Year's Day", Kind: domain.CalendarPublicHoliday,
	})
	require.NoError(t, err)

	december, err := repo.GetCalendarEntriesForMonth(ctx, "2026-12")
	require.NoError(t, err)
	require.Len(t, december, 2)

	_, err = repo.AddCalendarEntry(ctx, domain.CalendarEntry{
		Date: "2026-12-26", Title: "Boxing Day", Kind: "weird",
	})
	require.Error(t, err)
}
