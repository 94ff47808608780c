package repository

import (
	"context"
	"fmt"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

var (
	ErrBookingNotFound       = dao.ErrBookingNotFound
	ErrCalendarEntryNotFound = dao.ErrCalendarEntryNotFound
)

type BookingDAO interface {
	Insert(ctx context.Context, booking dao.StandaloneBooking) (dao.StandaloneBooking, error)
	Update(ctx context.Context, booking dao.StandaloneBooking) (dao.StandaloneBooking, error)
	FindByID(ctx context.Context, id uint) (dao.StandaloneBooking, error)
	FindAll(ctx context.Context) ([]dao.StandaloneBooking, error)
	FindByDate(ctx context.Context, date string) ([]dao.StandaloneBooking, error)
	FindDeleted(ctx context.Context) ([]dao.StandaloneBooking, error)
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	PermanentlyDelete(ctx context.Context, id uint) error

	FindHoursForWeekday(ctx context.Context, dayOfWeek int) (dao.OperatingHours, bool, error)
	FindAllHours(ctx context.Context) ([]dao.OperatingHours, error)
	SaveHours(ctx context.Context, hours dao.OperatingHours) (dao.OperatingHours, error)
	FindHoursForDate(ctx context.Context, date string) (dao.DateSpecificHours, bool, error)
	SaveDateHours(ctx context.Context, hours dao.DateSpecificHours) (dao.DateSpecificHours, error)
	DeleteDateHours(ctx context.Context, date string) error

	FindCapacityOverride(ctx context.Context, date string) (dao.CapacityOverride, bool, error)
	SaveCapacityOverride(ctx context.Context, override dao.CapacityOverride) (dao.CapacityOverride, error)
	DeleteCapacityOverride(ctx context.Context, date string) error

	InsertCalendarEntry(ctx context.Context, entry dao.CalendarEntry) (dao.CalendarEntry, error)
	UpdateCalendarEntry(ctx context.Context, entry dao.CalendarEntry) (dao.CalendarEntry, error)
	DeleteCalendarEntry(ctx context.Context, id uint) error
	FindCalendarEntriesForMonth(ctx context.Context, month string) ([]dao.CalendarEntry, error)
}

type BookingRepository struct {
	dao BookingDAO
}

func NewBookingRepository(dao BookingDAO) *BookingRepository {
	return &BookingRepository{
		dao: dao,
	}
}

func bookingDomainToDao(b domain.StandaloneBooking) dao.StandaloneBooking {
	return dao.StandaloneBooking{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		TablesBooked: b.TablesBooked,
		Notes:        b.Notes,
		IsDeleted:    b.IsDeleted,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func bookingDaoToDomain(b dao.StandaloneBooking) domain.StandaloneBooking {
	return domain.StandaloneBooking{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		TablesBooked: b.TablesBooked,
		Notes:        b.Notes,
		IsDeleted:    b.IsDeleted,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func bookingsDaoToDomain(bookings []dao.StandaloneBooking) []domain.StandaloneBooking {
	out := make([]domain.StandaloneBooking, len(bookings))
	for i, b := range bookings {
		out[i] = bookingDaoToDomain(b)
	}

	return out
}

// normalizeBookingTimes rewrites HH:MM input to the persisted HH:MM:SS form.
func normalizeBookingTimes(b *domain.StandaloneBooking) error {
	for _, t := range []**string{&b.StartTime, &b.EndTime} {
		if *t == nil {
			continue
		}

		normalized, err := domain.NormalizeTimeOfDay(**t)
		if err != nil {
			return err
		}
		*t = &normalized
	}

	return nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking domain.StandaloneBooking) (domain.StandaloneBooking, error) {
	if err := booking.Validate(); err != nil {
		return domain.StandaloneBooking{}, err
	}
	if err := normalizeBookingTimes(&booking); err != nil {
		return domain.StandaloneBooking{}, err
	}

	created, err := r.dao.Insert(ctx, bookingDomainToDao(booking))
	if err != nil {
		return domain.StandaloneBooking{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return bookingDaoToDomain(created), nil
}

func (r *BookingRepository) UpdateBooking(ctx context.Context, booking domain.StandaloneBooking) (domain.StandaloneBooking, error) {
	if err := booking.Validate(); err != nil {
		return domain.StandaloneBooking{}, err
	}
	if err := normalizeBookingTimes(&booking); err != nil {
		return domain.StandaloneBooking{}, err
	}

	updated, err := r.dao.Update(ctx, bookingDomainToDao(booking))
	if err != nil {
		return domain.StandaloneBooking{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return bookingDaoToDomain(updated), nil
}

func (r *BookingRepository) GetBooking(ctx context.Context, id uint) (domain.StandaloneBooking, error) {
	booking, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.StandaloneBooking{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return bookingDaoToDomain(booking), nil
}

func (r *BookingRepository) GetAllBookings(ctx context.Context) ([]domain.StandaloneBooking, error) {
	bookings, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return bookingsDaoToDomain(bookings), nil
}

func (r *BookingRepository) GetBookingsByDate(ctx context.Context, date string) ([]domain.StandaloneBooking, error) {
	bookings, err := r.dao.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByDate -> %w", err)
	}

	return bookingsDaoToDomain(bookings), nil
}

func (r *BookingRepository) GetDeletedBookings(ctx context.Context) ([]domain.StandaloneBooking, error) {
	bookings, err := r.dao.FindDeleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDeleted -> %w", err)
	}

	return bookingsDaoToDomain(bookings), nil
}

func (r *BookingRepository) DeleteBooking(ctx context.Context, id uint) error {
	if err := r.dao.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.SoftDelete -> %w", err)
	}

	return nil
}

func (r *BookingRepository) RestoreBooking(ctx context.Context, id uint) error {
	if err := r.dao.Restore(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Restore -> %w", err)
	}

	return nil
}

func (r *BookingRepository) PermanentlyDeleteBooking(ctx context.Context, id uint) error {
	if err := r.dao.PermanentlyDelete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.PermanentlyDelete -> %w", err)
	}

	return nil
}

// Operating hours.

func hoursDaoToDomain(h dao.OperatingHours) domain.OperatingHours {
	return domain.OperatingHours{
		ID:        h.ID,
		DayOfWeek: h.DayOfWeek,
		IsOpen:    h.IsOpen,
		OpenTime:  h.OpenTime,
		CloseTime: h.CloseTime,
	}
}

func (r *BookingRepository) GetOperatingHours(ctx context.Context) ([]domain.OperatingHours, error) {
	hours, err := r.dao.FindAllHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllHours -> %w", err)
	}

	out := make([]domain.OperatingHours, len(hours))
	for i, h := range hours {
		out[i] = hoursDaoToDomain(h)
	}

	return out, nil
}

func (r *BookingRepository) SaveOperatingHours(ctx context.Context, hours domain.OperatingHours) (domain.OperatingHours, error) {
	if err := hours.Validate(); err != nil {
		return domain.OperatingHours{}, err
	}

	saved, err := r.dao.SaveHours(ctx, dao.OperatingHours{
		DayOfWeek: hours.DayOfWeek,
		IsOpen:    hours.IsOpen,
		OpenTime:  hours.OpenTime,
		CloseTime: hours.CloseTime,
	})
	if err != nil {
		return domain.OperatingHours{}, fmt.Errorf("r.dao.SaveHours -> %w", err)
	}

	return hoursDaoToDomain(saved), nil
}

func (r *BookingRepository) SaveDateSpecificHours(ctx context.Context, hours domain.DateSpecificHours) (domain.DateSpecificHours, error) {
	if err := hours.Validate(); err != nil {
		return domain.DateSpecificHours{}, err
	}

	saved, err := r.dao.SaveDateHours(ctx, dao.DateSpecificHours{
		Date:      hours.Date,
		IsOpen:    hours.IsOpen,
		OpenTime:  hours.OpenTime,
		CloseTime: hours.CloseTime,
		Reason:    hours.Reason,
	})
	if err != nil {
		return domain.DateSpecificHours{}, fmt.Errorf("r.dao.SaveDateHours -> %w", err)
	}

	return domain.DateSpecificHours{
		ID:        saved.ID,
		Date:      saved.Date,
		IsOpen:    saved.IsOpen,
		OpenTime:  saved.OpenTime,
		CloseTime: saved.CloseTime,
		Reason:    saved.Reason,
	}, nil
}

// ClearDateSpecificHours reverts a date to its weekday default.
func (r *BookingRepository) ClearDateSpecificHours(ctx context.Context, date string) error {
	if err := r.dao.DeleteDateHours(ctx, date); err != nil {
		return fmt.Errorf("r.dao.DeleteDateHours -> %w", err)
	}

	return nil
}

const (
	defaultOpenTime  = "10:00"
	defaultCloseTime = "22:00"
)

// EffectiveHours resolves a date's open/close window: per-date override
// first, weekday default second, a built-in 10:00-22:00 fallback last.
func (r *BookingRepository) EffectiveHours(ctx context.Context, date string) (domain.EffectiveHours, error) {
	override, found, err := r.dao.FindHoursForDate(ctx, date)
	if err != nil {
		return domain.EffectiveHours{}, fmt.Errorf("r.dao.FindHoursForDate -> %w", err)
	}
	if found {
		return domain.EffectiveHours{
			Date:      date,
			IsOpen:    override.IsOpen,
			OpenTime:  derefOr(override.OpenTime, ""),
			CloseTime: derefOr(override.CloseTime, ""),
			Reason:    override.Reason,
		}, nil
	}

	day, err := domain.ParseDate(date)
	if err != nil {
		return domain.EffectiveHours{}, err
	}

	hours, found, err := r.dao.FindHoursForWeekday(ctx, int(day.Weekday()))
	if err != nil {
		return domain.EffectiveHours{}, fmt.Errorf("r.dao.FindHoursForWeekday -> %w", err)
	}
	if found {
		return domain.EffectiveHours{
			Date:      date,
			IsOpen:    hours.IsOpen,
			OpenTime:  derefOr(hours.OpenTime, ""),
			CloseTime: derefOr(hours.CloseTime, ""),
		}, nil
	}

	return domain.EffectiveHours{
		Date:      date,
		IsOpen:    true,
		OpenTime:  defaultOpenTime,
		CloseTime: defaultCloseTime,
	}, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}

	return *s
}

// Capacity overrides.

func (r *BookingRepository) GetCapacityOverride(ctx context.Context, date string) (*domain.CapacityOverride, error) {
	override, found, err := r.dao.FindCapacityOverride(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCapacityOverride -> %w", err)
	}
	if !found {
		return nil, nil
	}

	return &domain.CapacityOverride{ID: override.ID, Date: override.Date, TotalTables: override.TotalTables}, nil
}

func (r *BookingRepository) SetCapacityOverride(ctx context.Context, override domain.CapacityOverride) (domain.CapacityOverride, error) {
	if err := override.Validate(); err != nil {
		return domain.CapacityOverride{}, err
	}

	saved, err := r.dao.SaveCapacityOverride(ctx, dao.CapacityOverride{
		Date:        override.Date,
		TotalTables: override.TotalTables,
	})
	if err != nil {
		return domain.CapacityOverride{}, fmt.Errorf("r.dao.SaveCapacityOverride -> %w", err)
	}

	return domain.CapacityOverride{ID: saved.ID, Date: saved.Date, TotalTables: saved.TotalTables}, nil
}

func (r *BookingRepository) ClearCapacityOverride(ctx context.Context, date string) error {
	if err := r.dao.DeleteCapacityOverride(ctx, date); err != nil {
		return fmt.Errorf("r.dao.DeleteCapacityOverride -> %w", err)
	}

	return nil
}

// Calendar entries.

func calendarDaoToDomain(e dao.CalendarEntry) domain.CalendarEntry {
	return domain.CalendarEntry{
		ID:          e.ID,
		Date:        e.Date,
		Title:       e.Title,
		Description: e.Description,
		Kind:        domain.CalendarEntryKind(e.Kind),
		Colour:      e.Colour,
	}
}

func (r *BookingRepository) AddCalendarEntry(ctx context.Context, entry domain.CalendarEntry) (domain.CalendarEntry, error) {
	if err := entry.Validate(); err != nil {
		return domain.CalendarEntry{}, err
	}

	created, err := r.dao.InsertCalendarEntry(ctx, dao.CalendarEntry{
		Date:        entry.Date,
		Title:       entry.Title,
		Description: entry.Description,
		Kind:        string(entry.Kind),
		Colour:      entry.Colour,
	})
	if err != nil {
		return domain.CalendarEntry{}, fmt.Errorf("r.dao.InsertCalendarEntry -> %w", err)
	}

	return calendarDaoToDomain(created), nil
}

func (r *BookingRepository) UpdateCalendarEntry(ctx context.Context, entry domain.CalendarEntry) (domain.CalendarEntry, error) {
	if err := entry.Validate(); err != nil {
		return domain.CalendarEntry{}, err
	}

	updated, err := r.dao.UpdateCalendarEntry(ctx, dao.CalendarEntry{
		ID:          entry.ID,
		Date:        entry.Date,
		Title:       entry.Title,
		Description: entry.Description,
		Kind:        string(entry.Kind),
		Colour:      entry.Colour,
	})
	if err != nil {
		return domain.CalendarEntry{}, fmt.Errorf("r.dao.UpdateCalendarEntry -> %w", err)
	}

	return calendarDaoToDomain(updated), nil
}

func (r *BookingRepository) DeleteCalendarEntry(ctx context.Context, id uint) error {
	if err := r.dao.DeleteCalendarEntry(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteCalendarEntry -> %w", err)
	}

	return nil
}

// GetCalendarEntriesForMonth returns the month's manual annotations; month is
// YYYY-MM.
func (r *BookingRepository) GetCalendarEntriesForMonth(ctx context.Context, month string) ([]domain.CalendarEntry, error) {
	entries, err := r.dao.FindCalendarEntriesForMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCalendarEntriesForMonth -> %w", err)
	}

	out := make([]domain.CalendarEntry, len(entries))
	for i, e := range entries {
		out[i] = calendarDaoToDomain(e)
	}

	return out, nil
}
