package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"venuedesk/internal/domain"
)

type ScheduleEventStore interface {
	GetEventsByDate(ctx context.Context, date string) ([]domain.Event, error)
}

type ScheduleVenueStore interface {
	GetBookingsByDate(ctx context.Context, date string) ([]domain.StandaloneBooking, error)
	EffectiveHours(ctx context.Context, date string) (domain.EffectiveHours, error)
	GetCapacityOverride(ctx context.Context, date string) (*domain.CapacityOverride, error)
}

const defaultTotalTables = 10

// SchedulingModel assembles day and week views over events and standalone
// bookings. Cancelled and binned events never appear; events overlapping in
// time are flagged while bookings are treated as soft reservations.
type SchedulingModel struct {
	events   ScheduleEventStore
	venue    ScheduleVenueStore
	settings SettingsStore
}

func NewSchedulingModel(events ScheduleEventStore, venue ScheduleVenueStore, settings SettingsStore) *SchedulingModel {
	return &SchedulingModel{
		events:   events,
		venue:    venue,
		settings: settings,
	}
}

// DaySchedule resolves one date: effective hours, capacity, the scheduled and
// unscheduled items, event time conflicts and the over-booked flag.
func (s *SchedulingModel) DaySchedule(ctx context.Context, date string) (domain.DaySchedule, error) {
	hours, err := s.venue.EffectiveHours(ctx, date)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("s.venue.EffectiveHours -> %w", err)
	}

	events, err := s.activeEventsOn(ctx, date)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	bookings, err := s.venue.GetBookingsByDate(ctx, date)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("s.venue.GetBookingsByDate -> %w", err)
	}

	day := domain.DaySchedule{
		Date:  date,
		Hours: hours,
	}

	for i := range events {
		day.AddItem(domain.ScheduleItem{
			Type:         domain.ItemEvent,
			ID:           events[i].ID,
			Name:         events[i].Name,
			StartTime:    events[i].StartTime,
			EndTime:      events[i].EndTime,
			TablesBooked: events[i].TablesBooked,
		})
	}

	for i := range bookings {
		day.AddItem(domain.ScheduleItem{
			Type:         domain.ItemBooking,
			ID:           bookings[i].ID,
			Name:         bookings[i].Name,
			StartTime:    bookings[i].StartTime,
			EndTime:      bookings[i].EndTime,
			TablesBooked: bookings[i].TablesBooked,
		})
	}

	sort.SliceStable(day.Scheduled, func(i, j int) bool {
		return *day.Scheduled[i].StartTime < *day.Scheduled[j].StartTime
	})

	day.ConflictingEventIDs = findEventConflicts(day.Scheduled)

	capacity, err := s.effectiveCapacity(ctx, date)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	day.EffectiveCapacity = capacity
	day.OverBooked = day.ScheduledTables > capacity

	return day, nil
}

// WeekOverview builds seven day columns for the week containing the given
// date, starting on Monday.
func (s *SchedulingModel) WeekOverview(ctx context.Context, date string) ([]domain.WeekDay, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}

	offset := (int(day.Weekday()) + 6) % 7 // days back to Monday
	monday := day.AddDate(0, 0, -offset)

	week := make([]domain.WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		current := monday.AddDate(0, 0, i).Format(domain.DateLayout)

		schedule, err := s.DaySchedule(ctx, current)
		if err != nil {
			return nil, err
		}

		eventCount := 0
		for _, item := range schedule.Scheduled {
			if item.Type == domain.ItemEvent {
				eventCount++
			}
		}
		for _, item := range schedule.Unscheduled {
			if item.Type == domain.ItemEvent {
				eventCount++
			}
		}

		week = append(week, domain.WeekDay{
			Date:              current,
			ScheduledTables:   schedule.ScheduledTables,
			UnscheduledTables: schedule.UnscheduledTables,
			EffectiveCapacity: schedule.EffectiveCapacity,
			EventCount:        eventCount,
		})
	}

	return week, nil
}

// FindTimeConflicts returns the events on a date whose window overlaps the
// proposed one, skipping excludeEventID so an event being edited does not
// conflict with itself. Pass zero to check all events.
func (s *SchedulingModel) FindTimeConflicts(ctx context.Context, date, start, end string, excludeEventID uint) ([]domain.Event, error) {
	proposedStart, err := domain.ParseTimeOfDay(start)
	if err != nil {
		return nil, err
	}

	proposedEnd, err := domain.ParseTimeOfDay(end)
	if err != nil {
		return nil, err
	}

	events, err := s.activeEventsOn(ctx, date)
	if err != nil {
		return nil, err
	}

	var conflicts []domain.Event
	for _, event := range events {
		if event.ID == excludeEventID || !event.Scheduled() {
			continue
		}

		eventStart, err := domain.ParseTimeOfDay(*event.StartTime)
		if err != nil {
			continue
		}

		eventEnd, err := domain.ParseTimeOfDay(*event.EndTime)
		if err != nil {
			continue
		}

		if windowsOverlap(proposedStart, proposedEnd, eventStart, eventEnd) {
			conflicts = append(conflicts, event)
		}
	}

	return conflicts, nil
}

func (s *SchedulingModel) activeEventsOn(ctx context.Context, date string) ([]domain.Event, error) {
	events, err := s.events.GetEventsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("s.events.GetEventsByDate -> %w", err)
	}

	active := events[:0]
	for i := range events {
		if events[i].ActiveOnSchedule() {
			active = append(active, events[i])
		}
	}

	return active, nil
}

func (s *SchedulingModel) effectiveCapacity(ctx context.Context, date string) (int, error) {
	override, err := s.venue.GetCapacityOverride(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("s.venue.GetCapacityOverride -> %w", err)
	}

	if override != nil {
		return override.TotalTables, nil
	}

	return s.settings.GetInt(ctx, domain.SettingTotalTables, defaultTotalTables), nil
}

// findEventConflicts flags every event in the scheduled list whose window
// overlaps another event's. Touching windows (one ends as the other starts)
// do not conflict.
func findEventConflicts(scheduled []domain.ScheduleItem) []uint {
	type window struct {
		id         uint
		start, end int
	}

	var windows []window
	for _, item := range scheduled {
		if item.Type != domain.ItemEvent {
			continue
		}

		start, err := domain.ParseTimeOfDay(*item.StartTime)
		if err != nil {
			continue
		}

		end, err := domain.ParseTimeOfDay(*item.EndTime)
		if err != nil {
			continue
		}

		windows = append(windows, window{id: item.ID, start: start, end: end})
	}

	conflicting := make(map[uint]bool)
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			if windowsOverlap(windows[i].start, windows[i].end, windows[j].start, windows[j].end) {
				conflicting[windows[i].id] = true
				conflicting[windows[j].id] = true
			}
		}
	}

	if len(conflicting) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(conflicting))
	for id := range conflicting {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func windowsOverlap(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}

// UpcomingWeekDates is a small helper for the dashboard: today plus the next
// six days.
func UpcomingWeekDates(now time.Time) []string {
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = now.AddDate(0, 0, i).Format(domain.DateLayout)
	}

	return dates
}
