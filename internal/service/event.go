package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository"
)

var (
	ErrEventNotFound    = repository.ErrEventNotFound
	ErrAnalysisNotFound = repository.ErrAnalysisNotFound

	ErrMissingTimes = errors.New("event has no start or end time")
)

type EventStore interface {
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetTicketTiers(ctx context.Context, eventID uint) ([]domain.TicketTier, error)
	GetPrizeItems(ctx context.Context, eventID uint) ([]domain.PrizeItem, error)
	GetLabourEntries(ctx context.Context, eventID uint) ([]domain.LabourEntry, error)
	GetCostEntries(ctx context.Context, eventID uint) ([]domain.CostEntry, error)
	UpsertLabourEntry(ctx context.Context, entry domain.LabourEntry) (domain.LabourEntry, error)
	GetAnalysis(ctx context.Context, eventID uint) (domain.EventAnalysis, error)
	SaveAnalysis(ctx context.Context, analysis domain.EventAnalysis) (domain.EventAnalysis, error)
}

type SettingsStore interface {
	GetFloat(ctx context.Context, key string, fallback float64) float64
	GetInt(ctx context.Context, key string, fallback int) int
}

type CalendarStore interface {
	GetCalendarEntriesForMonth(ctx context.Context, month string) ([]domain.CalendarEntry, error)
}

type EventService struct {
	events   EventStore
	settings SettingsStore
	calendar CalendarStore
}

func NewEventService(events EventStore, settings SettingsStore, calendar CalendarStore) *EventService {
	return &EventService{
		events:   events,
		settings: settings,
		calendar: calendar,
	}
}

// CancelEvent marks the event cancelled as of the given date, keeping it in
// the store for cancellation-rate reporting.
func (s *EventService) CancelEvent(ctx context.Context, id uint, date, reason string) (domain.Event, error) {
	event, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.GetEvent -> %w", err)
	}

	event.IsCancelled = true
	event.CancellationDate = &date
	event.CancellationReason = reason

	updated, err := s.events.UpdateEvent(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.UpdateEvent -> %w", err)
	}

	return updated, nil
}

// CalculateLabourCost derives a labour entry from the event's time window and
// the configured hourly rates, then upserts it as the event's single
// calculated entry. The rate follows the event's date: public holidays first,
// then Sunday and Saturday, with the after-6pm weekday rate as the default.
func (s *EventService) CalculateLabourCost(ctx context.Context, eventID uint, staffCount int) (domain.LabourEntry, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return domain.LabourEntry{}, fmt.Errorf("s.events.GetEvent -> %w", err)
	}

	if !event.Scheduled() {
		return domain.LabourEntry{}, ErrMissingTimes
	}

	minutes, err := domain.WindowMinutes(*event.StartTime, *event.EndTime)
	if err != nil {
		return domain.LabourEntry{}, err
	}

	rateType, rate, err := s.rateForDate(ctx, event.Date)
	if err != nil {
		return domain.LabourEntry{}, err
	}

	entry := domain.LabourEntry{
		EventID:     eventID,
		HoursWorked: minutes / 60,
		RateType:    rateType,
		HourlyRate:  rate,
		WorkStatus:  domain.WorkFull,
		StaffCount:  staffCount,
	}

	saved, err := s.events.UpsertLabourEntry(ctx, entry)
	if err != nil {
		return domain.LabourEntry{}, fmt.Errorf("s.events.UpsertLabourEntry -> %w", err)
	}

	return saved, nil
}

func (s *EventService) rateForDate(ctx context.Context, date string) (domain.RateType, float64, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return "", 0, err
	}

	holiday, err := s.isPublicHoliday(ctx, date)
	if err != nil {
		return "", 0, err
	}

	switch {
	case holiday:
		return domain.RatePublicHoliday, s.settings.GetFloat(ctx, domain.SettingPublicHolidayRate, 50), nil
	case day.Weekday() == time.Sunday:
		return domain.RateSunday, s.settings.GetFloat(ctx, domain.SettingSundayRate, 35), nil
	case day.Weekday() == time.Saturday:
		return domain.RateSaturday, s.settings.GetFloat(ctx, domain.SettingSaturdayRate, 30), nil
	default:
		return domain.RateWeekdayAfter6pm, s.settings.GetFloat(ctx, domain.SettingWeekdayAfter6pmRate, 28), nil
	}
}

func (s *EventService) isPublicHoliday(ctx context.Context, date string) (bool, error) {
	if s.calendar == nil || len(date) < 7 {
		return false, nil
	}

	entries, err := s.calendar.GetCalendarEntriesForMonth(ctx, date[:7])
	if err != nil {
		return false, fmt.Errorf("s.calendar.GetCalendarEntriesForMonth -> %w", err)
	}

	for _, entry := range entries {
		if entry.Date == date && entry.Kind == domain.CalendarPublicHoliday {
			return true, nil
		}
	}

	return false, nil
}

// RecalculateFinancials re-derives the analysis revenue and cost totals from
// the ticket tiers, labour entries, prize items and cost ledger, preserving
// any qualitative scores already recorded.
func (s *EventService) RecalculateFinancials(ctx context.Context, eventID uint) (domain.EventAnalysis, error) {
	tiers, err := s.events.GetTicketTiers(ctx, eventID)
	if err != nil {
		return domain.EventAnalysis{}, fmt.Errorf("s.events.GetTicketTiers -> %w", err)
	}

	var revenue float64
	for i := range tiers {
		revenue += tiers[i].Revenue()
	}

	labour, err := s.events.GetLabourEntries(ctx, eventID)
	if err != nil {
		return domain.EventAnalysis{}, fmt.Errorf("s.events.GetLabourEntries -> %w", err)
	}

	prizes, err := s.events.GetPrizeItems(ctx, eventID)
	if err != nil {
		return domain.EventAnalysis{}, fmt.Errorf("s.events.GetPrizeItems -> %w", err)
	}

	costs, err := s.events.GetCostEntries(ctx, eventID)
	if err != nil {
		return domain.EventAnalysis{}, fmt.Errorf("s.events.GetCostEntries -> %w", err)
	}

	var cost float64
	for _, l := range labour {
		cost += l.TotalCost
	}
	for _, p := range prizes {
		cost += p.TotalCost
	}
	for _, c := range costs {
		cost += c.Amount
	}

	analysis, err := s.events.GetAnalysis(ctx, eventID)
	if err != nil {
		if !errors.Is(err, ErrAnalysisNotFound) {
			return domain.EventAnalysis{}, fmt.Errorf("s.events.GetAnalysis -> %w", err)
		}

		analysis = domain.EventAnalysis{EventID: eventID}
	}

	analysis.RevenueTotal = revenue
	analysis.CostTotal = cost

	saved, err := s.events.SaveAnalysis(ctx, analysis)
	if err != nil {
		return domain.EventAnalysis{}, fmt.Errorf("s.events.SaveAnalysis -> %w", err)
	}

	return saved, nil
}

// SplitPlayerList splits a pasted roster into one player name per line,
// ignoring blank lines.
func SplitPlayerList(raw string) []string {
	var names []string
	for _, line := range strings.Split(raw, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}

	return names
}
