package repository

import (
	"context"
	"fmt"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

var (
	ErrEventNotFound    = dao.ErrEventNotFound
	ErrAnalysisNotFound = dao.ErrAnalysisNotFound
	ErrItemNotFound     = dao.ErrItemNotFound
	ErrTierNotFound     = dao.ErrTierNotFound
	ErrOversold         = dao.ErrOversold
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	InsertGraph(ctx context.Context, event dao.Event) (dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context, includeCompleted bool) ([]dao.Event, error)
	FindByDate(ctx context.Context, date string) ([]dao.Event, error)
	FindUpcoming(ctx context.Context, fromDate string, limit int) ([]dao.Event, error)
	FindDeleted(ctx context.Context) ([]dao.Event, error)
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	PermanentlyDelete(ctx context.Context, id uint) error
	FindDeletedIDs(ctx context.Context) ([]uint, error)
	CountByTemplate(ctx context.Context, templateID uint) (int64, error)
	FetchCompleted(ctx context.Context, cutoff string) ([]dao.Event, error)
	CountCancelled(ctx context.Context, cutoff string) (int64, error)

	InsertChecklistItem(ctx context.Context, item dao.EventChecklistItem) (dao.EventChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, item dao.EventChecklistItem) (dao.EventChecklistItem, error)
	DeleteChecklistItem(ctx context.Context, id uint) error
	FindChecklistItems(ctx context.Context, eventID uint) ([]dao.EventChecklistItem, error)
	MoveChecklistItem(ctx context.Context, id uint, up bool) error
	FindDashboardItems(ctx context.Context, fromDate string) ([]dao.DashboardItem, error)

	InsertTicketTier(ctx context.Context, tier dao.EventTicketTier) (dao.EventTicketTier, error)
	UpdateTicketTier(ctx context.Context, tier dao.EventTicketTier) (dao.EventTicketTier, error)
	DeleteTicketTier(ctx context.Context, id uint) error
	FindTicketTiers(ctx context.Context, eventID uint) ([]dao.EventTicketTier, error)
	RecordTierSale(ctx context.Context, tierID uint, quantity int) (dao.EventTicketTier, error)

	InsertPrizeItem(ctx context.Context, item dao.EventPrizeItem) (dao.EventPrizeItem, error)
	UpdatePrizeItem(ctx context.Context, item dao.EventPrizeItem) (dao.EventPrizeItem, error)
	DeletePrizeItem(ctx context.Context, id uint) error
	FindPrizeItems(ctx context.Context, eventID uint) ([]dao.EventPrizeItem, error)

	InsertNote(ctx context.Context, note dao.EventNote) (dao.EventNote, error)
	UpdateNote(ctx context.Context, note dao.EventNote) (dao.EventNote, error)
	DeleteNote(ctx context.Context, id uint) error
	FindNotes(ctx context.Context, eventID uint) ([]dao.EventNote, error)

	InsertLabourEntry(ctx context.Context, entry dao.LabourEntry) (dao.LabourEntry, error)
	UpdateLabourEntry(ctx context.Context, entry dao.LabourEntry) (dao.LabourEntry, error)
	DeleteLabourEntry(ctx context.Context, id uint) error
	FindLabourEntries(ctx context.Context, eventID uint) ([]dao.LabourEntry, error)
	UpsertLabourEntry(ctx context.Context, entry dao.LabourEntry) (dao.LabourEntry, error)

	UpsertAnalysis(ctx context.Context, analysis dao.EventAnalysis) (dao.EventAnalysis, error)
	FindAnalysis(ctx context.Context, eventID uint) (dao.EventAnalysis, error)

	InsertPlayers(ctx context.Context, players []dao.EventPlayer) ([]dao.EventPlayer, error)
	DeletePlayer(ctx context.Context, id uint) error
	FindPlayers(ctx context.Context, eventID uint) ([]dao.EventPlayer, error)

	InsertCostEntry(ctx context.Context, entry dao.EventCost) (dao.EventCost, error)
	UpdateCostEntry(ctx context.Context, entry dao.EventCost) (dao.EventCost, error)
	DeleteCostEntry(ctx context.Context, id uint) error
	FindCostEntries(ctx context.Context, eventID uint) ([]dao.EventCost, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                         e.ID,
		Name:                       e.Name,
		Date:                       e.Date,
		StartTime:                  e.StartTime,
		EndTime:                    e.EndTime,
		Description:                e.Description,
		EventTypeID:                e.EventTypeID,
		PlayingFormatID:            e.PlayingFormatID,
		PairingMethodID:            e.PairingMethodID,
		PairingAppID:               e.PairingAppID,
		TemplateID:                 e.TemplateID,
		Capacity:                   e.Capacity,
		TicketsAvailable:           e.TicketsAvailable,
		TablesBooked:               e.TablesBooked,
		Rounds:                     e.Rounds,
		IsOrganised:                e.IsOrganised,
		TicketsLive:                e.TicketsLive,
		IsAdvertised:               e.IsAdvertised,
		IsCompleted:                e.IsCompleted,
		IsCancelled:                e.IsCancelled,
		CancellationDate:           e.CancellationDate,
		CancellationReason:         e.CancellationReason,
		IsDeleted:                  e.IsDeleted,
		DeletedAt:                  e.DeletedAt,
		IncludeAttendeesInPrintout: e.IncludeAttendeesInPrintout,
		CreatedAt:                  e.CreatedAt,
		UpdatedAt:                  e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:                         e.ID,
		Name:                       e.Name,
		Date:                       e.Date,
		StartTime:                  e.StartTime,
		EndTime:                    e.EndTime,
		Description:                e.Description,
		EventTypeID:                e.EventTypeID,
		PlayingFormatID:            e.PlayingFormatID,
		PairingMethodID:            e.PairingMethodID,
		PairingAppID:               e.PairingAppID,
		TemplateID:                 e.TemplateID,
		Capacity:                   e.Capacity,
		TicketsAvailable:           e.TicketsAvailable,
		TablesBooked:               e.TablesBooked,
		Rounds:                     e.Rounds,
		IsOrganised:                e.IsOrganised,
		TicketsLive:                e.TicketsLive,
		IsAdvertised:               e.IsAdvertised,
		IsCompleted:                e.IsCompleted,
		IsCancelled:                e.IsCancelled,
		CancellationDate:           e.CancellationDate,
		CancellationReason:         e.CancellationReason,
		IsDeleted:                  e.IsDeleted,
		DeletedAt:                  e.DeletedAt,
		IncludeAttendeesInPrintout: e.IncludeAttendeesInPrintout,
		CreatedAt:                  e.CreatedAt,
		UpdatedAt:                  e.UpdatedAt,
	}

	if e.EventType != nil {
		event.EventTypeName = e.EventType.Name
	}
	if e.PlayingFormat != nil {
		event.PlayingFormat = e.PlayingFormat.Name
	}
	if e.PairingMethod != nil {
		event.PairingMethod = e.PairingMethod.Name
	}
	if e.PairingApp != nil {
		event.PairingApp = e.PairingApp.Name
	}

	return event
}

func (r *EventRepository) daosToDomain(events []dao.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	for i, e := range events {
		out[i] = r.daoToDomain(e)
	}

	return out
}

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(event), nil
}

// GetAllEvents lists non-deleted events ordered by date ascending, optionally
// excluding completed ones.
func (r *EventRepository) GetAllEvents(ctx context.Context, includeCompleted bool) ([]domain.Event, error) {
	events, err := r.dao.FindAll(ctx, includeCompleted)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(events), nil
}

func (r *EventRepository) GetEventsByDate(ctx context.Context, date string) ([]domain.Event, error) {
	events, err := r.dao.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByDate -> %w", err)
	}

	return r.daosToDomain(events), nil
}

func (r *EventRepository) GetUpcomingEvents(ctx context.Context, fromDate string, limit int) ([]domain.Event, error) {
	events, err := r.dao.FindUpcoming(ctx, fromDate, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUpcoming -> %w", err)
	}

	return r.daosToDomain(events), nil
}

func (r *EventRepository) GetDeletedEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := r.dao.FindDeleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDeleted -> %w", err)
	}

	return r.daosToDomain(events), nil
}

// DeleteEvent is a soft delete: the row is kept with is_deleted set and
// becomes invisible to the default listings.
func (r *EventRepository) DeleteEvent(ctx context.Context, id uint) error {
	if err := r.dao.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.SoftDelete -> %w", err)
	}

	return nil
}

func (r *EventRepository) RestoreEvent(ctx context.Context, id uint) error {
	if err := r.dao.Restore(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Restore -> %w", err)
	}

	return nil
}

func (r *EventRepository) PermanentlyDeleteEvent(ctx context.Context, id uint) error {
	if err := r.dao.PermanentlyDelete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.PermanentlyDelete -> %w", err)
	}

	return nil
}

// EmptyTrash permanently deletes every soft-deleted event.
func (r *EventRepository) EmptyTrash(ctx context.Context) (int, error) {
	ids, err := r.dao.FindDeletedIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.FindDeletedIDs -> %w", err)
	}

	for _, id := range ids {
		if err := r.dao.PermanentlyDelete(ctx, id); err != nil {
			return 0, fmt.Errorf("r.dao.PermanentlyDelete -> %w", err)
		}
	}

	return len(ids), nil
}

func (r *EventRepository) CountEventsUsingTemplate(ctx context.Context, templateID uint) (int64, error) {
	count, err := r.dao.CountByTemplate(ctx, templateID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByTemplate -> %w", err)
	}

	return count, nil
}
