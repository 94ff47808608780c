package repository

import (
	"context"
	"fmt"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

// CreateEventGraph writes an event and all supplied child collections in a
// single transaction; either everything commits or nothing does. Used by
// template instantiation.
func (r *EventRepository) CreateEventGraph(
	ctx context.Context,
	event domain.Event,
	checklist []domain.ChecklistItem,
	tiers []domain.TicketTier,
	prizes []domain.PrizeItem,
	notes []domain.Note,
) (domain.Event, error) {
	graph := r.domainToDao(event)

	graph.ChecklistItems = make([]dao.EventChecklistItem, len(checklist))
	for i, item := range checklist {
		row := checklistDomainToDao(item)
		row.ID = 0
		row.EventID = 0
		graph.ChecklistItems[i] = row
	}

	graph.TicketTiers = make([]dao.EventTicketTier, len(tiers))
	for i, tier := range tiers {
		graph.TicketTiers[i] = dao.EventTicketTier{
			Name:              tier.Name,
			Price:             tier.Price,
			QuantityAvailable: tier.QuantityAvailable,
			QuantitySold:      tier.QuantitySold,
		}
	}

	graph.PrizeItems = make([]dao.EventPrizeItem, len(prizes))
	for i, prize := range prizes {
		row := prizeDomainToDao(prize)
		row.ID = 0
		row.EventID = 0
		graph.PrizeItems[i] = row
	}

	graph.Notes = make([]dao.EventNote, len(notes))
	for i, note := range notes {
		graph.Notes[i] = dao.EventNote{
			Text:              note.Text,
			ShowInNotesTab:    note.ShowInNotesTab,
			IncludeInPrintout: note.IncludeInPrintout,
			SendToTemplate:    note.SendToTemplate,
		}
	}

	created, err := r.dao.InsertGraph(ctx, graph)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.InsertGraph -> %w", err)
	}

	return r.daoToDomain(created), nil
}

// AnalysisSource is one completed event with the rows the analysis rollups
// read. Analysis is nil when the post-event record was never filled in.
type AnalysisSource struct {
	Event    domain.Event
	TypeName string
	Analysis *domain.EventAnalysis
	Tiers    []domain.TicketTier
	Costs    []domain.CostEntry
}

// CountCancelledEvents counts non-deleted cancelled events dated on or after
// cutoff (all of them when cutoff is empty).
func (r *EventRepository) CountCancelledEvents(ctx context.Context, cutoff string) (int64, error) {
	count, err := r.dao.CountCancelled(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountCancelled -> %w", err)
	}

	return count, nil
}

// GetCompletedEvents loads completed, non-cancelled, non-deleted events dated
// on or after cutoff (all of them when cutoff is empty), ordered by date.
func (r *EventRepository) GetCompletedEvents(ctx context.Context, cutoff string) ([]AnalysisSource, error) {
	events, err := r.dao.FetchCompleted(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FetchCompleted -> %w", err)
	}

	out := make([]AnalysisSource, len(events))
	for i, e := range events {
		source := AnalysisSource{Event: r.daoToDomain(e)}
		source.TypeName = source.Event.EventTypeName

		if e.Analysis != nil {
			analysis := analysisDaoToDomain(*e.Analysis)
			source.Analysis = &analysis
		}

		source.Tiers = make([]domain.TicketTier, len(e.TicketTiers))
		for j, t := range e.TicketTiers {
			source.Tiers[j] = tierDaoToDomain(t)
		}

		source.Costs = make([]domain.CostEntry, len(e.CostEntries))
		for j, c := range e.CostEntries {
			source.Costs[j] = costDaoToDomain(c)
		}

		out[i] = source
	}

	return out, nil
}
