package service

import (
	"context"
	"fmt"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository"
)

var ErrTemplateNotFound = repository.ErrTemplateNotFound

// FeedbackNotePrefix marks notes that were carried into a new event from the
// template's feedback log.
const FeedbackNotePrefix = "Previous feedback: "

type TemplateReader interface {
	GetTemplate(ctx context.Context, id uint) (domain.Template, error)
	GetChecklistItems(ctx context.Context, templateID uint) ([]domain.ChecklistItem, error)
	GetTicketTiers(ctx context.Context, templateID uint) ([]domain.TicketTier, error)
	GetPrizeItems(ctx context.Context, templateID uint) ([]domain.PrizeItem, error)
	GetNotes(ctx context.Context, templateID uint) ([]domain.Note, error)
	GetTemplateFeedback(ctx context.Context, templateID uint) ([]domain.TemplateFeedback, error)
}

type EventGraphWriter interface {
	CreateEventGraph(
		ctx context.Context,
		event domain.Event,
		checklist []domain.ChecklistItem,
		tiers []domain.TicketTier,
		prizes []domain.PrizeItem,
		notes []domain.Note,
	) (domain.Event, error)
}

// InstantiateInput carries the per-event values the template cannot supply.
type InstantiateInput struct {
	TemplateID uint
	Name       string // falls back to the template name when empty
	Date       string // YYYY-MM-DD
	StartTime  *string
	EndTime    *string
}

type TemplateInstantiator struct {
	templates TemplateReader
	events    EventGraphWriter
}

func NewTemplateInstantiator(templates TemplateReader, events EventGraphWriter) *TemplateInstantiator {
	return &TemplateInstantiator{
		templates: templates,
		events:    events,
	}
}

// Instantiate creates a fresh event from a template: reference fields and
// child collections copy over with their progress state reset, and the
// template's feedback log becomes printable notes on the new event. The
// write is all-or-nothing.
func (s *TemplateInstantiator) Instantiate(ctx context.Context, input InstantiateInput) (domain.Event, error) {
	tmpl, err := s.templates.GetTemplate(ctx, input.TemplateID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.templates.GetTemplate -> %w", err)
	}

	name := input.Name
	if name == "" {
		name = tmpl.Name
	}

	templateID := tmpl.ID
	event := domain.Event{
		Name:             name,
		Date:             input.Date,
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		Description:      tmpl.Description,
		EventTypeID:      tmpl.EventTypeID,
		PlayingFormatID:  tmpl.PlayingFormatID,
		PairingMethodID:  tmpl.PairingMethodID,
		PairingAppID:     tmpl.PairingAppID,
		TemplateID:       &templateID,
		Capacity:         tmpl.Capacity,
		TicketsAvailable: tmpl.TicketsAvailable,
		TablesBooked:     tmpl.TablesBooked,
		Rounds:           tmpl.Rounds,
	}

	checklist, err := s.templates.GetChecklistItems(ctx, tmpl.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.templates.GetChecklistItems -> %w", err)
	}
	for i := range checklist {
		checklist[i].IsCompleted = false
		checklist[i].DueDate = nil
	}

	tiers, err := s.templates.GetTicketTiers(ctx, tmpl.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.templates.GetTicketTiers -> %w", err)
	}
	for i := range tiers {
		tiers[i].QuantitySold = 0
	}

	prizes, err := s.templates.GetPrizeItems(ctx, tmpl.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.templates.GetPrizeItems -> %w", err)
	}
	for i := range prizes {
		prizes[i].Received = false
		prizes[i].QuantityHandedOut = 0
		prizes[i].Recompute()
	}

	notes, err := s.templates.GetNotes(ctx, tmpl.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.templates.GetNotes -> %w", err)
	}
	for i := range notes {
		notes[i].SendToTemplate = false
	}

	feedback, err := s.templates.GetTemplateFeedback(ctx, tmpl.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.templates.GetTemplateFeedback -> %w", err)
	}
	for _, fb := range feedback {
		notes = append(notes, domain.Note{
			Text:              FeedbackNotePrefix + fb.FeedbackText,
			ShowInNotesTab:    true,
			IncludeInPrintout: true,
		})
	}

	created, err := s.events.CreateEventGraph(ctx, event, checklist, tiers, prizes, notes)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.CreateEventGraph -> %w", err)
	}

	return created, nil
}
