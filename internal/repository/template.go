package repository

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

var ErrTemplateNotFound = dao.ErrTemplateNotFound

type TemplateDAO interface {
	Insert(ctx context.Context, template dao.Template) (dao.Template, error)
	Update(ctx context.Context, template dao.Template) (dao.Template, error)
	FindByID(ctx context.Context, id uint) (dao.Template, error)
	FindByIDWithChildren(ctx context.Context, id uint) (dao.Template, error)
	FindAll(ctx context.Context) ([]dao.Template, error)
	Delete(ctx context.Context, id uint) error
	FindFeedback(ctx context.Context, templateID uint) ([]dao.TemplateFeedback, error)

	InsertChecklistItem(ctx context.Context, item dao.TemplateChecklistItem) (dao.TemplateChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, item dao.TemplateChecklistItem) (dao.TemplateChecklistItem, error)
	DeleteChecklistItem(ctx context.Context, id uint) error
	FindChecklistItems(ctx context.Context, templateID uint) ([]dao.TemplateChecklistItem, error)

	InsertTicketTier(ctx context.Context, tier dao.TemplateTicketTier) (dao.TemplateTicketTier, error)
	UpdateTicketTier(ctx context.Context, tier dao.TemplateTicketTier) (dao.TemplateTicketTier, error)
	DeleteTicketTier(ctx context.Context, id uint) error
	FindTicketTiers(ctx context.Context, templateID uint) ([]dao.TemplateTicketTier, error)

	InsertPrizeItem(ctx context.Context, item dao.TemplatePrizeItem) (dao.TemplatePrizeItem, error)
	UpdatePrizeItem(ctx context.Context, item dao.TemplatePrizeItem) (dao.TemplatePrizeItem, error)
	DeletePrizeItem(ctx context.Context, id uint) error
	FindPrizeItems(ctx context.Context, templateID uint) ([]dao.TemplatePrizeItem, error)

	InsertNote(ctx context.Context, note dao.TemplateNote) (dao.TemplateNote, error)
	UpdateNote(ctx context.Context, note dao.TemplateNote) (dao.TemplateNote, error)
	DeleteNote(ctx context.Context, id uint) error
	FindNotes(ctx context.Context, templateID uint) ([]dao.TemplateNote, error)
}

type TemplateRepository struct {
	dao TemplateDAO
}

func NewTemplateRepository(dao TemplateDAO) *TemplateRepository {
	return &TemplateRepository{
		dao: dao,
	}
}

func (r *TemplateRepository) domainToDao(t domain.Template) dao.Template {
	return dao.Template{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		EventTypeID:      t.EventTypeID,
		PlayingFormatID:  t.PlayingFormatID,
		PairingMethodID:  t.PairingMethodID,
		PairingAppID:     t.PairingAppID,
		Capacity:         t.Capacity,
		TicketsAvailable: t.TicketsAvailable,
		TablesBooked:     t.TablesBooked,
		Rounds:           t.Rounds,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func (r *TemplateRepository) daoToDomain(t dao.Template) domain.Template {
	template := domain.Template{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		EventTypeID:      t.EventTypeID,
		PlayingFormatID:  t.PlayingFormatID,
		PairingMethodID:  t.PairingMethodID,
		PairingAppID:     t.PairingAppID,
		Capacity:         t.Capacity,
		TicketsAvailable: t.TicketsAvailable,
		TablesBooked:     t.TablesBooked,
		Rounds:           t.Rounds,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.EventType != nil {
		template.EventTypeName = t.EventType.Name
	}

	return template
}

func (r *TemplateRepository) CreateTemplate(ctx context.Context, template domain.Template) (domain.Template, error) {
	if err := validation.Validate(template.Name, validation.Required); err != nil {
		return domain.Template{}, fmt.Errorf("name: %w", err)
	}

	created, err := r.dao.Insert(ctx, r.domainToDao(template))
	if err != nil {
		return domain.Template{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TemplateRepository) UpdateTemplate(ctx context.Context, template domain.Template) (domain.Template, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(template))
	if err != nil {
		return domain.Template{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TemplateRepository) GetTemplate(ctx context.Context, id uint) (domain.Template, error) {
	template, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Template{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(template), nil
}

func (r *TemplateRepository) GetAllTemplates(ctx context.Context) ([]domain.Template, error) {
	templates, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	out := make([]domain.Template, len(templates))
	for i, t := range templates {
		out[i] = r.daoToDomain(t)
	}

	return out, nil
}

// DeleteTemplate cascades to the template's own children only; derived events
// keep their stored values and lose the back-reference.
func (r *TemplateRepository) DeleteTemplate(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TemplateRepository) GetTemplateFeedback(ctx context.Context, templateID uint) ([]domain.TemplateFeedback, error) {
	feedback, err := r.dao.FindFeedback(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindFeedback -> %w", err)
	}

	out := make([]domain.TemplateFeedback, len(feedback))
	for i, f := range feedback {
		out[i] = domain.TemplateFeedback{
			ID:           f.ID,
			TemplateID:   f.TemplateID,
			EventID:      f.EventID,
			FeedbackText: f.FeedbackText,
			CreatedAt:    f.CreatedAt,
		}
	}

	return out, nil
}

// Checklist items.

func (r *TemplateRepository) AddChecklistItem(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	if err := validation.Validate(item.Description, validation.Required); err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("description: %w", err)
	}

	created, err := r.dao.InsertChecklistItem(ctx, dao.TemplateChecklistItem{
		TemplateID:      item.ParentID,
		CategoryID:      item.CategoryID,
		Description:     item.Description,
		SortOrder:       item.SortOrder,
		IncludeInPDF:    item.IncludeInPDF,
		ShowOnDashboard: item.ShowOnDashboard,
	})
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("r.dao.InsertChecklistItem -> %w", err)
	}

	return templateChecklistDaoToDomain(created), nil
}

func (r *TemplateRepository) UpdateChecklistItem(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	updated, err := r.dao.UpdateChecklistItem(ctx, dao.TemplateChecklistItem{
		ID:              item.ID,
		TemplateID:      item.ParentID,
		CategoryID:      item.CategoryID,
		Description:     item.Description,
		SortOrder:       item.SortOrder,
		IncludeInPDF:    item.IncludeInPDF,
		ShowOnDashboard: item.ShowOnDashboard,
	})
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("r.dao.UpdateChecklistItem -> %w", err)
	}

	return templateChecklistDaoToDomain(updated), nil
}

func (r *TemplateRepository) DeleteChecklistItem(ctx context.Context, id uint) error {
	return r.dao.DeleteChecklistItem(ctx, id)
}

func (r *TemplateRepository) GetChecklistItems(ctx context.Context, templateID uint) ([]domain.ChecklistItem, error) {
	items, err := r.dao.FindChecklistItems(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindChecklistItems -> %w", err)
	}

	out := make([]domain.ChecklistItem, len(items))
	for i, item := range items {
		out[i] = templateChecklistDaoToDomain(item)
	}

	return out, nil
}

func templateChecklistDaoToDomain(i dao.TemplateChecklistItem) domain.ChecklistItem {
	item := domain.ChecklistItem{
		ID:              i.ID,
		ParentID:        i.TemplateID,
		CategoryID:      i.CategoryID,
		Description:     i.Description,
		SortOrder:       i.SortOrder,
		IncludeInPDF:    i.IncludeInPDF,
		ShowOnDashboard: i.ShowOnDashboard,
	}
	if i.Category != nil {
		item.CategoryName = i.Category.Name
	}

	return item
}

// Ticket tiers.

func (r *TemplateRepository) AddTicketTier(ctx context.Context, tier domain.TicketTier) (domain.TicketTier, error) {
	if err := validation.Validate(tier.Name, validation.Required); err != nil {
		return domain.TicketTier{}, fmt.Errorf("name: %w", err)
	}

	created, err := r.dao.InsertTicketTier(ctx, dao.TemplateTicketTier{
		TemplateID:        tier.ParentID,
		Name:              tier.Name,
		Price:             tier.Price,
		QuantityAvailable: tier.QuantityAvailable,
	})
	if err != nil {
		return domain.TicketTier{}, fmt.Errorf("r.dao.InsertTicketTier -> %w", err)
	}

	return templateTierDaoToDomain(created), nil
}

func (r *TemplateRepository) UpdateTicketTier(ctx context.Context, tier domain.TicketTier) (domain.TicketTier, error) {
	updated, err := r.dao.UpdateTicketTier(ctx, dao.TemplateTicketTier{
		ID:                tier.ID,
		TemplateID:        tier.ParentID,
		Name:              tier.Name,
		Price:             tier.Price,
		QuantityAvailable: tier.QuantityAvailable,
	})
	if err != nil {
		return domain.TicketTier{}, fmt.Errorf("r.dao.UpdateTicketTier -> %w", err)
	}

	return templateTierDaoToDomain(updated), nil
}

func (r *TemplateRepository) DeleteTicketTier(ctx context.Context, id uint) error {
	return r.dao.DeleteTicketTier(ctx, id)
}

func (r *TemplateRepository) GetTicketTiers(ctx context.Context, templateID uint) ([]domain.TicketTier, error) {
	tiers, err := r.dao.FindTicketTiers(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTicketTiers -> %w", err)
	}

	out := make([]domain.TicketTier, len(tiers))
	for i, t := range tiers {
		out[i] = templateTierDaoToDomain(t)
	}

	return out, nil
}

func templateTierDaoToDomain(t dao.TemplateTicketTier) domain.TicketTier {
	return domain.TicketTier{
		ID:                t.ID,
		ParentID:          t.TemplateID,
		Name:              t.Name,
		Price:             t.Price,
		QuantityAvailable: t.QuantityAvailable,
	}
}

// Prize and material items.

func (r *TemplateRepository) AddPrizeItem(ctx context.Context, item domain.PrizeItem) (domain.PrizeItem, error) {
	item.Recompute()

	created, err := r.dao.InsertPrizeItem(ctx, templatePrizeDomainToDao(item))
	if err != nil {
		return domain.PrizeItem{}, fmt.Errorf("r.dao.InsertPrizeItem -> %w", err)
	}

	return templatePrizeDaoToDomain(created), nil
}

func (r *TemplateRepository) UpdatePrizeItem(ctx context.Context, item domain.PrizeItem) (domain.PrizeItem, error) {
	item.Recompute()

	updated, err := r.dao.UpdatePrizeItem(ctx, templatePrizeDomainToDao(item))
	if err != nil {
		return domain.PrizeItem{}, fmt.Errorf("r.dao.UpdatePrizeItem -> %w", err)
	}

	return templatePrizeDaoToDomain(updated), nil
}

func (r *TemplateRepository) DeletePrizeItem(ctx context.Context, id uint) error {
	return r.dao.DeletePrizeItem(ctx, id)
}

func (r *TemplateRepository) GetPrizeItems(ctx context.Context, templateID uint) ([]domain.PrizeItem, error) {
	items, err := r.dao.FindPrizeItems(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPrizeItems -> %w", err)
	}

	out := make([]domain.PrizeItem, len(items))
	for i, item := range items {
		out[i] = templatePrizeDaoToDomain(item)
	}

	return out, nil
}

func templatePrizeDomainToDao(p domain.PrizeItem) dao.TemplatePrizeItem {
	return dao.TemplatePrizeItem{
		ID:                p.ID,
		TemplateID:        p.ParentID,
		Description:       p.Description,
		Kind:              string(p.Kind),
		Quantity:          p.Quantity,
		QuantityPerPlayer: p.QuantityPerPlayer,
		Recipients:        p.Recipients,
		TotalQuantity:     p.TotalQuantity,
		CostPerItem:       p.CostPerItem,
		TotalCost:         p.TotalCost,
		Supplier:          p.Supplier,
	}
}

func templatePrizeDaoToDomain(p dao.TemplatePrizeItem) domain.PrizeItem {
	return domain.PrizeItem{
		ID:                p.ID,
		ParentID:          p.TemplateID,
		Description:       p.Description,
		Kind:              domain.PrizeKind(p.Kind),
		Quantity:          p.Quantity,
		QuantityPerPlayer: p.QuantityPerPlayer,
		Recipients:        p.Recipients,
		TotalQuantity:     p.TotalQuantity,
		CostPerItem:       p.CostPerItem,
		TotalCost:         p.TotalCost,
		Supplier:          p.Supplier,
	}
}

// Notes.

func (r *TemplateRepository) AddNote(ctx context.Context, note domain.Note) (domain.Note, error) {
	if err := validation.Validate(note.Text, validation.Required); err != nil {
		return domain.Note{}, fmt.Errorf("text: %w", err)
	}

	created, err := r.dao.InsertNote(ctx, dao.TemplateNote{
		TemplateID:        note.ParentID,
		Text:              note.Text,
		ShowInNotesTab:    note.ShowInNotesTab,
		IncludeInPrintout: note.IncludeInPrintout,
	})
	if err != nil {
		return domain.Note{}, fmt.Errorf("r.dao.InsertNote -> %w", err)
	}

	return templateNoteDaoToDomain(created), nil
}

func (r *TemplateRepository) UpdateNote(ctx context.Context, note domain.Note) (domain.Note, error) {
	updated, err := r.dao.UpdateNote(ctx, dao.TemplateNote{
		ID:                note.ID,
		TemplateID:        note.ParentID,
		Text:              note.Text,
		ShowInNotesTab:    note.ShowInNotesTab,
		IncludeInPrintout: note.IncludeInPrintout,
		CreatedAt:         note.CreatedAt,
	})
	if err != nil {
		return domain.Note{}, fmt.Errorf("r.dao.UpdateNote -> %w", err)
	}

	return templateNoteDaoToDomain(updated), nil
}

func (r *TemplateRepository) DeleteNote(ctx context.Context, id uint) error {
	return r.dao.DeleteNote(ctx, id)
}

func (r *TemplateRepository) GetNotes(ctx context.Context, templateID uint) ([]domain.Note, error) {
	notes, err := r.dao.FindNotes(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindNotes -> %w", err)
	}

	out := make([]domain.Note, len(notes))
	for i, n := range notes {
		out[i] = templateNoteDaoToDomain(n)
	}

	return out, nil
}

func templateNoteDaoToDomain(n dao.TemplateNote) domain.Note {
	return domain.Note{
		ID:                n.ID,
		ParentID:          n.TemplateID,
		Text:              n.Text,
		ShowInNotesTab:    n.ShowInNotesTab,
		IncludeInPrintout: n.IncludeInPrintout,
		CreatedAt:         n.CreatedAt,
	}
}
