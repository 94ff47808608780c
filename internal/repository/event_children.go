package repository

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

var ErrScoreOutOfRange = errors.New("scores must be between 0 and 10")

// Checklist items.

func checklistDaoToDomain(i dao.EventChecklistItem) domain.ChecklistItem {
	item := domain.ChecklistItem{
		ID:              i.ID,
		ParentID:        i.EventID,
		CategoryID:      i.CategoryID,
		Description:     i.Description,
		SortOrder:       i.SortOrder,
		IsCompleted:     i.IsCompleted,
		DueDate:         i.DueDate,
		IncludeInPDF:    i.IncludeInPDF,
		ShowOnDashboard: i.ShowOnDashboard,
	}
	if i.Category != nil {
		item.CategoryName = i.Category.Name
	}

	return item
}

func checklistDomainToDao(i domain.ChecklistItem) dao.EventChecklistItem {
	return dao.EventChecklistItem{
		ID:              i.ID,
		EventID:         i.ParentID,
		CategoryID:      i.CategoryID,
		Description:     i.Description,
		SortOrder:       i.SortOrder,
		IsCompleted:     i.IsCompleted,
		DueDate:         i.DueDate,
		IncludeInPDF:    i.IncludeInPDF,
		ShowOnDashboard: i.ShowOnDashboard,
	}
}

func (r *EventRepository) AddChecklistItem(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	if err := validation.Validate(item.Description, validation.Required); err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("description: %w", err)
	}

	created, err := r.dao.InsertChecklistItem(ctx, checklistDomainToDao(item))
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("r.dao.InsertChecklistItem -> %w", err)
	}

	return checklistDaoToDomain(created), nil
}

func (r *EventRepository) UpdateChecklistItem(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	if err := validation.Validate(item.Description, validation.Required); err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("description: %w", err)
	}

	updated, err := r.dao.UpdateChecklistItem(ctx, checklistDomainToDao(item))
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("r.dao.UpdateChecklistItem -> %w", err)
	}

	return checklistDaoToDomain(updated), nil
}

func (r *EventRepository) DeleteChecklistItem(ctx context.Context, id uint) error {
	return r.dao.DeleteChecklistItem(ctx, id)
}

func (r *EventRepository) GetChecklistItems(ctx context.Context, eventID uint) ([]domain.ChecklistItem, error) {
	items, err := r.dao.FindChecklistItems(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindChecklistItems -> %w", err)
	}

	out := make([]domain.ChecklistItem, len(items))
	for i, item := range items {
		out[i] = checklistDaoToDomain(item)
	}

	return out, nil
}

// MoveItemUp swaps the item with its predecessor inside the same
// (event, category) partition; a no-op at the top.
func (r *EventRepository) MoveItemUp(ctx context.Context, id uint) error {
	if err := r.dao.MoveChecklistItem(ctx, id, true); err != nil {
		return fmt.Errorf("r.dao.MoveChecklistItem -> %w", err)
	}

	return nil
}

// MoveItemDown mirrors MoveItemUp at the bottom boundary.
func (r *EventRepository) MoveItemDown(ctx context.Context, id uint) error {
	if err := r.dao.MoveChecklistItem(ctx, id, false); err != nil {
		return fmt.Errorf("r.dao.MoveChecklistItem -> %w", err)
	}

	return nil
}

// DashboardChecklistItem joins an incomplete dashboard-flagged item with its
// event's name and date.
type DashboardChecklistItem struct {
	ID          uint
	EventID     uint
	Description string
	DueDate     *string
	EventName   string
	EventDate   string
}

func (r *EventRepository) GetDashboardChecklistItems(ctx context.Context, fromDate string) ([]DashboardChecklistItem, error) {
	rows, err := r.dao.FindDashboardItems(ctx, fromDate)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDashboardItems -> %w", err)
	}

	out := make([]DashboardChecklistItem, len(rows))
	for i, row := range rows {
		out[i] = DashboardChecklistItem(row)
	}

	return out, nil
}

// Ticket tiers.

func tierDaoToDomain(t dao.EventTicketTier) domain.TicketTier {
	return domain.TicketTier{
		ID:                t.ID,
		ParentID:          t.EventID,
		Name:              t.Name,
		Price:             t.Price,
		QuantityAvailable: t.QuantityAvailable,
		QuantitySold:      t.QuantitySold,
	}
}

func validateTier(t domain.TicketTier) error {
	return validation.Errors{
		"name":     validation.Validate(t.Name, validation.Required),
		"price":    validation.Validate(t.Price, validation.Min(0.0)),
		"quantity": validation.Validate(t.QuantityAvailable, validation.Min(0)),
		"sold":     validation.Validate(t.QuantitySold, validation.Min(0)),
	}.Filter()
}

func (r *EventRepository) AddTicketTier(ctx context.Context, tier domain.TicketTier) (domain.TicketTier, error) {
	if err := validateTier(tier); err != nil {
		return domain.TicketTier{}, err
	}

	created, err := r.dao.InsertTicketTier(ctx, dao.EventTicketTier{
		EventID:           tier.ParentID,
		Name:              tier.Name,
		Price:             tier.Price,
		QuantityAvailable: tier.QuantityAvailable,
		QuantitySold:      tier.QuantitySold,
	})
	if err != nil {
		return domain.TicketTier{}, fmt.Errorf("r.dao.InsertTicketTier -> %w", err)
	}

	return tierDaoToDomain(created), nil
}

func (r *EventRepository) UpdateTicketTier(ctx context.Context, tier domain.TicketTier) (domain.TicketTier, error) {
	if err := validateTier(tier); err != nil {
		return domain.TicketTier{}, err
	}

	updated, err := r.dao.UpdateTicketTier(ctx, dao.EventTicketTier{
		ID:                tier.ID,
		EventID:           tier.ParentID,
		Name:              tier.Name,
		Price:             tier.Price,
		QuantityAvailable: tier.QuantityAvailable,
		QuantitySold:      tier.QuantitySold,
	})
	if err != nil {
		return domain.TicketTier{}, fmt.Errorf("r.dao.UpdateTicketTier -> %w", err)
	}

	return tierDaoToDomain(updated), nil
}

func (r *EventRepository) DeleteTicketTier(ctx context.Context, id uint) error {
	return r.dao.DeleteTicketTier(ctx, id)
}

func (r *EventRepository) GetTicketTiers(ctx context.Context, eventID uint) ([]domain.TicketTier, error) {
	tiers, err := r.dao.FindTicketTiers(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTicketTiers -> %w", err)
	}

	out := make([]domain.TicketTier, len(tiers))
	for i, t := range tiers {
		out[i] = tierDaoToDomain(t)
	}

	return out, nil
}

func (r *EventRepository) RecordTierSale(ctx context.Context, tierID uint, quantity int) (domain.TicketTier, error) {
	if quantity < 1 {
		return domain.TicketTier{}, fmt.Errorf("quantity: %w", validation.Validate(quantity, validation.Min(1)))
	}

	tier, err := r.dao.RecordTierSale(ctx, tierID, quantity)
	if err != nil {
		return domain.TicketTier{}, fmt.Errorf("r.dao.RecordTierSale -> %w", err)
	}

	return tierDaoToDomain(tier), nil
}

// TicketRevenue is the tier-based revenue rollup for one event.
func (r *EventRepository) TicketRevenue(ctx context.Context, eventID uint) (float64, error) {
	tiers, err := r.GetTicketTiers(ctx, eventID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, t := range tiers {
		total += t.Revenue()
	}

	return total, nil
}

// Prize and material items.

func prizeDaoToDomain(p dao.EventPrizeItem) domain.PrizeItem {
	return domain.PrizeItem{
		ID:                p.ID,
		ParentID:          p.EventID,
		Description:       p.Description,
		Kind:              domain.PrizeKind(p.Kind),
		Quantity:          p.Quantity,
		QuantityPerPlayer: p.QuantityPerPlayer,
		Recipients:        p.Recipients,
		TotalQuantity:     p.TotalQuantity,
		CostPerItem:       p.CostPerItem,
		TotalCost:         p.TotalCost,
		Supplier:          p.Supplier,
		Received:          p.Received,
		QuantityHandedOut: p.QuantityHandedOut,
	}
}

func prizeDomainToDao(p domain.PrizeItem) dao.EventPrizeItem {
	return dao.EventPrizeItem{
		ID:                p.ID,
		EventID:           p.ParentID,
		Description:       p.Description,
		Kind:              string(p.Kind),
		Quantity:          p.Quantity,
		QuantityPerPlayer: p.QuantityPerPlayer,
		Recipients:        p.Recipients,
		TotalQuantity:     p.TotalQuantity,
		CostPerItem:       p.CostPerItem,
		TotalCost:         p.TotalCost,
		Supplier:          p.Supplier,
		Received:          p.Received,
		QuantityHandedOut: p.QuantityHandedOut,
	}
}

func (r *EventRepository) AddPrizeItem(ctx context.Context, item domain.PrizeItem) (domain.PrizeItem, error) {
	item.Recompute()

	created, err := r.dao.InsertPrizeItem(ctx, prizeDomainToDao(item))
	if err != nil {
		return domain.PrizeItem{}, fmt.Errorf("r.dao.InsertPrizeItem -> %w", err)
	}

	return prizeDaoToDomain(created), nil
}

func (r *EventRepository) UpdatePrizeItem(ctx context.Context, item domain.PrizeItem) (domain.PrizeItem, error) {
	item.Recompute()

	updated, err := r.dao.UpdatePrizeItem(ctx, prizeDomainToDao(item))
	if err != nil {
		return domain.PrizeItem{}, fmt.Errorf("r.dao.UpdatePrizeItem -> %w", err)
	}

	return prizeDaoToDomain(updated), nil
}

func (r *EventRepository) DeletePrizeItem(ctx context.Context, id uint) error {
	return r.dao.DeletePrizeItem(ctx, id)
}

func (r *EventRepository) GetPrizeItems(ctx context.Context, eventID uint) ([]domain.PrizeItem, error) {
	items, err := r.dao.FindPrizeItems(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPrizeItems -> %w", err)
	}

	out := make([]domain.PrizeItem, len(items))
	for i, item := range items {
		out[i] = prizeDaoToDomain(item)
	}

	return out, nil
}

// Notes.

func noteDaoToDomain(n dao.EventNote) domain.Note {
	return domain.Note{
		ID:                n.ID,
		ParentID:          n.EventID,
		Text:              n.Text,
		ShowInNotesTab:    n.ShowInNotesTab,
		IncludeInPrintout: n.IncludeInPrintout,
		SendToTemplate:    n.SendToTemplate,
		CreatedAt:         n.CreatedAt,
	}
}

func (r *EventRepository) AddNote(ctx context.Context, note domain.Note) (domain.Note, error) {
	if err := validation.Validate(note.Text, validation.Required); err != nil {
		return domain.Note{}, fmt.Errorf("text: %w", err)
	}

	created, err := r.dao.InsertNote(ctx, dao.EventNote{
		EventID:           note.ParentID,
		Text:              note.Text,
		ShowInNotesTab:    note.ShowInNotesTab,
		IncludeInPrintout: note.IncludeInPrintout,
		SendToTemplate:    note.SendToTemplate,
	})
	if err != nil {
		return domain.Note{}, fmt.Errorf("r.dao.InsertNote -> %w", err)
	}

	return noteDaoToDomain(created), nil
}

func (r *EventRepository) UpdateNote(ctx context.Context, note domain.Note) (domain.Note, error) {
	updated, err := r.dao.UpdateNote(ctx, dao.EventNote{
		ID:                note.ID,
		EventID:           note.ParentID,
		Text:              note.Text,
		ShowInNotesTab:    note.ShowInNotesTab,
		IncludeInPrintout: note.IncludeInPrintout,
		SendToTemplate:    note.SendToTemplate,
		CreatedAt:         note.CreatedAt,
	})
	if err != nil {
		return domain.Note{}, fmt.Errorf("r.dao.UpdateNote -> %w", err)
	}

	return noteDaoToDomain(updated), nil
}

func (r *EventRepository) DeleteNote(ctx context.Context, id uint) error {
	return r.dao.DeleteNote(ctx, id)
}

func (r *EventRepository) GetNotes(ctx context.Context, eventID uint) ([]domain.Note, error) {
	notes, err := r.dao.FindNotes(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindNotes -> %w", err)
	}

	out := make([]domain.Note, len(notes))
	for i, n := range notes {
		out[i] = noteDaoToDomain(n)
	}

	return out, nil
}

// Labour entries.

func labourDaoToDomain(l dao.LabourEntry) domain.LabourEntry {
	return domain.LabourEntry{
		ID:          l.ID,
		EventID:     l.EventID,
		StaffName:   l.StaffName,
		HoursWorked: l.HoursWorked,
		RateType:    domain.RateType(l.RateType),
		HourlyRate:  l.HourlyRate,
		WorkStatus:  domain.WorkStatus(l.WorkStatus),
		StaffCount:  l.StaffCount,
		TotalCost:   l.TotalCost,
	}
}

func labourDomainToDao(l domain.LabourEntry) dao.LabourEntry {
	return dao.LabourEntry{
		ID:          l.ID,
		EventID:     l.EventID,
		StaffName:   l.StaffName,
		HoursWorked: l.HoursWorked,
		RateType:    string(l.RateType),
		HourlyRate:  l.HourlyRate,
		WorkStatus:  string(l.WorkStatus),
		StaffCount:  l.StaffCount,
		TotalCost:   l.TotalCost,
	}
}

func validateLabour(l domain.LabourEntry) error {
	return validation.Errors{
		"hours": validation.Validate(l.HoursWorked, validation.Min(0.0), validation.Required),
		"rate":  validation.Validate(l.HourlyRate, validation.Min(0.0), validation.Required),
		"staff": validation.Validate(l.StaffCount, validation.Min(1)),
	}.Filter()
}

func (r *EventRepository) AddLabourEntry(ctx context.Context, entry domain.LabourEntry) (domain.LabourEntry, error) {
	if err := validateLabour(entry); err != nil {
		return domain.LabourEntry{}, err
	}
	entry.Recompute()

	created, err := r.dao.InsertLabourEntry(ctx, labourDomainToDao(entry))
	if err != nil {
		return domain.LabourEntry{}, fmt.Errorf("r.dao.InsertLabourEntry -> %w", err)
	}

	return labourDaoToDomain(created), nil
}

func (r *EventRepository) UpdateLabourEntry(ctx context.Context, entry domain.LabourEntry) (domain.LabourEntry, error) {
	if err := validateLabour(entry); err != nil {
		return domain.LabourEntry{}, err
	}
	entry.Recompute()

	updated, err := r.dao.UpdateLabourEntry(ctx, labourDomainToDao(entry))
	if err != nil {
		return domain.LabourEntry{}, fmt.Errorf("r.dao.UpdateLabourEntry -> %w", err)
	}

	return labourDaoToDomain(updated), nil
}

func (r *EventRepository) DeleteLabourEntry(ctx context.Context, id uint) error {
	return r.dao.DeleteLabourEntry(ctx, id)
}

func (r *EventRepository) GetLabourEntries(ctx context.Context, eventID uint) ([]domain.LabourEntry, error) {
	entries, err := r.dao.FindLabourEntries(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindLabourEntries -> %w", err)
	}

	out := make([]domain.LabourEntry, len(entries))
	for i, e := range entries {
		out[i] = labourDaoToDomain(e)
	}

	return out, nil
}

// UpsertLabourEntry writes the event's derived labour entry, replacing the
// previous one if present.
func (r *EventRepository) UpsertLabourEntry(ctx context.Context, entry domain.LabourEntry) (domain.LabourEntry, error) {
	entry.Recompute()

	saved, err := r.dao.UpsertLabourEntry(ctx, labourDomainToDao(entry))
	if err != nil {
		return domain.LabourEntry{}, fmt.Errorf("r.dao.UpsertLabourEntry -> %w", err)
	}

	return labourDaoToDomain(saved), nil
}

// Analysis.

func analysisDaoToDomain(a dao.EventAnalysis) domain.EventAnalysis {
	return domain.EventAnalysis{
		ID:                   a.ID,
		EventID:              a.EventID,
		ActualAttendance:     a.ActualAttendance,
		AttendeeSatisfaction: a.AttendeeSatisfaction,
		EventSmoothness:      a.EventSmoothness,
		OverallSuccessScore:  a.OverallSuccessScore,
		RevenueTotal:         a.RevenueTotal,
		CostTotal:            a.CostTotal,
		ProfitMargin:         a.ProfitMargin,
		Notes:                a.Notes,
	}
}

// SaveAnalysis upserts the event's analysis row, recomputing the derived
// fields so stored values stay consistent with their inputs.
func (r *EventRepository) SaveAnalysis(ctx context.Context, analysis domain.EventAnalysis) (domain.EventAnalysis, error) {
	if analysis.AttendeeSatisfaction < 0 || analysis.AttendeeSatisfaction > 10 ||
		analysis.EventSmoothness < 0 || analysis.EventSmoothness > 10 {
		return domain.EventAnalysis{}, ErrScoreOutOfRange
	}

	analysis.Recompute()

	saved, err := r.dao.UpsertAnalysis(ctx, dao.EventAnalysis{
		ID:                   analysis.ID,
		EventID:              analysis.EventID,
		ActualAttendance:     analysis.ActualAttendance,
		AttendeeSatisfaction: analysis.AttendeeSatisfaction,
		EventSmoothness:      analysis.EventSmoothness,
		OverallSuccessScore:  analysis.OverallSuccessScore,
		RevenueTotal:         analysis.RevenueTotal,
		CostTotal:            analysis.CostTotal,
		ProfitMargin:         analysis.ProfitMargin,
		Notes:                analysis.Notes,
	})
	if err != nil {
		return domain.EventAnalysis{}, fmt.Errorf("r.dao.UpsertAnalysis -> %w", err)
	}

	return analysisDaoToDomain(saved), nil
}

func (r *EventRepository) GetAnalysis(ctx context.Context, eventID uint) (domain.EventAnalysis, error) {
	analysis, err := r.dao.FindAnalysis(ctx, eventID)
	if err != nil {
		return domain.EventAnalysis{}, fmt.Errorf("r.dao.FindAnalysis -> %w", err)
	}

	return analysisDaoToDomain(analysis), nil
}

// Players.

// AddPlayers inserts a pre-split list of player names; the presentation layer
// handles delimiter parsing.
func (r *EventRepository) AddPlayers(ctx context.Context, eventID uint, names []string) ([]domain.Player, error) {
	rows := make([]dao.EventPlayer, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		rows = append(rows, dao.EventPlayer{EventID: eventID, Name: name})
	}

	created, err := r.dao.InsertPlayers(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertPlayers -> %w", err)
	}

	out := make([]domain.Player, len(created))
	for i, p := range created {
		out[i] = domain.Player{ID: p.ID, EventID: p.EventID, Name: p.Name, Contact: p.Contact}
	}

	return out, nil
}

func (r *EventRepository) DeletePlayer(ctx context.Context, id uint) error {
	return r.dao.DeletePlayer(ctx, id)
}

func (r *EventRepository) GetPlayers(ctx context.Context, eventID uint) ([]domain.Player, error) {
	players, err := r.dao.FindPlayers(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPlayers -> %w", err)
	}

	out := make([]domain.Player, len(players))
	for i, p := range players {
		out[i] = domain.Player{ID: p.ID, EventID: p.EventID, Name: p.Name, Contact: p.Contact}
	}

	return out, nil
}

// Cost ledger.

func costDaoToDomain(c dao.EventCost) domain.CostEntry {
	entry := domain.CostEntry{
		ID:             c.ID,
		EventID:        c.EventID,
		CostCategoryID: c.CostCategoryID,
		Description:    c.Description,
		Amount:         c.Amount,
	}
	if c.CostCategory != nil {
		entry.CategoryName = c.CostCategory.Name
	}

	return entry
}

func (r *EventRepository) AddCostEntry(ctx context.Context, entry domain.CostEntry) (domain.CostEntry, error) {
	created, err := r.dao.InsertCostEntry(ctx, dao.EventCost{
		EventID:        entry.EventID,
		CostCategoryID: entry.CostCategoryID,
		Description:    entry.Description,
		Amount:         entry.Amount,
	})
	if err != nil {
		return domain.CostEntry{}, fmt.Errorf("r.dao.InsertCostEntry -> %w", err)
	}

	return costDaoToDomain(created), nil
}

func (r *EventRepository) UpdateCostEntry(ctx context.Context, entry domain.CostEntry) (domain.CostEntry, error) {
	updated, err := r.dao.UpdateCostEntry(ctx, dao.EventCost{
		ID:             entry.ID,
		EventID:        entry.EventID,
		CostCategoryID: entry.CostCategoryID,
		Description:    entry.Description,
		Amount:         entry.Amount,
	})
	if err != nil {
		return domain.CostEntry{}, fmt.Errorf("r.dao.UpdateCostEntry -> %w", err)
	}

	return costDaoToDomain(updated), nil
}

func (r *EventRepository) DeleteCostEntry(ctx context.Context, id uint) error {
	return r.dao.DeleteCostEntry(ctx, id)
}

func (r *EventRepository) GetCostEntries(ctx context.Context, eventID uint) ([]domain.CostEntry, error) {
	entries, err := r.dao.FindCostEntries(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCostEntries -> %w", err)
	}

	out := make([]domain.CostEntry, len(entries))
	for i, e := range entries {
		out[i] = costDaoToDomain(e)
	}

	return out, nil
}
