package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Checklist items.

func (d *EventDAO) InsertChecklistItem(ctx context.Context, item EventChecklistItem) (EventChecklistItem, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		return EventChecklistItem{}, result.Error
	}

	return item, nil
}

func (d *EventDAO) UpdateChecklistItem(ctx context.Context, item EventChecklistItem) (EventChecklistItem, error) {
	result := d.db.WithContext(ctx).Save(&item)
	if result.Error != nil {
		return EventChecklistItem{}, result.Error
	}

	return item, nil
}

func (d *EventDAO) DeleteChecklistItem(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&EventChecklistItem{}, id).Error
}

func (d *EventDAO) FindChecklistItems(ctx context.Context, eventID uint) ([]EventChecklistItem, error) {
	var items []EventChecklistItem

	err := d.db.WithContext(ctx).
		Preload("Category").
		Where("event_id = ?", eventID).
		Order("category_id asc, sort_order asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// MoveChecklistItem swaps the target item's sort order with its neighbour
// within the same (event, category) partition; at the partition boundary the
// call is a no-op. The partition is renumbered densely first, so duplicate
// sort orders self-heal.
func (d *EventDAO) MoveChecklistItem(ctx context.Context, id uint, up bool) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target EventChecklistItem
		if err := tx.First(&target, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}

			return err
		}

		partition := tx.Where("event_id = ?", target.EventID)
		if target.CategoryID == nil {
			partition = partition.Where("category_id IS NULL")
		} else {
			partition = partition.Where("category_id = ?", *target.CategoryID)
		}

		var items []EventChecklistItem
		if err := partition.Order("sort_order asc, id asc").Find(&items).Error; err != nil {
			return err
		}

		idx := -1
		for i := range items {
			items[i].SortOrder = i
			if items[i].ID == id {
				idx = i
			}
		}

		swap := idx - 1
		if !up {
			swap = idx + 1
		}
		if swap >= 0 && swap < len(items) {
			items[idx].SortOrder, items[swap].SortOrder = items[swap].SortOrder, items[idx].SortOrder
		}

		for i := range items {
			err := tx.Model(&EventChecklistItem{}).
				Where("id = ?", items[i].ID).
				Update("sort_order", items[i].SortOrder).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// FindDashboardItems returns incomplete items flagged for the dashboard on
// upcoming events, joined with their event's name and date.
func (d *EventDAO) FindDashboardItems(ctx context.Context, fromDate string) ([]DashboardItem, error) {
	var rows []DashboardItem

	err := d.db.WithContext(ctx).
		Model(&EventChecklistItem{}).
		Select("event_checklist_items.id, event_checklist_items.event_id, event_checklist_items.description, event_checklist_items.due_date, events.name AS event_name, events.date AS event_date").
		Joins("JOIN events ON events.id = event_checklist_items.event_id").
		Where("event_checklist_items.show_on_dashboard = ? AND event_checklist_items.is_completed = ?", true, false).
		Where("events.is_deleted = ? AND events.is_cancelled = ? AND events.date >= ?", false, false, fromDate).
		Order("events.date asc, event_checklist_items.sort_order asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type DashboardItem struct {
	ID          uint
	EventID     uint
	Description string
	DueDate     *string
	EventName   string
	EventDate   string
}

// Ticket tiers.

func (d *EventDAO) InsertTicketTier(ctx context.Context, tier EventTicketTier) (EventTicketTier, error) {
	if tier.QuantitySold > tier.QuantityAvailable {
		return EventTicketTier{}, ErrOversold
	}

	result := d.db.WithContext(ctx).Create(&tier)
	if result.Error != nil {
		return EventTicketTier{}, result.Error
	}

	return tier, nil
}

func (d *EventDAO) UpdateTicketTier(ctx context.Context, tier EventTicketTier) (EventTicketTier, error) {
	if tier.QuantitySold > tier.QuantityAvailable {
		return EventTicketTier{}, ErrOversold
	}

	result := d.db.WithContext(ctx).Save(&tier)
	if result.Error != nil {
		return EventTicketTier{}, result.Error
	}

	return tier, nil
}

func (d *EventDAO) DeleteTicketTier(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&EventTicketTier{}, id).Error
}

func (d *EventDAO) FindTicketTiers(ctx context.Context, eventID uint) ([]EventTicketTier, error) {
	var tiers []EventTicketTier

	err := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("price asc, id asc").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}

	return tiers, nil
}

// RecordTierSale bumps a tier's sold counter, refusing to exceed the
// available quantity.
func (d *EventDAO) RecordTierSale(ctx context.Context, tierID uint, quantity int) (EventTicketTier, error) {
	var tier EventTicketTier

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tier, tierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTierNotFound
			}

			return err
		}

		if tier.QuantitySold+quantity > tier.QuantityAvailable {
			return ErrOversold
		}

		tier.QuantitySold += quantity

		return tx.Save(&tier).Error
	})
	if err != nil {
		return EventTicketTier{}, err
	}

	return tier, nil
}

// Prize and material items.

func (d *EventDAO) InsertPrizeItem(ctx context.Context, item EventPrizeItem) (EventPrizeItem, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		return EventPrizeItem{}, result.Error
	}

	return item, nil
}

func (d *EventDAO) UpdatePrizeItem(ctx context.Context, item EventPrizeItem) (EventPrizeItem, error) {
	result := d.db.WithContext(ctx).Save(&item)
	if result.Error != nil {
		return EventPrizeItem{}, result.Error
	}

	return item, nil
}

func (d *EventDAO) DeletePrizeItem(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&EventPrizeItem{}, id).Error
}

func (d *EventDAO) FindPrizeItems(ctx context.Context, eventID uint) ([]EventPrizeItem, error) {
	var items []EventPrizeItem

	err := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Notes. When a note is flagged send-to-template and the event was derived
// from a template, the matching TemplateFeedback row is written in the same
// transaction.

func (d *EventDAO) InsertNote(ctx context.Context, note EventNote) (EventNote, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return err
		}

		if note.SendToTemplate {
			return promoteNoteToTemplate(tx, note)
		}

		return nil
	})
	if err != nil {
		return EventNote{}, err
	}

	return note, nil
}

func (d *EventDAO) UpdateNote(ctx context.Context, note EventNote) (EventNote, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev EventNote
		if err := tx.First(&prev, note.ID).Error; err != nil {
			return err
		}

		if err := tx.Save(&note).Error; err != nil {
			return err
		}

		if note.SendToTemplate && !prev.SendToTemplate {
			return promoteNoteToTemplate(tx, note)
		}

		return nil
	})
	if err != nil {
		return EventNote{}, err
	}

	return note, nil
}

func promoteNoteToTemplate(tx *gorm.DB, note EventNote) error {
	var event Event
	if err := tx.First(&event, note.EventID).Error; err != nil {
		return err
	}

	if event.TemplateID == nil {
		return nil
	}

	feedback := TemplateFeedback{
		TemplateID:   *event.TemplateID,
		EventID:      event.ID,
		FeedbackText: note.Text,
	}

	return tx.Create(&feedback).Error
}

func (d *EventDAO) DeleteNote(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&EventNote{}, id).Error
}

func (d *EventDAO) FindNotes(ctx context.Context, eventID uint) ([]EventNote, error) {
	var notes []EventNote

	err := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at asc, id asc").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// Labour entries.

func (d *EventDAO) InsertLabourEntry(ctx context.Context, entry LabourEntry) (LabourEntry, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return LabourEntry{}, result.Error
	}

	return entry, nil
}

func (d *EventDAO) UpdateLabourEntry(ctx context.Context, entry LabourEntry) (LabourEntry, error) {
	result := d.db.WithContext(ctx).Save(&entry)
	if result.Error != nil {
		return LabourEntry{}, result.Error
	}

	return entry, nil
}

func (d *EventDAO) DeleteLabourEntry(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&LabourEntry{}, id).Error
}

func (d *EventDAO) FindLabourEntries(ctx context.Context, eventID uint) ([]LabourEntry, error) {
	var entries []LabourEntry

	err := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// UpsertLabourEntry updates the event's first labour entry or creates one.
// Used by the derived labour-cost calculation so repeated runs do not stack
// rows.
func (d *EventDAO) UpsertLabourEntry(ctx context.Context, entry LabourEntry) (LabourEntry, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing LabourEntry

		err := tx.Where("event_id = ?", entry.EventID).Order("id asc").First(&existing).Error
		switch {
		case err == nil:
			entry.ID = existing.ID
			return tx.Save(&entry).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&entry).Error
		default:
			return err
		}
	})
	if err != nil {
		return LabourEntry{}, err
	}

	return entry, nil
}

// Analysis.

func (d *EventDAO) UpsertAnalysis(ctx context.Context, analysis EventAnalysis) (EventAnalysis, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing EventAnalysis

		err := tx.Where("event_id = ?", analysis.EventID).First(&existing).Error
		switch {
		case err == nil:
			analysis.ID = existing.ID
			return tx.Save(&analysis).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&analysis).Error
		default:
			return err
		}
	})
	if err != nil {
		return EventAnalysis{}, err
	}

	return analysis, nil
}

func (d *EventDAO) FindAnalysis(ctx context.Context, eventID uint) (EventAnalysis, error) {
	var analysis EventAnalysis

	err := d.db.WithContext(ctx).Where("event_id = ?", eventID).First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EventAnalysis{}, ErrAnalysisNotFound
		}

		return EventAnalysis{}, err
	}

	return analysis, nil
}

// Players.

func (d *EventDAO) InsertPlayers(ctx context.Context, players []EventPlayer) ([]EventPlayer, error) {
	if len(players) == 0 {
		return nil, nil
	}

	result := d.db.WithContext(ctx).Create(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (d *EventDAO) DeletePlayer(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&EventPlayer{}, id).Error
}

func (d *EventDAO) FindPlayers(ctx context.Context, eventID uint) ([]EventPlayer, error) {
	var players []EventPlayer

	err := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("name asc, id asc").
		Find(&players).Error
	if err != nil {
		return nil, err
	}

	return players, nil
}

// Cost ledger.

func (d *EventDAO) InsertCostEntry(ctx context.Context, entry EventCost) (EventCost, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return EventCost{}, result.Error
	}

	return entry, nil
}

func (d *EventDAO) UpdateCostEntry(ctx context.Context, entry EventCost) (EventCost, error) {
	result := d.db.WithContext(ctx).Save(&entry)
	if result.Error != nil {
		return EventCost{}, result.Error
	}

	return entry, nil
}

func (d *EventDAO) DeleteCostEntry(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&EventCost{}, id).Error
}

func (d *EventDAO) FindCostEntries(ctx context.Context, eventID uint) ([]EventCost, error) {
	var entries []EventCost

	err := d.db.WithContext(ctx).
		Preload("CostCategory").
		Where("event_id = ?", eventID).
		Order("id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
