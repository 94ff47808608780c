package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("template not found")

type Template struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Description string

	EventTypeID     *uint
	EventType       *EventType `gorm:"foreignKey:EventTypeID"`
	PlayingFormatID *uint
	PairingMethodID *uint
	PairingAppID    *uint

	Capacity         int `gorm:"default:0"`
	TicketsAvailable int `gorm:"default:0"`
	TablesBooked     int `gorm:"default:0"`
	Rounds           int `gorm:"default:0"`

	ChecklistItems []TemplateChecklistItem `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	TicketTiers    []TemplateTicketTier    `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	PrizeItems     []TemplatePrizeItem     `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	Notes          []TemplateNote          `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	Feedback       []TemplateFeedback      `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type TemplateChecklistItem struct {
	ID              uint               `gorm:"primaryKey"`
	TemplateID      uint               `gorm:"not null;index"`
	CategoryID      *uint              `gorm:"index"`
	Category        *ChecklistCategory `gorm:"foreignKey:CategoryID"`
	Description     string             `gorm:"not null"`
	SortOrder       int                `gorm:"default:0"`
	IncludeInPDF    bool               `gorm:"default:true"`
	ShowOnDashboard bool               `gorm:"default:false"`
}

type TemplateTicketTier struct {
	ID                uint    `gorm:"primaryKey"`
	TemplateID        uint    `gorm:"not null;index"`
	Name              string  `gorm:"not null"`
	Price             float64 `gorm:"default:0"`
	QuantityAvailable int     `gorm:"default:0"`
}

type TemplatePrizeItem struct {
	ID                uint    `gorm:"primaryKey"`
	TemplateID        uint    `gorm:"not null;index"`
	Description       string  `gorm:"not null"`
	Kind              string  `gorm:"not null;default:prize"`
	Quantity          int     `gorm:"default:0"`
	QuantityPerPlayer int     `gorm:"default:0"`
	Recipients        int     `gorm:"default:1"`
	TotalQuantity     int     `gorm:"default:0"`
	CostPerItem       float64 `gorm:"default:0"`
	TotalCost         float64 `gorm:"default:0"`
	Supplier          string
}

type TemplateNote struct {
	ID                uint   `gorm:"primaryKey"`
	TemplateID        uint   `gorm:"not null;index"`
	Text              string `gorm:"not null"`
	ShowInNotesTab    bool   `gorm:"default:true"`
	IncludeInPrintout bool   `gorm:"default:false"`
	CreatedAt         time.Time
}

// TemplateFeedback is append-only: rows are written when event notes are
// promoted and never updated.
type TemplateFeedback struct {
	ID           uint   `gorm:"primaryKey"`
	TemplateID   uint   `gorm:"not null;index"`
	EventID      uint   `gorm:"not null"`
	FeedbackText string `gorm:"not null"`
	CreatedAt    time.Time
}

type TemplateDAO struct {
	db *gorm.DB
}

func NewTemplateDAO(db *gorm.DB) *TemplateDAO {
	return &TemplateDAO{
		db: db,
	}
}

func (d *TemplateDAO) Insert(ctx context.Context, template Template) (Template, error) {
	result := d.db.WithContext(ctx).Create(&template)
	if result.Error != nil {
		return Template{}, result.Error
	}

	return template, nil
}

func (d *TemplateDAO) Update(ctx context.Context, template Template) (Template, error) {
	result := d.db.WithContext(ctx).Save(&template)
	if result.Error != nil {
		return Template{}, result.Error
	}

	return template, nil
}

func (d *TemplateDAO) FindByID(ctx context.Context, id uint) (Template, error) {
	var template Template

	result := d.db.WithContext(ctx).Preload("EventType").First(&template, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Template{}, ErrTemplateNotFound
		}

		return Template{}, result.Error
	}

	return template, nil
}

// FindByIDWithChildren loads the template with every child collection, for
// instantiation.
func (d *TemplateDAO) FindByIDWithChildren(ctx context.Context, id uint) (Template, error) {
	var template Template

	result := d.db.WithContext(ctx).
		Preload("ChecklistItems").
		Preload("TicketTiers").
		Preload("PrizeItems").
		Preload("Notes").
		Preload("Feedback", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc, id asc")
		}).
		First(&template, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Template{}, ErrTemplateNotFound
		}

		return Template{}, result.Error
	}

	return template, nil
}

func (d *TemplateDAO) FindAll(ctx context.Context) ([]Template, error) {
	var templates []Template

	err := d.db.WithContext(ctx).
		Preload("EventType").
		Order("name asc, id asc").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}

	return templates, nil
}

// Delete removes the template and its own children; events derived from it
// keep their stored values but lose the back-reference.
func (d *TemplateDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&TemplateChecklistItem{}, &TemplateTicketTier{},
			&TemplatePrizeItem{}, &TemplateNote{}, &TemplateFeedback{},
		} {
			if err := tx.Where("template_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		err := tx.Model(&Event{}).Where("template_id = ?", id).Update("template_id", nil).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&Template{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTemplateNotFound
		}

		return nil
	})
}

func (d *TemplateDAO) FindFeedback(ctx context.Context, templateID uint) ([]TemplateFeedback, error) {
	var feedback []TemplateFeedback

	err := d.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("created_at asc, id asc").
		Find(&feedback).Error
	if err != nil {
		return nil, err
	}

	return feedback, nil
}

// Child collections.

func (d *TemplateDAO) InsertChecklistItem(ctx context.Context, item TemplateChecklistItem) (TemplateChecklistItem, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		return TemplateChecklistItem{}, result.Error
	}

	return item, nil
}

func (d *TemplateDAO) UpdateChecklistItem(ctx context.Context, item TemplateChecklistItem) (TemplateChecklistItem, error) {
	result := d.db.WithContext(ctx).Save(&item)
	if result.Error != nil {
		return TemplateChecklistItem{}, result.Error
	}

	return item, nil
}

func (d *TemplateDAO) DeleteChecklistItem(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&TemplateChecklistItem{}, id).Error
}

func (d *TemplateDAO) FindChecklistItems(ctx context.Context, templateID uint) ([]TemplateChecklistItem, error) {
	var items []TemplateChecklistItem

	err := d.db.WithContext(ctx).
		Preload("Category").
		Where("template_id = ?", templateID).
		Order("category_id asc, sort_order asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (d *TemplateDAO) InsertTicketTier(ctx context.Context, tier TemplateTicketTier) (TemplateTicketTier, error) {
	result := d.db.WithContext(ctx).Create(&tier)
	if result.Error != nil {
		return TemplateTicketTier{}, result.Error
	}

	return tier, nil
}

func (d *TemplateDAO) UpdateTicketTier(ctx context.Context, tier TemplateTicketTier) (TemplateTicketTier, error) {
	result := d.db.WithContext(ctx).Save(&tier)
	if result.Error != nil {
		return TemplateTicketTier{}, result.Error
	}

	return tier, nil
}

func (d *TemplateDAO) DeleteTicketTier(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&TemplateTicketTier{}, id).Error
}

func (d *TemplateDAO) FindTicketTiers(ctx context.Context, templateID uint) ([]TemplateTicketTier, error) {
	var tiers []TemplateTicketTier

	err := d.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("price asc, id asc").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}

	return tiers, nil
}

func (d *TemplateDAO) InsertPrizeItem(ctx context.Context, item TemplatePrizeItem) (TemplatePrizeItem, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		return TemplatePrizeItem{}, result.Error
	}

	return item, nil
}

func (d *TemplateDAO) UpdatePrizeItem(ctx context.Context, item TemplatePrizeItem) (TemplatePrizeItem, error) {
	result := d.db.WithContext(ctx).Save(&item)
	if result.Error != nil {
		return TemplatePrizeItem{}, result.Error
	}

	return item, nil
}

func (d *TemplateDAO) DeletePrizeItem(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&TemplatePrizeItem{}, id).Error
}

func (d *TemplateDAO) FindPrizeItems(ctx context.Context, templateID uint) ([]TemplatePrizeItem, error) {
	var items []TemplatePrizeItem

	err := d.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (d *TemplateDAO) InsertNote(ctx context.Context, note TemplateNote) (TemplateNote, error) {
	result := d.db.WithContext(ctx).Create(&note)
	if result.Error != nil {
		return TemplateNote{}, result.Error
	}

	return note, nil
}

func (d *TemplateDAO) UpdateNote(ctx context.Context, note TemplateNote) (TemplateNote, error) {
	result := d.db.WithContext(ctx).Save(&note)
	if result.Error != nil {
		return TemplateNote{}, result.Error
	}

	return note, nil
}

func (d *TemplateDAO) DeleteNote(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&TemplateNote{}, id).Error
}

func (d *TemplateDAO) FindNotes(ctx context.Context, templateID uint) ([]TemplateNote, error) {
	var notes []TemplateNote

	err := d.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("created_at asc, id asc").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	return notes, nil
}
