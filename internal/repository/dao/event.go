package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrItemNotFound     = errors.New("checklist item not found")
	ErrTierNotFound     = errors.New("ticket tier not found")
	ErrOversold         = errors.New("quantity sold exceeds quantity available")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Name        string  `gorm:"not null"`
	Date        string  `gorm:"not null;index"` // YYYY-MM-DD
	StartTime   *string // HH:MM:SS
	EndTime     *string
	Description string

	EventTypeID     *uint
	EventType       *EventType `gorm:"foreignKey:EventTypeID"`
	PlayingFormatID *uint
	PlayingFormat   *PlayingFormat `gorm:"foreignKey:PlayingFormatID"`
	PairingMethodID *uint
	PairingMethod   *PairingMethod `gorm:"foreignKey:PairingMethodID"`
	PairingAppID    *uint
	PairingApp      *PairingApp `gorm:"foreignKey:PairingAppID"`
	TemplateID      *uint       `gorm:"index"`

	Capacity         int `gorm:"default:0"`
	TicketsAvailable int `gorm:"default:0"`
	TablesBooked     int `gorm:"default:0"`
	Rounds           int `gorm:"default:0"`

	IsOrganised  bool `gorm:"default:false"`
	TicketsLive  bool `gorm:"default:false"`
	IsAdvertised bool `gorm:"default:false"`
	IsCompleted  bool `gorm:"default:false"`

	IsCancelled        bool `gorm:"default:false"`
	CancellationDate   *string
	CancellationReason string

	IsDeleted bool `gorm:"default:false;index"`
	DeletedAt *time.Time

	IncludeAttendeesInPrintout bool `gorm:"default:false"`

	ChecklistItems []EventChecklistItem `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	TicketTiers    []EventTicketTier    `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	PrizeItems     []EventPrizeItem     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Notes          []EventNote          `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	LabourEntries  []LabourEntry        `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	CostEntries    []EventCost          `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Players        []EventPlayer        `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Analysis       *EventAnalysis       `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventChecklistItem struct {
	ID              uint               `gorm:"primaryKey"`
	EventID         uint               `gorm:"not null;index"`
	CategoryID      *uint              `gorm:"index"`
	Category        *ChecklistCategory `gorm:"foreignKey:CategoryID"`
	Description     string             `gorm:"not null"`
	SortOrder       int                `gorm:"default:0"`
	IsCompleted     bool               `gorm:"default:false"`
	DueDate         *string
	IncludeInPDF    bool `gorm:"default:true"`
	ShowOnDashboard bool `gorm:"default:false"`
}

type EventTicketTier struct {
	ID                uint    `gorm:"primaryKey"`
	EventID           uint    `gorm:"not null;index"`
	Name              string  `gorm:"not null"`
	Price             float64 `gorm:"default:0"`
	QuantityAvailable int     `gorm:"default:0"`
	QuantitySold      int     `gorm:"default:0"`
}

type EventPrizeItem struct {
	ID                uint    `gorm:"primaryKey"`
	EventID           uint    `gorm:"not null;index"`
	Description       string  `gorm:"not null"`
	Kind              string  `gorm:"not null;default:prize"`
	Quantity          int     `gorm:"default:0"`
	QuantityPerPlayer int     `gorm:"default:0"`
	Recipients        int     `gorm:"default:1"`
	TotalQuantity     int     `gorm:"default:0"`
	CostPerItem       float64 `gorm:"default:0"`
	TotalCost         float64 `gorm:"default:0"`
	Supplier          string
	Received          bool `gorm:"default:false"`
	QuantityHandedOut int  `gorm:"default:0"`
}

type EventNote struct {
	ID                uint   `gorm:"primaryKey"`
	EventID           uint   `gorm:"not null;index"`
	Text              string `gorm:"not null"`
	ShowInNotesTab    bool   `gorm:"default:true"`
	IncludeInPrintout bool   `gorm:"default:false"`
	SendToTemplate    bool   `gorm:"default:false"`
	CreatedAt         time.Time
}

type LabourEntry struct {
	ID          uint `gorm:"primaryKey"`
	EventID     uint `gorm:"not null;index"`
	StaffName   string
	HoursWorked float64 `gorm:"not null"`
	RateType    string  `gorm:"not null"`
	HourlyRate  float64 `gorm:"not null"`
	WorkStatus  string  `gorm:"not null;default:full"`
	StaffCount  int     `gorm:"not null;default:1"`
	TotalCost   float64 `gorm:"not null"`
}

type EventAnalysis struct {
	ID                   uint    `gorm:"primaryKey"`
	EventID              uint    `gorm:"not null;uniqueIndex"`
	ActualAttendance     int     `gorm:"default:0"`
	AttendeeSatisfaction float64 `gorm:"default:0"`
	EventSmoothness      float64 `gorm:"default:0"`
	OverallSuccessScore  float64 `gorm:"default:0"`
	RevenueTotal         float64 `gorm:"default:0"`
	CostTotal            float64 `gorm:"default:0"`
	ProfitMargin         float64 `gorm:"default:0"`
	Notes                string
}

type EventPlayer struct {
	ID      uint   `gorm:"primaryKey"`
	EventID uint   `gorm:"not null;index"`
	Name    string `gorm:"not null"`
	Contact string
}

type EventCost struct {
	ID             uint          `gorm:"primaryKey"`
	EventID        uint          `gorm:"not null;index"`
	CostCategoryID *uint         `gorm:"index"`
	CostCategory   *CostCategory `gorm:"foreignKey:CostCategoryID"`
	Description    string
	Amount         float64 `gorm:"default:0"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

// InsertGraph writes an event together with every child row in one
// transaction; used by template instantiation.
func (d *EventDAO) InsertGraph(ctx context.Context, event Event) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&event).Error
	})
	if err != nil {
		return Event{}, err
	}

	return event, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Save(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("EventType").
		Preload("PlayingFormat").
		Preload("PairingMethod").
		Preload("PairingApp").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindAll returns every non-deleted event ordered by date ascending,
// optionally excluding completed ones.
func (d *EventDAO) FindAll(ctx context.Context, includeCompleted bool) ([]Event, error) {
	query := d.db.WithContext(ctx).
		Preload("EventType").
		Preload("PlayingFormat").
		Preload("PairingMethod").
		Preload("PairingApp").
		Where("is_deleted = ?", false)

	if !includeCompleted {
		query = query.Where("is_completed = ?", false)
	}

	var events []Event
	if err := query.Order("date asc, id asc").Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (d *EventDAO) FindByDate(ctx context.Context, date string) ([]Event, error) {
	var events []Event

	err := d.db.WithContext(ctx).
		Where("date = ? AND is_deleted = ?", date, false).
		Order("start_time asc, id asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (d *EventDAO) FindUpcoming(ctx context.Context, fromDate string, limit int) ([]Event, error) {
	var events []Event

	err := d.db.WithContext(ctx).
		Preload("EventType").
		Where("date >= ? AND is_deleted = ? AND is_completed = ? AND is_cancelled = ?",
			fromDate, false, false, false).
		Order("date asc, id asc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (d *EventDAO) FindDeleted(ctx context.Context) ([]Event, error) {
	var events []Event

	err := d.db.WithContext(ctx).
		Where("is_deleted = ?", true).
		Order("deleted_at desc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (d *EventDAO) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now()

	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": &now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) Restore(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": false, "deleted_at": nil})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// PermanentlyDelete removes the event row and every child row in one
// transaction. The child deletes are explicit rather than relying on the
// declared cascades alone, since pre-existing store files may predate the
// foreign keys.
func (d *EventDAO) PermanentlyDelete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&EventChecklistItem{}, &EventTicketTier{}, &EventPrizeItem{},
			&EventNote{}, &LabourEntry{}, &EventCost{}, &EventPlayer{}, &EventAnalysis{},
		} {
			if err := tx.Where("event_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return nil
	})
}

func (d *EventDAO) FindDeletedIDs(ctx context.Context) ([]uint, error) {
	var ids []uint

	err := d.db.WithContext(ctx).Model(&Event{}).
		Where("is_deleted = ?", true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (d *EventDAO) ClearTemplateRef(ctx context.Context, templateID uint) error {
	return d.db.WithContext(ctx).Model(&Event{}).
		Where("template_id = ?", templateID).
		Update("template_id", nil).Error
}

func (d *EventDAO) CountByTemplate(ctx context.Context, templateID uint) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Event{}).
		Where("template_id = ? AND is_deleted = ?", templateID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// FetchCompleted loads completed, non-cancelled, non-deleted events dated on
// or after cutoff (every such event when cutoff is empty) with the rows the
// analysis rollups need.
func (d *EventDAO) FetchCompleted(ctx context.Context, cutoff string) ([]Event, error) {
	query := d.db.WithContext(ctx).
		Preload("EventType").
		Preload("TicketTiers").
		Preload("CostEntries").
		Preload("CostEntries.CostCategory").
		Preload("Analysis").
		Where("is_deleted = ? AND is_cancelled = ? AND is_completed = ?", false, false, true)

	if cutoff != "" {
		query = query.Where("date >= ?", cutoff)
	}

	var events []Event
	if err := query.Order("date asc, id asc").Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (d *EventDAO) CountCancelled(ctx context.Context, cutoff string) (int64, error) {
	query := d.db.WithContext(ctx).Model(&Event{}).
		Where("is_deleted = ? AND is_cancelled = ?", false, true)

	if cutoff != "" {
		query = query.Where("date >= ?", cutoff)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
