package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrBookingNotFound       = errors.New("booking not found")
	ErrCalendarEntryNotFound = errors.New("calendar entry not found")
)

type StandaloneBooking struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Description  string
	Date         string `gorm:"not null;index"`
	StartTime    *string
	EndTime      *string
	TablesBooked int `gorm:"not null;default:1"`
	Notes        string
	IsDeleted    bool `gorm:"default:false;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OperatingHours struct {
	ID        uint `gorm:"primaryKey"`
	DayOfWeek int  `gorm:"not null;uniqueIndex"` // 0 = Sunday .. 6 = Saturday
	IsOpen    bool `gorm:"default:true"`
	OpenTime  *string
	CloseTime *string
}

type DateSpecificHours struct {
	ID        uint   `gorm:"primaryKey"`
	Date      string `gorm:"not null;uniqueIndex"`
	IsOpen    bool   `gorm:"default:true"`
	OpenTime  *string
	CloseTime *string
	Reason    string
}

type CapacityOverride struct {
	ID          uint   `gorm:"primaryKey"`
	Date        string `gorm:"not null;uniqueIndex"`
	TotalTables int    `gorm:"not null"`
}

type CalendarEntry struct {
	ID          uint   `gorm:"primaryKey"`
	Date        string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Kind        string `gorm:"not null;default:miscellaneous"`
	Colour      string
}

type BookingDAO struct {
	db *gorm.DB
}

func NewBookingDAO(db *gorm.DB) *BookingDAO {
	return &BookingDAO{
		db: db,
	}
}

func (d *BookingDAO) Insert(ctx context.Context, booking StandaloneBooking) (StandaloneBooking, error) {
	result := d.db.WithContext(ctx).Create(&booking)
	if result.Error != nil {
		return StandaloneBooking{}, result.Error
	}

	return booking, nil
}

func (d *BookingDAO) Update(ctx context.Context, booking StandaloneBooking) (StandaloneBooking, error) {
	result := d.db.WithContext(ctx).Save(&booking)
	if result.Error != nil {
		return StandaloneBooking{}, result.Error
	}

	return booking, nil
}

func (d *BookingDAO) FindByID(ctx context.Context, id uint) (StandaloneBooking, error) {
	var booking StandaloneBooking

	err := d.db.WithContext(ctx).First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StandaloneBooking{}, ErrBookingNotFound
		}

		return StandaloneBooking{}, err
	}

	return booking, nil
}

func (d *BookingDAO) FindAll(ctx context.Context) ([]StandaloneBooking, error) {
	var bookings []StandaloneBooking

	err := d.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("date asc, start_time asc, id asc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (d *BookingDAO) FindByDate(ctx context.Context, date string) ([]StandaloneBooking, error) {
	var bookings []StandaloneBooking

	err := d.db.WithContext(ctx).
		Where("date = ? AND is_deleted = ?", date, false).
		Order("start_time asc, id asc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (d *BookingDAO) FindDeleted(ctx context.Context) ([]StandaloneBooking, error) {
	var bookings []StandaloneBooking

	err := d.db.WithContext(ctx).
		Where("is_deleted = ?", true).
		Order("updated_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (d *BookingDAO) SoftDelete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&StandaloneBooking{}).
		Where("id = ?", id).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (d *BookingDAO) Restore(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&StandaloneBooking{}).
		Where("id = ?", id).
		Update("is_deleted", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (d *BookingDAO) PermanentlyDelete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&StandaloneBooking{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Operating hours.

func (d *BookingDAO) FindHoursForWeekday(ctx context.Context, dayOfWeek int) (OperatingHours, bool, error) {
	var hours OperatingHours

	err := d.db.WithContext(ctx).Where("day_of_week = ?", dayOfWeek).First(&hours).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OperatingHours{}, false, nil
		}

		return OperatingHours{}, false, err
	}

	return hours, true, nil
}

func (d *BookingDAO) FindAllHours(ctx context.Context) ([]OperatingHours, error) {
	var hours []OperatingHours

	err := d.db.WithContext(ctx).Order("day_of_week asc").Find(&hours).Error
	if err != nil {
		return nil, err
	}

	return hours, nil
}

func (d *BookingDAO) SaveHours(ctx context.Context, hours OperatingHours) (OperatingHours, error) {
	var existing OperatingHours

	err := d.db.WithContext(ctx).Where("day_of_week = ?", hours.DayOfWeek).First(&existing).Error
	switch {
	case err == nil:
		hours.ID = existing.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return OperatingHours{}, err
	}

	if err := d.db.WithContext(ctx).Save(&hours).Error; err != nil {
		return OperatingHours{}, err
	}

	return hours, nil
}

func (d *BookingDAO) FindHoursForDate(ctx context.Context, date string) (DateSpecificHours, bool, error) {
	var hours DateSpecificHours

	err := d.db.WithContext(ctx).Where("date = ?", date).First(&hours).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DateSpecificHours{}, false, nil
		}

		return DateSpecificHours{}, false, err
	}

	return hours, true, nil
}

func (d *BookingDAO) SaveDateHours(ctx context.Context, hours DateSpecificHours) (DateSpecificHours, error) {
	var existing DateSpecificHours

	err := d.db.WithContext(ctx).Where("date = ?", hours.Date).First(&existing).Error
	switch {
	case err == nil:
		hours.ID = existing.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return DateSpecificHours{}, err
	}

	if err := d.db.WithContext(ctx).Save(&hours).Error; err != nil {
		return DateSpecificHours{}, err
	}

	return hours, nil
}

func (d *BookingDAO) DeleteDateHours(ctx context.Context, date string) error {
	return d.db.WithContext(ctx).Where("date = ?", date).Delete(&DateSpecificHours{}).Error
}

// Capacity overrides.

func (d *BookingDAO) FindCapacityOverride(ctx context.Context, date string) (CapacityOverride, bool, error) {
	var override CapacityOverride

	err := d.db.WithContext(ctx).Where("date = ?", date).First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CapacityOverride{}, false, nil
		}

		return CapacityOverride{}, false, err
	}

	return override, true, nil
}

func (d *BookingDAO) SaveCapacityOverride(ctx context.Context, override CapacityOverride) (CapacityOverride, error) {
	var existing CapacityOverride

	err := d.db.WithContext(ctx).Where("date = ?", override.Date).First(&existing).Error
	switch {
	case err == nil:
		override.ID = existing.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return CapacityOverride{}, err
	}

	if err := d.db.WithContext(ctx).Save(&override).Error; err != nil {
		return CapacityOverride{}, err
	}

	return override, nil
}

func (d *BookingDAO) DeleteCapacityOverride(ctx context.Context, date string) error {
	return d.db.WithContext(ctx).Where("date = ?", date).Delete(&CapacityOverride{}).Error
}

// Calendar entries.

func (d *BookingDAO) InsertCalendarEntry(ctx context.Context, entry CalendarEntry) (CalendarEntry, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		return CalendarEntry{}, result.Error
	}

	return entry, nil
}

func (d *BookingDAO) UpdateCalendarEntry(ctx context.Context, entry CalendarEntry) (CalendarEntry, error) {
	result := d.db.WithContext(ctx).Save(&entry)
	if result.Error != nil {
		return CalendarEntry{}, result.Error
	}

	return entry, nil
}

func (d *BookingDAO) DeleteCalendarEntry(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&CalendarEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCalendarEntryNotFound
	}

	return nil
}

// FindCalendarEntriesForMonth returns entries whose date falls in the given
// YYYY-MM month.
func (d *BookingDAO) FindCalendarEntriesForMonth(ctx context.Context, month string) ([]CalendarEntry, error) {
	var entries []CalendarEntry

	err := d.db.WithContext(ctx).
		Where("date LIKE ?", month+"-%").
		Order("date asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
