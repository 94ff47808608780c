package dao

import (
	"errors"

	"gorm.io/gorm"
)

// InitTables performs the additive schema bootstrap. AutoMigrate only creates
// missing tables and columns, so re-running it on an existing store is safe.
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&EventType{},
		&PlayingFormat{},
		&PairingMethod{},
		&PairingApp{},
		&ChecklistCategory{},
		&CostCategory{},
		&Setting{},
		&Template{},
		&TemplateChecklistItem{},
		&TemplateTicketTier{},
		&TemplatePrizeItem{},
		&TemplateNote{},
		&TemplateFeedback{},
		&Event{},
		&EventChecklistItem{},
		&EventTicketTier{},
		&EventPrizeItem{},
		&EventNote{},
		&LabourEntry{},
		&EventAnalysis{},
		&EventPlayer{},
		&EventCost{},
		&StandaloneBooking{},
		&OperatingHours{},
		&DateSpecificHours{},
		&CapacityOverride{},
		&CalendarEntry{},
		&HelpContent{},
		&HelpRevision{},
	)
}

const (
	defaultOpenTime  = "10:00"
	defaultCloseTime = "22:00"
)

// SeedDefaults inserts the rows a fresh store needs: reference enumerations,
// one operating-hours row per weekday and the recognized settings keys.
// Existing rows are left alone.
func SeedDefaults(db *gorm.DB) error {
	for _, name := range []string{"Tournament", "League Night", "Casual Play", "Learn to Play"} {
		if err := seedName(db, &EventType{}, name); err != nil {
			return err
		}
	}

	for _, name := range []string{"Swiss", "Single Elimination", "Round Robin", "Free Play"} {
		if err := seedName(db, &PlayingFormat{}, name); err != nil {
			return err
		}
	}

	for _, name := range []string{"Manual", "App"} {
		if err := seedName(db, &PairingMethod{}, name); err != nil {
			return err
		}
	}

	// Pairing apps are not seeded: the list starts empty and grows through
	// get-or-create as the operator names the apps they use.

	for _, name := range []string{"Setup", "Promotion", "On the Day", "Wrap Up"} {
		if err := seedName(db, &ChecklistCategory{}, name); err != nil {
			return err
		}
	}

	for _, name := range []string{"Prizes", "Materials", "Labour", "Venue", "Other"} {
		if err := seedName(db, &CostCategory{}, name); err != nil {
			return err
		}
	}

	open, close := defaultOpenTime, defaultCloseTime
	for day := 0; day < 7; day++ {
		var existing OperatingHours

		err := db.Where("day_of_week = ?", day).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row := OperatingHours{DayOfWeek: day, IsOpen: true, OpenTime: &open, CloseTime: &close}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	defaults := map[string]string{
		"total_tables_available":            "10",
		"default_setup_padding_minutes":     "30",
		"default_breakdown_padding_minutes": "15",
		"weekday_before_6pm_rate":           "25.0",
		"weekday_after_6pm_rate":            "28.0",
		"saturday_rate":                     "30.0",
		"sunday_rate":                       "35.0",
		"public_holiday_rate":               "50.0",
	}
	for key, value := range defaults {
		var existing Setting

		err := db.First(&existing, "key = ?", key).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&Setting{Key: key, Value: value}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}

func seedName(db *gorm.DB, model interface{}, name string) error {
	var count int64

	if err := db.Model(model).Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Model(model).Create(map[string]interface{}{"name": name}).Error
}
