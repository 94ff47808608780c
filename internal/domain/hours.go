package domain

import validation "github.com/go-ozzo/ozzo-validation"

// OperatingHours is the default open/close window for one day of the week
// (0 = Sunday .. 6 = Saturday, matching time.Weekday).
type OperatingHours struct {
	ID        uint
	DayOfWeek int
	IsOpen    bool
	OpenTime  *string // HH:MM
	CloseTime *string
}

func (h *OperatingHours) Validate() error {
	if err := validation.ValidateStruct(
		h,
		validation.Field(&h.DayOfWeek, validation.Min(0), validation.Max(6)),
	); err != nil {
		return err
	}

	return validateOpenWindow(h.IsOpen, h.OpenTime, h.CloseTime)
}

// DateSpecificHours overrides OperatingHours for one calendar date.
type DateSpecificHours struct {
	ID        uint
	Date      string // YYYY-MM-DD
	IsOpen    bool
	OpenTime  *string
	CloseTime *string
	Reason    string
}

func (h *DateSpecificHours) Validate() error {
	if err := validation.ValidateStruct(
		h,
		validation.Field(&h.Date, validation.Required, validation.Match(dateRe).Error("must be YYYY-MM-DD")),
	); err != nil {
		return err
	}

	return validateOpenWindow(h.IsOpen, h.OpenTime, h.CloseTime)
}

// EffectiveHours is the resolved open/close window for a date, after the
// override → weekday-default → built-in fallback lookup.
type EffectiveHours struct {
	Date      string
	IsOpen    bool
	OpenTime  string
	CloseTime string
	Reason    string // set when a per-date override supplied one
}

// CapacityOverride replaces the global total-tables setting on one date.
type CapacityOverride struct {
	ID          uint
	Date        string
	TotalTables int
}

func (c *CapacityOverride) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Date, validation.Required, validation.Match(dateRe).Error("must be YYYY-MM-DD")),
		validation.Field(&c.TotalTables, validation.Min(0)),
	)
}
