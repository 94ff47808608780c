package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// StandaloneBooking is a table reservation that is not tied to an event.
type StandaloneBooking struct {
	ID           uint
	Name         string
	Description  string
	Date         string // YYYY-MM-DD
	StartTime    *string
	EndTime      *string
	TablesBooked int
	Notes        string
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (b *StandaloneBooking) Validate() error {
	if err := validation.ValidateStruct(
		b,
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.Date, validation.Required, validation.Match(dateRe).Error("must be YYYY-MM-DD")),
		validation.Field(&b.TablesBooked, validation.Min(1)),
	); err != nil {
		return err
	}

	return validateTimeWindow(b.StartTime, b.EndTime)
}

// Scheduled reports whether the booking has a concrete time window.
func (b *StandaloneBooking) Scheduled() bool {
	return b.StartTime != nil && b.EndTime != nil
}
