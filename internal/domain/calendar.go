package domain

import validation "github.com/go-ozzo/ozzo-validation"

type CalendarEntryKind string

const (
	CalendarPublicHoliday CalendarEntryKind = "public-holiday"
	CalendarMiscellaneous CalendarEntryKind = "miscellaneous"
)

// CalendarEntry is a manual annotation on the month view, independent of
// events.
type CalendarEntry struct {
	ID          uint
	Date        string // YYYY-MM-DD
	Title       string
	Description string
	Kind        CalendarEntryKind
	Colour      string
}

func (c *CalendarEntry) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Date, validation.Required, validation.Match(dateRe).Error("must be YYYY-MM-DD")),
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Kind, validation.Required, validation.In(CalendarPublicHoliday, CalendarMiscellaneous)),
	)
}
