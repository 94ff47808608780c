package domain

import "time"

// Template is a reusable blueprint that mirrors an event's reference fields
// and owns parallel child collections.
type Template struct {
	ID uint

	Name        string
	Description string

	EventTypeID     *uint
	EventTypeName   string
	PlayingFormatID *uint
	PairingMethodID *uint
	PairingAppID    *uint

	Capacity         int
	TicketsAvailable int
	TablesBooked     int
	Rounds           int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateFeedback is one row of the append-only log of notes promoted from
// derived events back to their template.
type TemplateFeedback struct {
	ID           uint
	TemplateID   uint
	EventID      uint
	FeedbackText string
	CreatedAt    time.Time
}
