package domain

import "time"

type Event struct {
	ID uint

	Name        string
	Date        string // YYYY-MM-DD
	StartTime   *string
	EndTime     *string
	Description string

	EventTypeID     *uint
	EventTypeName   string
	PlayingFormatID *uint
	PlayingFormat   string
	PairingMethodID *uint
	PairingMethod   string
	PairingAppID    *uint
	PairingApp      string
	TemplateID      *uint

	Capacity         int
	TicketsAvailable int
	TablesBooked     int
	Rounds           int

	IsOrganised  bool
	TicketsLive  bool
	IsAdvertised bool
	IsCompleted  bool

	IsCancelled        bool
	CancellationDate   *string
	CancellationReason string

	IsDeleted bool
	DeletedAt *time.Time

	IncludeAttendeesInPrintout bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveOnSchedule reports whether the event should appear on calendars,
// the dashboard and the scheduling views.
func (e *Event) ActiveOnSchedule() bool {
	return !e.IsDeleted && !e.IsCancelled
}

// Scheduled reports whether the event has a concrete time window.
func (e *Event) Scheduled() bool {
	return e.StartTime != nil && e.EndTime != nil
}

type Player struct {
	ID      uint
	EventID uint
	Name    string
	Contact string
}
