package domain

type ScheduleItemType string

const (
	ItemEvent   ScheduleItemType = "event"
	ItemBooking ScheduleItemType = "booking"
)

// ScheduleItem is one entry of a day schedule: an event or a standalone
// booking, reduced to what the scheduling views need.
type ScheduleItem struct {
	Type         ScheduleItemType
	ID           uint
	Name         string
	StartTime    *string
	EndTime      *string
	TablesBooked int
}

// Scheduled reports whether the item has a concrete time window.
func (i *ScheduleItem) Scheduled() bool {
	return i.StartTime != nil && i.EndTime != nil
}

// DaySchedule combines the events, bookings, effective hours and capacity of
// one calendar date.
type DaySchedule struct {
	Date  string
	Hours EffectiveHours

	// Scheduled items ordered by start time; Unscheduled items lack times.
	Scheduled   []ScheduleItem
	Unscheduled []ScheduleItem

	// ConflictingEventIDs holds every event whose window overlaps another
	// scheduled event's. Bookings are soft reservations and never flagged.
	ConflictingEventIDs []uint

	ScheduledTables   int
	UnscheduledTables int
	EffectiveCapacity int
	OverBooked        bool
}

// AddItem places the item in the scheduled or unscheduled list and
// accumulates its table count.
func (d *DaySchedule) AddItem(item ScheduleItem) {
	if item.Scheduled() {
		d.Scheduled = append(d.Scheduled, item)
		d.ScheduledTables += item.TablesBooked
	} else {
		d.Unscheduled = append(d.Unscheduled, item)
		d.UnscheduledTables += item.TablesBooked
	}
}

// WeekDay is one column of the seven-day overview starting from Monday.
type WeekDay struct {
	Date              string
	ScheduledTables   int
	UnscheduledTables int
	EffectiveCapacity int
	EventCount        int
}
