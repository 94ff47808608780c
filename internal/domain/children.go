package domain

import "time"

type ChecklistItem struct {
	ID           uint
	ParentID     uint // event or template id, depending on the collection
	CategoryID   *uint
	CategoryName string
	Description  string
	SortOrder    int
	IsCompleted  bool    // event variant only
	DueDate      *string // event variant only, YYYY-MM-DD
	IncludeInPDF bool
	ShowOnDashboard bool
}

type TicketTier struct {
	ID                uint
	ParentID          uint
	Name              string
	Price             float64
	QuantityAvailable int
	QuantitySold      int // event variant only
}

// Revenue is the tier's contribution to event revenue.
func (t *TicketTier) Revenue() float64 {
	return t.Price * float64(t.QuantitySold)
}

// SellThrough is the sold percentage of the available quantity, or zero when
// nothing was available.
func (t *TicketTier) SellThrough() float64 {
	if t.QuantityAvailable <= 0 {
		return 0
	}

	return float64(t.QuantitySold) / float64(t.QuantityAvailable) * 100
}

type PrizeKind string

const (
	KindPrize    PrizeKind = "prize"
	KindMaterial PrizeKind = "material"
)

type PrizeItem struct {
	ID                uint
	ParentID          uint
	Description       string
	Kind              PrizeKind
	Quantity          int
	QuantityPerPlayer int
	Recipients        int
	TotalQuantity     int
	CostPerItem       float64
	TotalCost         float64
	Supplier          string
	Received          bool // event variant only
	QuantityHandedOut int  // event variant only; may exceed Quantity ("extras given")
}

// Recompute refreshes the denormalized arithmetic fields from their inputs.
// Every write path calls this so stored values stay authoritative.
func (p *PrizeItem) Recompute() {
	if p.Recipients < 1 {
		p.Recipients = 1
	}

	p.TotalQuantity = p.QuantityPerPlayer * p.Recipients
	p.TotalCost = float64(p.TotalQuantity) * p.CostPerItem
}

type Note struct {
	ID                uint
	ParentID          uint
	Text              string
	ShowInNotesTab    bool
	IncludeInPrintout bool
	SendToTemplate    bool // event variant only
	CreatedAt         time.Time
}

type RateType string

const (
	RateWeekday          RateType = "weekday"
	RatePublicHoliday    RateType = "public-holiday"
	RateSaturday         RateType = "saturday"
	RateSunday           RateType = "sunday"
	RateWeekdayBefore6pm RateType = "weekday-before-6pm"
	RateWeekdayAfter6pm  RateType = "weekday-after-6pm"
)

type WorkStatus string

const (
	WorkFull    WorkStatus = "full"
	WorkPartial WorkStatus = "partial"
)

type LabourEntry struct {
	ID          uint
	EventID     uint
	StaffName   string
	HoursWorked float64
	RateType    RateType
	HourlyRate  float64
	WorkStatus  WorkStatus
	StaffCount  int
	TotalCost   float64
}

// Recompute derives TotalCost from the other fields.
func (l *LabourEntry) Recompute() {
	if l.StaffCount < 1 {
		l.StaffCount = 1
	}

	l.TotalCost = l.HoursWorked * l.HourlyRate * float64(l.StaffCount)
}

type EventAnalysis struct {
	ID                   uint
	EventID              uint
	ActualAttendance     int
	AttendeeSatisfaction float64
	EventSmoothness      float64
	OverallSuccessScore  float64
	RevenueTotal         float64
	CostTotal            float64
	ProfitMargin         float64
	Notes                string
}

// Recompute derives the success score (additive, out of 20) and the profit
// margin from their inputs.
func (a *EventAnalysis) Recompute() {
	a.OverallSuccessScore = a.AttendeeSatisfaction + a.EventSmoothness
	a.ProfitMargin = a.RevenueTotal - a.CostTotal
}

// CostEntry is one row of the per-event cost ledger, classified by the
// cost-category enumeration.
type CostEntry struct {
	ID             uint
	EventID        uint
	CostCategoryID *uint
	CategoryName   string
	Description    string
	Amount         float64
}
