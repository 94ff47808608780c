package domain

// ReportingWindow restricts analysis rollups to events whose date falls
// within the trailing window.
type ReportingWindow string

const (
	WindowLast7Days   ReportingWindow = "Last 7 Days"
	WindowLast30Days  ReportingWindow = "Last 30 Days"
	WindowLast90Days  ReportingWindow = "Last 90 Days"
	WindowLast6Months ReportingWindow = "Last 6 Months"
	WindowLastYear    ReportingWindow = "Last Year"
	WindowAllTime     ReportingWindow = "All Time"
)

// Days returns the window length in days, or 0 for all time.
func (w ReportingWindow) Days() int {
	switch w {
	case WindowLast7Days:
		return 7
	case WindowLast30Days:
		return 30
	case WindowLast90Days:
		return 90
	case WindowLast6Months:
		return 182
	case WindowLastYear:
		return 365
	default:
		return 0
	}
}

type KPISummary struct {
	TotalEvents      int
	CompletedEvents  int
	CancelledEvents  int
	CancellationRate float64

	TotalAttendance int
	MeanAttendance  float64

	TotalRevenue       float64
	MeanRevenue        float64
	TotalCost          float64
	MeanCost           float64
	TotalProfit        float64
	MeanProfit         float64
	RevenuePerAttendee float64

	MeanSatisfaction float64
	MeanSmoothness   float64
	MeanSuccessScore float64
}

type TypeBreakdown struct {
	TypeName         string
	EventCount       int
	TotalAttendance  int
	MeanAttendance   float64
	TotalRevenue     float64
	MeanRevenue      float64
	MeanSatisfaction float64
}

type CapacityRow struct {
	EventID          uint
	EventName        string
	Date             string
	Attendance       int
	TicketsAvailable int
	Utilization      float64 // percent
}

type TopEventRow struct {
	EventID      uint
	EventName    string
	Date         string
	TypeName     string
	Attendance   int
	Revenue      float64
	Profit       float64
	Satisfaction float64
	Smoothness   float64
	SuccessScore float64
}

type CostBreakdownRow struct {
	CategoryName string
	EntryCount   int
	TotalAmount  float64
	MeanAmount   float64
}

type TierPerformanceRow struct {
	TierName        string
	EventsUsed      int
	TotalSold       int
	MeanPrice       float64
	TotalRevenue    float64
	MeanSellThrough float64 // percent
}

type TimeSeriesPoint struct {
	Date         string
	Attendance   int
	Revenue      float64
	Satisfaction float64
	Smoothness   float64
	SuccessScore float64
}

// AnalysisReport is the full read-only rollup for one reporting window.
type AnalysisReport struct {
	Window          ReportingWindow
	KPIs            KPISummary
	PerType         []TypeBreakdown
	TopUtilization  []CapacityRow
	TopRevenue      []TopEventRow
	CostBreakdown   []CostBreakdownRow
	TierPerformance []TierPerformanceRow
	TimeSeries      []TimeSeriesPoint
}
