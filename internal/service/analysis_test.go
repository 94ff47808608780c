package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"venuedesk/internal/domain"
)

// seedCompletedEvent creates a completed event dated daysAgo before now with
// an analysis carrying the given revenue and cost.
func seedCompletedEvent(t *testing.T, env *testEnv, now time.Time, name string, daysAgo int, revenue, cost float64) domain.Event {
	t.Helper()
	ctx := context.Background()

	event := env.mustCreateEvent(t, domain.Event{
		Name:        name,
		Date:        now.AddDate(0, 0, -daysAgo).Format(domain.DateLayout),
		IsCompleted: true,
	})

	_, err := env.events.SaveAnalysis(ctx, domain.EventAnalysis{
		EventID:              event.ID,
		ActualAttendance:     20,
		AttendeeSatisfaction: 8,
		EventSmoothness:      6,
		RevenueTotal:         revenue,
		CostTotal:            cost,
	})
	require.NoError(t, err)

	return event
}

func TestReportWindows(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalysisEngine(env.events)
	ctx := context.Background()

	now, err := time.Parse(domain.DateLayout, "2026-08-31")
	require.NoError(t, err)

	for _, seed := range []struct {
		name    string
		daysAgo int
	}{
		{"Recent", 3},
		{"Last fortnight", 10},
		{"Last quarter", 40},
		{"Months back", 100},
		{"Ancient", 400},
	} {
		seedCompletedEvent(t, env, now, seed.name, seed.daysAgo, 100, 40)
	}

	report, err := svc.reportAt(ctx, domain.WindowLast30Days, now)
	require.NoError(t, err)
	require.Equal(t, 2, report.KPIs.CompletedEvents)
	require.InDelta(t, 200.0, report.KPIs.TotalRevenue, 0.001)
	require.InDelta(t, 120.0, report.KPIs.TotalProfit, 0.001)
	require.InDelta(t, 100.0, report.KPIs.MeanRevenue, 0.001)
	require.Len(t, report.TimeSeries, 2)

	report, err = svc.reportAt(ctx, domain.WindowAllTime, now)
	require.NoError(t, err)
	require.Equal(t, 5, report.KPIs.CompletedEvents)
	require.InDelta(t, 500.0, report.KPIs.TotalRevenue, 0.001)
	require.Equal(t, 100, report.KPIs.TotalAttendance)
	require.InDelta(t, 14.0, report.KPIs.MeanSuccessScore, 0.001)
	require.InDelta(t, 5.0, report.KPIs.RevenuePerAttendee, 0.001)

	// The time series comes back oldest first.
	require.Len(t, report.TimeSeries, 5)
	require.Equal(t, now.AddDate(0, 0, -400).Format(domain.DateLayout), report.TimeSeries[0].Date)
}

func TestReportCancellationRate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalysisEngine(env.events)
	ctx := context.Background()

	now, err := time.Parse(domain.DateLayout, "2026-08-31")
	require.NoError(t, err)

	seedCompletedEvent(t, env, now, "Ran fine", 5, 100, 40)
	seedCompletedEvent(t, env, now, "Also fine", 6, 100, 40)

	cancelled := env.mustCreateEvent(t, domain.Event{
		Name: "Called off", Date: now.AddDate(0, 0, -4).Format(domain.DateLayout),
	})
	cancelled.IsCancelled = true
	_, err = env.events.UpdateEvent(ctx, cancelled)
	require.NoError(t, err)

	report, err := svc.reportAt(ctx, domain.WindowLast30Days, now)
	require.NoError(t, err)
	require.Equal(t, 3, report.KPIs.TotalEvents)
	require.Equal(t, 1, report.KPIs.CancelledEvents)
	require.InDelta(t, 100.0/3, report.KPIs.CancellationRate, 0.001)
}

func TestReportEventsWithoutAnalysisContributeZero(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalysisEngine(env.events)
	ctx := context.Background()

	now, err := time.Parse(domain.DateLayout, "2026-08-31")
	require.NoError(t, err)

	seedCompletedEvent(t, env, now, "Analysed", 3, 100, 40)

	// Completed but never written up; its ticket sales must not leak into the
	// financial totals.
	bare := env.mustCreateEvent(t, domain.Event{
		Name:        "No record",
		Date:        now.AddDate(0, 0, -5).Format(domain.DateLayout),
		IsCompleted: true,
	})

	tier, err := env.events.AddTicketTier(ctx, domain.TicketTier{
		ParentID: bare.ID, Name: "Standard", Price: 15, QuantityAvailable: 10,
	})
	require.NoError(t, err)
	_, err = env.events.RecordTierSale(ctx, tier.ID, 4)
	require.NoError(t, err)

	report, err := svc.reportAt(ctx, domain.WindowLast30Days, now)
	require.NoError(t, err)
	require.Equal(t, 2, report.KPIs.CompletedEvents)
	require.InDelta(t, 100.0, report.KPIs.TotalRevenue, 0.001)

	// Means run over the analysed event alone.
	require.InDelta(t, 100.0, report.KPIs.MeanRevenue, 0.001)
	require.InDelta(t, 20.0, report.KPIs.MeanAttendance, 0.001)
	require.InDelta(t, 8.0, report.KPIs.MeanSatisfaction, 0.001)
}

func TestReportUtilizationSumsTierAvailability(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalysisEngine(env.events)
	ctx := context.Background()

	now, err := time.Parse(domain.DateLayout, "2026-08-31")
	require.NoError(t, err)

	// The denormalized tickets-available field lags behind the tiers here.
	event := seedCompletedEvent(t, env, now, "Stale field", 2, 100, 40)

	_, err = env.events.AddTicketTier(ctx, domain.TicketTier{
		ParentID: event.ID, Name: "Standard", Price: 10, QuantityAvailable: 20,
	})
	require.NoError(t, err)

	_, err = env.events.SaveAnalysis(ctx, domain.EventAnalysis{
		EventID: event.ID, ActualAttendance: 10, AttendeeSatisfaction: 7, EventSmoothness: 7,
	})
	require.NoError(t, err)

	report, err := svc.reportAt(ctx, domain.WindowLast7Days, now)
	require.NoError(t, err)
	require.Len(t, report.TopUtilization, 1)
	require.Equal(t, 20, report.TopUtilization[0].TicketsAvailable)
	require.InDelta(t, 50.0, report.TopUtilization[0].Utilization, 0.001)
}

func TestReportRollupTables(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalysisEngine(env.events)
	ctx := context.Background()

	now, err := time.Parse(domain.DateLayout, "2026-08-31")
	require.NoError(t, err)

	tournament, err := env.catalog.GetOrCreateEventType(ctx, "Tournament")
	require.NoError(t, err)
	casual, err := env.catalog.GetOrCreateEventType(ctx, "Casual Play")
	require.NoError(t, err)

	big := env.mustCreateEvent(t, domain.Event{
		Name: "Big tournament", Date: now.AddDate(0, 0, -2).Format(domain.DateLayout),
		EventTypeID: &tournament.ID, IsCompleted: true, TicketsAvailable: 32,
	})
	small := env.mustCreateEvent(t, domain.Event{
		Name: "Small casual", Date: now.AddDate(0, 0, -3).Format(domain.DateLayout),
		EventTypeID: &casual.ID, IsCompleted: true, TicketsAvailable: 10,
	})

	_, err = env.events.SaveAnalysis(ctx, domain.EventAnalysis{
		EventID: big.ID, ActualAttendance: 28, AttendeeSatisfaction: 9, EventSmoothness: 8,
		RevenueTotal: 400, CostTotal: 150,
	})
	require.NoError(t, err)
	_, err = env.events.SaveAnalysis(ctx, domain.EventAnalysis{
		EventID: small.ID, ActualAttendance: 6, AttendeeSatisfaction: 7, EventSmoothness: 7,
		RevenueTotal: 60, CostTotal: 20,
	})
	require.NoError(t, err)

	prizeCategory, err := env.catalog.GetOrCreateCostCategory(ctx, "Prizes")
	require.NoError(t, err)

	_, err = env.events.AddCostEntry(ctx, domain.CostEntry{
		EventID: big.ID, CostCategoryID: &prizeCategory.ID, Description: "Boosters", Amount: 120,
	})
	require.NoError(t, err)
	_, err = env.events.AddCostEntry(ctx, domain.CostEntry{
		EventID: small.ID, CostCategoryID: &prizeCategory.ID, Description: "Promos", Amount: 20,
	})
	require.NoError(t, err)

	_, err = env.events.AddTicketTier(ctx, domain.TicketTier{
		ParentID: big.ID, Name: "Standard", Price: 12, QuantityAvailable: 32, QuantitySold: 28,
	})
	require.NoError(t, err)
	_, err = env.events.AddTicketTier(ctx, domain.TicketTier{
		ParentID: small.ID, Name: "Casual", Price: 10, QuantityAvailable: 10, QuantitySold: 6,
	})
	require.NoError(t, err)

	report, err := svc.reportAt(ctx, domain.WindowLast7Days, now)
	require.NoError(t, err)

	require.Len(t, report.PerType, 2)
	require.Equal(t, "Tournament", report.PerType[0].TypeName) // highest revenue first
	require.Equal(t, 1, report.PerType[0].EventCount)
	require.InDelta(t, 400.0, report.PerType[0].TotalRevenue, 0.001)

	require.Len(t, report.TopUtilization, 2)
	require.Equal(t, big.ID, report.TopUtilization[0].EventID)
	require.InDelta(t, 87.5, report.TopUtilization[0].Utilization, 0.001) // 28 of 32
	require.InDelta(t, 60.0, report.TopUtilization[1].Utilization, 0.001) // 6 of 10

	require.Len(t, report.TopRevenue, 2)
	require.Equal(t, "Big tournament", report.TopRevenue[0].EventName)

	require.Len(t, report.CostBreakdown, 1)
	require.Equal(t, "Prizes", report.CostBreakdown[0].CategoryName)
	require.Equal(t, 2, report.CostBreakdown[0].EntryCount)
	require.InDelta(t, 140.0, report.CostBreakdown[0].TotalAmount, 0.001)
	require.InDelta(t, 70.0, report.CostBreakdown[0].MeanAmount, 0.001)

	require.Len(t, report.TierPerformance, 2)
	require.Equal(t, "Standard", report.TierPerformance[0].TierName) // 336 revenue
	require.Equal(t, 28, report.TierPerformance[0].TotalSold)
	require.InDelta(t, 87.5, report.TierPerformance[0].MeanSellThrough, 0.001)
	require.Equal(t, "Casual", report.TierPerformance[1].TierName)
	require.InDelta(t, 60.0, report.TierPerformance[1].MeanSellThrough, 0.001)
}
