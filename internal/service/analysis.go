package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository"
)

const topRowLimit = 10

type AnalysisStore interface {
	GetCompletedEvents(ctx context.Context, cutoff string) ([]repository.AnalysisSource, error)
	CountCancelledEvents(ctx context.Context, cutoff string) (int64, error)
}

// AnalysisEngine builds read-only rollups over completed events. Events whose
// post-event record was never filled in contribute zeros to the sums and are
// left out of the means, so a half-filled history does not drag averages down.
type AnalysisEngine struct {
	store AnalysisStore
}

func NewAnalysisEngine(store AnalysisStore) *AnalysisEngine {
	return &AnalysisEngine{
		store: store,
	}
}

// Report builds the full rollup for one reporting window, measured back from
// today.
func (s *AnalysisEngine) Report(ctx context.Context, window domain.ReportingWindow) (domain.AnalysisReport, error) {
	return s.reportAt(ctx, window, time.Now())
}

func (s *AnalysisEngine) reportAt(ctx context.Context, window domain.ReportingWindow, now time.Time) (domain.AnalysisReport, error) {
	cutoff := ""
	if days := window.Days(); days > 0 {
		cutoff = now.AddDate(0, 0, -days).Format(domain.DateLayout)
	}

	sources, err := s.store.GetCompletedEvents(ctx, cutoff)
	if err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("s.store.GetCompletedEvents -> %w", err)
	}

	cancelled, err := s.store.CountCancelledEvents(ctx, cutoff)
	if err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("s.store.CountCancelledEvents -> %w", err)
	}

	report := domain.AnalysisReport{
		Window:          window,
		KPIs:            buildKPIs(sources, int(cancelled)),
		PerType:         buildTypeBreakdown(sources),
		TopUtilization:  buildTopUtilization(sources),
		TopRevenue:      buildTopRevenue(sources),
		CostBreakdown:   buildCostBreakdown(sources),
		TierPerformance: buildTierPerformance(sources),
		TimeSeries:      buildTimeSeries(sources),
	}

	return report, nil
}

// eventRevenue is the recorded analysis total, zero when the post-event
// record was never filled in.
func eventRevenue(src repository.AnalysisSource) float64 {
	if src.Analysis == nil {
		return 0
	}

	return src.Analysis.RevenueTotal
}

func buildKPIs(sources []repository.AnalysisSource, cancelled int) domain.KPISummary {
	kpis := domain.KPISummary{
		CompletedEvents: len(sources),
		CancelledEvents: cancelled,
		TotalEvents:     len(sources) + cancelled,
	}

	var analysed int
	var satisfaction, smoothness, success float64

	for _, src := range sources {
		revenue := eventRevenue(src)
		kpis.TotalRevenue += revenue

		if src.Analysis == nil {
			continue
		}

		analysed++
		kpis.TotalAttendance += src.Analysis.ActualAttendance
		kpis.TotalCost += src.Analysis.CostTotal
		kpis.TotalProfit += src.Analysis.ProfitMargin
		satisfaction += src.Analysis.AttendeeSatisfaction
		smoothness += src.Analysis.EventSmoothness
		success += src.Analysis.OverallSuccessScore
	}

	if kpis.TotalEvents > 0 {
		kpis.CancellationRate = float64(cancelled) / float64(kpis.TotalEvents) * 100
	}

	if analysed > 0 {
		n := float64(analysed)
		kpis.MeanAttendance = float64(kpis.TotalAttendance) / n
		kpis.MeanRevenue = kpis.TotalRevenue / n
		kpis.MeanCost = kpis.TotalCost / n
		kpis.MeanProfit = kpis.TotalProfit / n
		kpis.MeanSatisfaction = satisfaction / n
		kpis.MeanSmoothness = smoothness / n
		kpis.MeanSuccessScore = success / n
	}

	if kpis.TotalAttendance > 0 {
		kpis.RevenuePerAttendee = kpis.TotalRevenue / float64(kpis.TotalAttendance)
	}

	return kpis
}

func buildTypeBreakdown(sources []repository.AnalysisSource) []domain.TypeBreakdown {
	type typeAccum struct {
		row          domain.TypeBreakdown
		analysed     int
		satisfaction float64
	}

	accums := make(map[string]*typeAccum)
	for _, src := range sources {
		name := src.TypeName
		if name == "" {
			name = "Unassigned"
		}

		accum, ok := accums[name]
		if !ok {
			accum = &typeAccum{row: domain.TypeBreakdown{TypeName: name}}
			accums[name] = accum
		}

		accum.row.EventCount++
		accum.row.TotalRevenue += eventRevenue(src)

		if src.Analysis != nil {
			accum.analysed++
			accum.row.TotalAttendance += src.Analysis.ActualAttendance
			accum.satisfaction += src.Analysis.AttendeeSatisfaction
		}
	}

	rows := make([]domain.TypeBreakdown, 0, len(accums))
	for _, accum := range accums {
		row := accum.row
		if accum.analysed > 0 {
			n := float64(accum.analysed)
			row.MeanAttendance = float64(row.TotalAttendance) / n
			row.MeanRevenue = row.TotalRevenue / n
			row.MeanSatisfaction = accum.satisfaction / n
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenue != rows[j].TotalRevenue {
			return rows[i].TotalRevenue > rows[j].TotalRevenue
		}
		return rows[i].TypeName < rows[j].TypeName
	})

	return rows
}

func buildTopUtilization(sources []repository.AnalysisSource) []domain.CapacityRow {
	var rows []domain.CapacityRow
	for _, src := range sources {
		if src.Analysis == nil {
			continue
		}

		// The denominator is the tier sum, not the denormalized event field.
		var available int
		for i := range src.Tiers {
			available += src.Tiers[i].QuantityAvailable
		}
		if available <= 0 {
			continue
		}

		rows = append(rows, domain.CapacityRow{
			EventID:          src.Event.ID,
			EventName:        src.Event.Name,
			Date:             src.Event.Date,
			Attendance:       src.Analysis.ActualAttendance,
			TicketsAvailable: available,
			Utilization:      float64(src.Analysis.ActualAttendance) / float64(available) * 100,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Utilization > rows[j].Utilization
	})

	if len(rows) > topRowLimit {
		rows = rows[:topRowLimit]
	}

	return rows
}

func buildTopRevenue(sources []repository.AnalysisSource) []domain.TopEventRow {
	rows := make([]domain.TopEventRow, 0, len(sources))
	for _, src := range sources {
		row := domain.TopEventRow{
			EventID:   src.Event.ID,
			EventName: src.Event.Name,
			Date:      src.Event.Date,
			TypeName:  src.TypeName,
			Revenue:   eventRevenue(src),
		}

		if src.Analysis != nil {
			row.Attendance = src.Analysis.ActualAttendance
			row.Profit = src.Analysis.ProfitMargin
			row.Satisfaction = src.Analysis.AttendeeSatisfaction
			row.Smoothness = src.Analysis.EventSmoothness
			row.SuccessScore = src.Analysis.OverallSuccessScore
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Revenue > rows[j].Revenue
	})

	if len(rows) > topRowLimit {
		rows = rows[:topRowLimit]
	}

	return rows
}

func buildCostBreakdown(sources []repository.AnalysisSource) []domain.CostBreakdownRow {
	accums := make(map[string]*domain.CostBreakdownRow)
	for _, src := range sources {
		for _, entry := range src.Costs {
			name := entry.CategoryName
			if name == "" {
				name = "Uncategorised"
			}

			row, ok := accums[name]
			if !ok {
				row = &domain.CostBreakdownRow{CategoryName: name}
				accums[name] = row
			}

			row.EntryCount++
			row.TotalAmount += entry.Amount
		}
	}

	rows := make([]domain.CostBreakdownRow, 0, len(accums))
	for _, row := range accums {
		row.MeanAmount = row.TotalAmount / float64(row.EntryCount)
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalAmount != rows[j].TotalAmount {
			return rows[i].TotalAmount > rows[j].TotalAmount
		}
		return rows[i].CategoryName < rows[j].CategoryName
	})

	return rows
}

func buildTierPerformance(sources []repository.AnalysisSource) []domain.TierPerformanceRow {
	type tierAccum struct {
		row         domain.TierPerformanceRow
		priceSum    float64
		sellThrough float64
		count       int
		sellCount   int
	}

	accums := make(map[string]*tierAccum)
	for _, src := range sources {
		for i := range src.Tiers {
			tier := src.Tiers[i]
			accum, ok := accums[tier.Name]
			if !ok {
				accum = &tierAccum{row: domain.TierPerformanceRow{TierName: tier.Name}}
				accums[tier.Name] = accum
			}

			accum.count++
			accum.row.EventsUsed++
			accum.row.TotalSold += tier.QuantitySold
			accum.row.TotalRevenue += tier.Revenue()
			accum.priceSum += tier.Price
			if tier.QuantityAvailable > 0 {
				accum.sellCount++
				accum.sellThrough += tier.SellThrough()
			}
		}
	}

	rows := make([]domain.TierPerformanceRow, 0, len(accums))
	for _, accum := range accums {
		row := accum.row
		row.MeanPrice = accum.priceSum / float64(accum.count)
		if accum.sellCount > 0 {
			row.MeanSellThrough = accum.sellThrough / float64(accum.sellCount)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenue != rows[j].TotalRevenue {
			return rows[i].TotalRevenue > rows[j].TotalRevenue
		}
		return rows[i].TierName < rows[j].TierName
	})

	return rows
}

// buildTimeSeries keeps one point per completed event in date order, feeding
// the trend charts.
func buildTimeSeries(sources []repository.AnalysisSource) []domain.TimeSeriesPoint {
	points := make([]domain.TimeSeriesPoint, 0, len(sources))
	for _, src := range sources {
		point := domain.TimeSeriesPoint{
			Date:    src.Event.Date,
			Revenue: eventRevenue(src),
		}

		if src.Analysis != nil {
			point.Attendance = src.Analysis.ActualAttendance
			point.Satisfaction = src.Analysis.AttendeeSatisfaction
			point.Smoothness = src.Analysis.EventSmoothness
			point.SuccessScore = src.Analysis.OverallSuccessScore
		}

		points = append(points, point)
	}

	return points
}
