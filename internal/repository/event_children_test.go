package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

func checklistDescriptions(items []domain.ChecklistItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Description
	}

	return out
}

func TestChecklistReorder(t *testing.T) {
	repo, _ := newEventRepo(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repo, "Reorder", "2026-09-15")

	var ids []uint
	for i, description := range []string{"First", "Second", "Third"} {
		item, err := repo.AddChecklistItem(ctx, domain.ChecklistItem{
			ParentID:    event.ID,
			Description: description,
			SortOrder:   i,
		})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	// Moving the top item down swaps it with its successor.
	require.NoError(t, repo.MoveItemDown(ctx, ids[0]))

	items, err := repo.GetChecklistItems(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Second", "First", "Third"}, checklistDescriptions(items))

	// Moving the top item up is a no-op at the boundary.
	require.NoError(t, repo.MoveItemUp(ctx, ids[1]))

	items, err = repo.GetChecklistItems(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Second", "First", "Third"}, checklistDescriptions(items))

	// Moving the bottom item down is a no-op as well.
	require.NoError(t, repo.MoveItemDown(ctx, ids[2]))

	items, err = repo.GetChecklistItems(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Second", "First", "Third"}, checklistDescriptions(items))

	require.ErrorIs(t, repo.MoveItemUp(ctx, 9999), ErrItemNotFound)
}

func TestChecklistReorderHealsDuplicateSortOrders(t *testing.T) {
	repo, _ := newEventRepo(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repo, "Duplicates", "2026-09-15")

	var ids []uint
	for _, description := range []string{"A", "B", "C"} {
		item, err := repo.AddChecklistItem(ctx, domain.ChecklistItem{
			ParentID:    event.ID,
			Description: description,
			SortOrder:   5, // every row claims the same slot
		})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	require.NoError(t, repo.MoveItemUp(ctx, ids[2]))

	items, err := repo.GetChecklistItems(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C", "B"}, checklistDescriptions(items))

	// After the self-heal the partition is densely numbered.
	for i, item := range items {
		require.Equal(t, i, item.SortOrder)
	}
}

func TestChecklistRequiresDescription(t *testing.T) {
	repo, _ := newEventRepo(t)

	event := mustCreateEvent(t, repo, "Validation", "2026-09-15")

	_, err := repo.AddChecklistItem(context.Background(), domain.ChecklistItem{ParentID: event.ID})
	require.Error(t, err)
}

func TestDashboardChecklistItems(t *testing.T) {
	repo, _ := newEventRepo(t)
	ctx := context.Background()

	upcoming := mustCreateEvent(t, repo, "Upcoming", "2026-09-20")
	past := mustCreateEvent(t, repo, "Past", "2026-08-01")

	shown, err := repo.AddChecklistItem(ctx, domain.ChecklistItem{
		ParentID: upcoming.ID, Description: "Order prizes", ShowOnDashboard: true,
	})
	require.NoError(t, err)

	_, err = repo.AddChecklistItem(ctx, domain.ChecklistItem{
		ParentID: upcoming.ID, Description: "Quiet task",
	})
	require.NoError(t, err)

	_, err = repo.AddChecklistItem(ctx, domain.ChecklistItem{
		ParentID: upcoming.ID, Description: "Done already", ShowOnDashboard: true, IsCompleted: true,
	})
	require.NoError(t, err)

	_, err = repo.AddChecklistItem(ctx, domain.ChecklistItem{
		ParentID: past.ID, Description: "Old task", ShowOnDashboard: true,
	})
	require.NoError(t, err)

	rows, err := repo.GetDashboardChecklistItems(ctx, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, shown.ID, rows[0].ID)
	require.Equal(t, "Upcoming", rows[0].EventName)
	require.Equal(t, "2026-09-20", rows[0].EventDate)
}

func TestTicketTierOversell(t *testing.T) {
	repo, _ := newEventRepo(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repo, "Tickets", "2026-09-18")

	_, err := repo.AddTicketTier(ctx, domain.TicketTier{
		ParentID: event.ID, Name: "Standard", Price: 10, QuantityAvailable: 5, QuantitySold: 6,
	})
	require.ErrorIs(t, err, ErrOversold)

	tier, err := repo.AddTicketTier(ctx, domain.TicketTier{
		ParentID: event.ID, Name: "Standard", Price: 10, QuantityAvailable: 5,
	})
	require.NoError(t, err)

	sold, err := repo.RecordTierSale(ctx, tier.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 3, sold.QuantitySold)

	_, err = repo.RecordTierSale(ctx, tier.ID, 3)
	require.ErrorIs(t, err, ErrOversold)

	// The refused sale must not have changed the stored counter.
	tiers, err := repo.GetTicketTiers(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	require.Equal(t, 3, tiers[0].QuantitySold)

	revenue, err := repo.TicketRevenue(ctx, event.ID)
	require.NoError(t, err)
	require.InDelta(t, 30.0, revenue, 0.001)
}

func TestPrizeItemDerivedFields(t *testing.T) {
	repo, _ := newEventRepo(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repo, "Prizes", "2026-09-18")

	prize, err := repo.AddPrizeItem(ctx, domain.PrizeItem{
		ParentID:          event.ID,
		Description:       "Booster pack",
		Kind:              domain.KindPrize,
		QuantityPerPlayer: 2,
		Recipients:        8,
		CostPerItem:       1.5,
	})
	require.NoError(t, err)
	require.Equal(t, 16, prize.TotalQuantity)
	require.InDelta(t, 24.0, prize.TotalCost, 0.001)

	// Recipients below one clamps to one.
	material, err := repo.AddPrizeItem(ctx, domain.PrizeItem{
		ParentID:          event.ID,
		Description:       "Score pads",
		Kind:              domain.KindMaterial,
		QuantityPerPlayer: 4,
		Recipients:        0,
		CostPerItem:       0.25,
	})
	require.NoError(t, err)
	require.Equal(t, 1, material.Recipients)
	require.Equal(t, 4, material.TotalQuantity)
	require.InDelta(t, 1.0, material.TotalCost, 0.001)
}

func TestNotePromotionToTemplateFeedback(t *testing.T) {
	repo, gormDB := newEventRepo(t)
	templates := NewTemplateRepository(dao.NewTemplateDAO(gormDB))
	ctx := context.Background()

	tmpl, err := templates.CreateTemplate(ctx, domain.Template{Name: "Weekly League"})
	require.NoError(t, err)

	event, err := repo.CreateEvent(ctx, domain.Event{
		Name: "League Week 1", Date: "2026-09-21", TemplateID: &tmpl.ID,
	})
	require.NoError(t, err)

	note, err := repo.AddNote(ctx, domain.Note{
		ParentID: event.ID, Text: "Start pairing earlier", SendToTemplate: true,
	})
	require.NoError(t, err)

	feedback, err := templates.GetTemplateFeedback(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Len(t, feedback, 1)
	require.Equal(t, "Start pairing earlier", feedback[0].FeedbackText)
	require.Equal(t, event.ID, feedback[0].EventID)

	// Re-saving an already-flagged note must not duplicate the feedback row.
	note.Text = "Start pairing earlier, really"
	_, err = repo.UpdateNote(ctx, note)
	require.NoError(t, err)

	feedback, err = templates.GetTemplateFeedback(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Len(t, feedback, 1)

	// Flipping the flag on an existing note promotes it once.
	quiet, err := repo.AddNote(ctx, domain.Note{ParentID: event.ID, Text: "Venue too warm"})
	require.NoError(t, err)

	quiet.SendToTemplate = true
	_, err = repo.UpdateNote(ctx, quiet)
	require.NoError(t, err)

	feedback, err = templates.GetTemplateFeedback(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Len(t, feedback, 2)
}

func TestNoteWithoutTemplateIsNotPromoted(t *testing.T) {
	repo, gormDB := newEventRepo(t)
	templates := NewTemplateRepository(dao.NewTemplateDAO(gormDB))
	ctx := context.Background()

	event := mustCreateEvent(t, repo, "Standalone", "2026-09-21")

	_, err := repo.AddNote(ctx, domain.Note{
		ParentID: event.ID, Text: "No template here", SendToTemplate: true,
	})
	require.NoError(t, err)

	tmpl, err := templates.CreateTemplate(ctx, domain.Template{Name: "Unrelated"})
	require.NoError(t, err)

	feedback, err := templates.GetTemplateFeedback(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Empty(t, feedback)
}

func TestLabourEntryUpsert(t *testing.T) {
	repo, _ := newEventRepo(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repo, "Labour", "2026-09-19")

	first, err := repo.UpsertLabourEntry(ctx, domain.LabourEntry{
		EventID:     event.ID,
		HoursWorked: 4,
		RateType:    domain.RateSaturday,
		HourlyRate:  30,
		WorkStatus:  domain.WorkFull,
		StaffCount:  2,
	})
	require.NoError(t, err)
	require.InDelta(t, 240.0, first.TotalCost, 0.001)

	second, err := repo.UpsertLabourEntry(ctx, domain.LabourEntry{
		EventID:     event.ID,
		HoursWorked: 5,
		RateType:    domain.RateSaturday,
		HourlyRate:  30,
		WorkStatus:  domain.WorkFull,
		StaffCount:  1,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.InDelta(t, 150.0, second.TotalCost, 0.001)

	entries, err := repo.GetLabourEntries(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSaveAnalysis(t *testing.T) {
	repo, _ := newEventRepo(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repo, "Analysed", "2026-09-01")

	_, err := repo.SaveAnalysis(ctx, domain.EventAnalysis{
		EventID:              event.ID,
		AttendeeSatisfaction: 11,
	})
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	saved, err := repo.SaveAnalysis(ctx, domain.EventAnalysis{
		EventID:              event.ID,
		ActualAttendance:     24,
		AttendeeSatisfaction: 8,
		EventSmoothness:      7,
		RevenueTotal:         300,
		CostTotal:            120,
	})
	require.NoError(t, err)
	require.InDelta(t, 15.0, saved.OverallSuccessScore, 0.001)
	require.InDelta(t, 180.0, saved.ProfitMargin, 0.001)

	// Saving again replaces the existing row.
	saved.ActualAttendance = 26
	again, err := repo.SaveAnalysis(ctx, saved)
	require.NoError(t, err)
	require.Equal(t, saved.ID, again.ID)

	got, err := repo.GetAnalysis(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, 26, got.ActualAttendance)

	_, err = repo.GetAnalysis(ctx, 9999)
	require.ErrorIs(t, err, ErrAnalysisNotFound)
}

func TestAddPlayersSkipsBlankNames(t *testing.T) {
	repo, _ := newEventRepo(t)
	ctx := context.Background()

	event := mustCreateEvent(t, repo, "Roster", "2026-09-22")

	created, err := repo.AddPlayers(ctx, event.ID, []string{"Alice", "", "Bob"})
	require.NoError(t, err)
	require.Len(t, created, 2)

	players, err := repo.GetPlayers(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, players, 2)
	require.Equal(t, "Alice", players[0].Name)
	require.Equal(t, "Bob", players[1].Name)
}

func TestCostEntriesResolveCategory(t *testing.T) {
	repo, gormDB := newEventRepo(t)
	catalog := NewReferenceCatalog(dao.NewReferenceDAO(gormDB))
	ctx := context.Background()

	event := mustCreateEvent(t, repo, "Costs", "2026-09-23")

	category, err := catalog.GetOrCreateCostCategory(ctx, "Venue")
	require.NoError(t, err)

	_, err = repo.AddCostEntry(ctx, domain.CostEntry{
		EventID:        event.ID,
		CostCategoryID: &category.ID,
		Description:    "Room hire",
		Amount:         80,
	})
	require.NoError(t, err)

	entries, err := repo.GetCostEntries(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Venue", entries[0].CategoryName)
	require.InDelta(t, 80.0, entries[0].Amount, 0.001)
}
