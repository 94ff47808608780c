package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"venuedesk/internal/db"
	"venuedesk/internal/domain"
	"venuedesk/internal/repository"
	"venuedesk/internal/repository/dao"
)

type testEnv struct {
	events    *repository.EventRepository
	templates *repository.TemplateRepository
	settings  *repository.SettingsRepository
	bookings  *repository.BookingRepository
	catalog   *repository.ReferenceCatalog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	// Per-test in-memory database to avoid cross-test interference.
	gormDB, err := db.OpenInMemory(t.Name())
	require.NoError(t, err)

	return &testEnv{
		events:    repository.NewEventRepository(dao.NewEventDAO(gormDB)),
		templates: repository.NewTemplateRepository(dao.NewTemplateDAO(gormDB)),
		settings:  repository.NewSettingsRepository(dao.NewSettingsDAO(gormDB)),
		bookings:  repository.NewBookingRepository(dao.NewBookingDAO(gormDB)),
		catalog:   repository.NewReferenceCatalog(dao.NewReferenceDAO(gormDB)),
	}
}

func (e *testEnv) mustCreateEvent(t *testing.T, event domain.Event) domain.Event {
	t.Helper()
	created, err := e.events.CreateEvent(context.Background(), event)
	require.NoError(t, err)

	return created
}

func timePtr(s string) *string {
	return &s
}
