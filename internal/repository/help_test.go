package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

func newHelpRepo(t *testing.T) *HelpRepository {
	t.Helper()

	return NewHelpRepository(dao.NewHelpDAO(openStore(t)))
}

func TestHelpContentVersioning(t *testing.T) {
	repo := newHelpRepo(t)
	ctx := context.Background()

	_, err := repo.CreateContent(ctx, domain.HelpContent{Kind: domain.HelpGeneral})
	require.Error(t, err) // title required

	created, err := repo.CreateContent(ctx, domain.HelpContent{
		Kind:  domain.HelpGeneral,
		Title: "Running a tournament",
		Body:  "v1 body",
	})
	require.NoError(t, err)
	require.Equal(t, 1, created.Version)

	saved, err := repo.SaveNewVersion(ctx, created.ID, "v2 body", "owner", "clarified pairings")
	require.NoError(t, err)
	require.Equal(t, 2, saved.Version)
	require.Equal(t, "v2 body", saved.Body)

	revisions, err := repo.GetRevisions(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, revisions, 1)
	require.Equal(t, 1, revisions[0].Version)
	require.Equal(t, "v1 body", revisions[0].Body)
	require.Equal(t, "clarified pairings", revisions[0].ChangeNote)
}

func TestHelpRestoreRevisionIsANewVersion(t *testing.T) {
	repo := newHelpRepo(t)
	ctx := context.Background()

	created, err := repo.CreateContent(ctx, domain.HelpContent{
		Kind:  domain.HelpGeneral,
		Title: "House rules",
		Body:  "original",
	})
	require.NoError(t, err)

	_, err = repo.SaveNewVersion(ctx, created.ID, "rewritten", "owner", "")
	require.NoError(t, err)

	restored, err := repo.RestoreRevision(ctx, created.ID, 1, "owner")
	require.NoError(t, err)
	require.Equal(t, 3, restored.Version)
	require.Equal(t, "original", restored.Body)

	revisions, err := repo.GetRevisions(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, revisions, 2)

	_, err = repo.RestoreRevision(ctx, created.ID, 99, "owner")
	require.ErrorIs(t, err, ErrRevisionNotFound)
}

func TestHelpSaveVersionRevisionConflict(t *testing.T) {
	gormDB := openStore(t)
	repo := NewHelpRepository(dao.NewHelpDAO(gormDB))
	ctx := context.Background()

	created, err := repo.CreateContent(ctx, domain.HelpContent{
		Kind:  domain.HelpGeneral,
		Title: "FAQ",
		Body:  "v1",
	})
	require.NoError(t, err)

	// A stray revision row already occupies the slot the save would archive
	// the current version into.
	stray := dao.HelpRevision{ContentID: created.ID, Version: 1, Body: "stale"}
	require.NoError(t, gormDB.Create(&stray).Error)

	_, err = repo.SaveNewVersion(ctx, created.ID, "v2", "owner", "")
	require.ErrorIs(t, err, ErrRevisionConflict)

	// The failed save rolls back; the stored version is untouched.
	content, err := repo.GetContent(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 1, content.Version)
	require.Equal(t, "v1", content.Body)
}

func TestHelpListFiltersByKind(t *testing.T) {
	repo := newHelpRepo(t)
	ctx := context.Background()

	_, err := repo.CreateContent(ctx, domain.HelpContent{Kind: domain.HelpGeneral, Title: "General"})
	require.NoError(t, err)

	eventTypeID := uint(1)
	_, err = repo.CreateContent(ctx, domain.HelpContent{
		Kind: domain.HelpEventTypeGuide, Title: "Tournament guide", EventTypeID: &eventTypeID,
	})
	require.NoError(t, err)

	guides, err := repo.ListContent(ctx, domain.HelpEventTypeGuide)
	require.NoError(t, err)
	require.Len(t, guides, 1)
	require.Equal(t, "Tournament guide", guides[0].Title)

	require.NoError(t, repo.DeleteContent(ctx, guides[0].ID))

	_, err = repo.GetContent(ctx, guides[0].ID)
	require.ErrorIs(t, err, ErrContentNotFound)
}
