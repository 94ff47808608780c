package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"venuedesk/internal/domain"
	"venuedesk/internal/repository/dao"
)

func TestSettingsRoundTrip(t *testing.T) {
	repo := NewSettingsRepository(dao.NewSettingsDAO(openStore(t)))
	ctx := context.Background()

	// Seeded defaults are readable immediately.
	require.Equal(t, 10, repo.GetInt(ctx, domain.SettingTotalTables, 99))
	require.InDelta(t, 30.0, repo.GetFloat(ctx, domain.SettingSaturdayRate, 0), 0.001)

	require.NoError(t, repo.SetInt(ctx, domain.SettingTotalTables, 14))
	require.Equal(t, 14, repo.GetInt(ctx, domain.SettingTotalTables, 99))

	_, err := repo.Get(ctx, "no_such_key")
	require.ErrorIs(t, err, ErrSettingNotFound)

	// Unknown keys fall back rather than fail.
	require.Equal(t, 7, repo.GetInt(ctx, "no_such_key", 7))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Equal(t, "14", all[domain.SettingTotalTables])
}
