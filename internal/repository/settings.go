package repository

import (
	"context"
	"fmt"
	"strconv"

	"venuedesk/internal/repository/dao"
)

var ErrSettingNotFound = dao.ErrSettingNotFound

type SettingsDAO interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

// SettingsRepository fronts the process-wide key/value store. Values are read
// on demand; there is no in-memory cache.
type SettingsRepository struct {
	dao SettingsDAO
}

func NewSettingsRepository(dao SettingsDAO) *SettingsRepository {
	return &SettingsRepository{
		dao: dao,
	}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.dao.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("r.dao.Get -> %w", err)
	}

	return value, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	if err := r.dao.Set(ctx, key, value); err != nil {
		return fmt.Errorf("r.dao.Set -> %w", err)
	}

	return nil
}

func (r *SettingsRepository) All(ctx context.Context) (map[string]string, error) {
	settings, err := r.dao.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.All -> %w", err)
	}

	return settings, nil
}

// GetInt returns the setting parsed as an integer, or fallback when the key
// is missing or malformed.
func (r *SettingsRepository) GetInt(ctx context.Context, key string, fallback int) int {
	value, err := r.dao.Get(ctx, key)
	if err != nil {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return n
}

// GetFloat returns the setting parsed as a decimal, or fallback when the key
// is missing or malformed.
func (r *SettingsRepository) GetFloat(ctx context.Context, key string, fallback float64) float64 {
	value, err := r.dao.Get(ctx, key)
	if err != nil {
		return fallback
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}

	return f
}

func (r *SettingsRepository) SetInt(ctx context.Context, key string, value int) error {
	return r.Set(ctx, key, strconv.Itoa(value))
}

func (r *SettingsRepository) SetFloat(ctx context.Context, key string, value float64) error {
	return r.Set(ctx, key, strconv.FormatFloat(value, 'f', -1, 64))
}
