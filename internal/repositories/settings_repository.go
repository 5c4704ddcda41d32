package repositories

import (
	"context"
	"errors"

	"formguard/internal/models"
)

var (
	ErrSettingsNotFound  = errors.New("settings not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// SettingsRepository defines the interface for the persisted configuration
type SettingsRepository interface {
	// Get returns the settings row, or ErrSettingsNotFound
	Get(ctx context.Context) (*models.Settings, error)

	// Save creates or replaces the settings row
	Save(ctx context.Context, settings *models.Settings) error
}

// Implementation will be in settings_repository_impl.go
