package repositories

import (
	"context"
	"errors"
	"fmt"

	"formguard/internal/models"

	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	if err := r.db.WithContext(ctx).Order("id").First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if settings.ID == 0 {
			var existing models.Settings
			err := tx.Order("id").First(&existing).Error
			switch {
			case err == nil:
				settings.ID = existing.ID
				settings.CreatedAt = existing.CreatedAt
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
			}
		}
		if err := tx.Save(settings).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}
		return nil
	})
}
