// Package settings loads and stores the persisted reCAPTCHA Enterprise configuration.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	apperrors "formguard/internal/errors"
	"formguard/internal/models"
	"formguard/internal/repositories"
	"formguard/internal/services/recaptcha"
)

// Cache is the read-through cache in front of the repository.
// GetSettings returns nil, nil on a miss.
type Cache interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	CacheSettings(ctx context.Context, settings *models.Settings) error
	InvalidateSettings(ctx context.Context) error
}

type Service interface {
	// Load builds the risk configuration for one request.
	Load(ctx context.Context) (recaptcha.Config, error)
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
	EnabledIntegrations(ctx context.Context) ([]string, error)
}

type service struct {
	repo          repositories.SettingsRepository
	cache         Cache
	inputIDPrefix string
}

// NewService creates a settings service. cache may be nil.
func NewService(repo repositories.SettingsRepository, cache Cache, inputIDPrefix string) Service {
	return &service{
		repo:          repo,
		cache:         cache,
		inputIDPrefix: inputIDPrefix,
	}
}

func (s *service) Load(ctx context.Context) (recaptcha.Config, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return recaptcha.Config{}, err
	}

	if missing := Missing(settings); len(missing) > 0 {
		return recaptcha.Config{}, apperrors.ErrNotConfigured.
			Wrap(fmt.Errorf("missing %s", strings.Join(missing, ", ")))
	}

	cfg := recaptcha.Config{
		SiteKey:       settings.SiteKey,
		APIKey:        settings.APIKey,
		ProjectID:     settings.ProjectID,
		RiskThreshold: settings.Risk,
		InputIDPrefix: s.inputIDPrefix,
	}
	if err := cfg.Validate(); err != nil {
		return recaptcha.Config{}, apperrors.ErrInvalidSettings.Wrap(err)
	}
	return cfg, nil
}

func (s *service) Get(ctx context.Context) (*models.Settings, error) {
	if s.cache != nil {
		cached, err := s.cache.GetSettings(ctx)
		if err != nil {
			log.Printf("settings cache read failed, falling back to database: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingsNotFound) {
			return nil, apperrors.ErrNotConfigured.Wrap(err)
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheSettings(ctx, settings); err != nil {
			log.Printf("settings cache write failed: %v", err)
		}
	}
	return settings, nil
}

func (s *service) Save(ctx context.Context, settings *models.Settings) error {
	if err := Sanitize(settings); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateSettings(ctx); err != nil {
			log.Printf("settings cache invalidation failed: %v", err)
		}
	}
	return nil
}

func (s *service) EnabledIntegrations(ctx context.Context) ([]string, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return []string(settings.Integrations), nil
}

// Sanitize normalizes settings in place: keys are trimmed, a NaN threshold
// falls back to the default, integration names are trimmed and deduplicated.
// A threshold outside [0,1] is rejected.
func Sanitize(settings *models.Settings) error {
	if settings == nil {
		return apperrors.ErrInvalidSettings.Wrap(errors.New("nil settings"))
	}

	settings.SiteKey = strings.TrimSpace(settings.SiteKey)
	settings.APIKey = strings.TrimSpace(settings.APIKey)
	settings.ProjectID = strings.TrimSpace(settings.ProjectID)

	if math.IsNaN(settings.Risk) {
		settings.Risk = recaptcha.DefaultRiskThreshold
	}
	if settings.Risk < 0 || settings.Risk > 1 {
		return apperrors.ErrInvalidSettings.
			Wrap(fmt.Errorf("risk score must be between 0 and 1, got %v", settings.Risk))
	}

	seen := make(map[string]bool, len(settings.Integrations))
	integrations := models.StringList{}
	for _, name := range settings.Integrations {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		integrations = append(integrations, name)
	}
	settings.Integrations = integrations
	return nil
}

// Missing lists the required credential fields that are empty.
func Missing(settings *models.Settings) []string {
	var missing []string
	if settings == nil || settings.SiteKey == "" {
		missing = append(missing, "site_key")
	}
	if settings == nil || settings.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if settings == nil || settings.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	return missing
}
