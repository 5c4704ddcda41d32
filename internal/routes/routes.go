// Package routes wires the services into the HTTP surface.
package routes

import (
	"context"
	"log"
	"strings"

	"formguard/internal/config"
	"formguard/internal/handlers"
	"formguard/internal/integrations"
	"formguard/internal/repositories"
	"formguard/internal/repositories/cache"
	"formguard/internal/services/recaptcha"
	"formguard/internal/services/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const configureNotice = "Please configure Recaptcha Enterprise settings."

// Options are the collaborators SetupRoutes mounts.
type Options struct {
	Settings    settings.Service
	Submissions repositories.SubmissionRepository
	Renderer    recaptcha.Renderer
	Verifier    recaptcha.Verifier
	Registry    *integrations.Registry
	Health      map[string]handlers.HealthCheck
	Gatherer    prometheus.Gatherer
}

// NewOptions builds the production collaborators on top of the database and
// the settings cache.
func NewOptions(db *gorm.DB, cacheService *cache.CacheService, verifier recaptcha.Verifier, gatherer prometheus.Gatherer) Options {
	var settingsCache settings.Cache
	if cacheService != nil {
		settingsCache = cacheService
	}

	health := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if cacheService != nil {
		health["redis"] = cacheService.HealthCheck
	}

	return Options{
		Settings: settings.NewService(
			repositories.NewSettingsRepository(db),
			settingsCache,
			config.GetEnv("RECAPTCHA_INPUT_PREFIX", recaptcha.DefaultInputIDPrefix),
		),
		Submissions: repositories.NewSubmissionRepository(db),
		Renderer:    recaptcha.NewInjector(),
		Verifier:    verifier,
		Registry:    integrations.DefaultRegistry(),
		Health:      health,
		Gatherer:    gatherer,
	}
}

// SetupRoutes mounts the health and metrics endpoints and the form adapters
// enabled in the settings. It returns the names of the mounted adapters.
func SetupRoutes(app *fiber.App, opts Options) []string {
	gate := integrations.NewGate(opts.Settings, opts.Renderer, opts.Verifier, nil)

	adapters := opts.Registry.Enabled(enabledIntegrations(context.Background(), opts.Settings), integrations.Deps{
		Gate:        gate,
		Submissions: opts.Submissions,
	})

	mounted := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		adapter.Mount(app)
		mounted = append(mounted, adapter.Name())
	}
	if len(mounted) > 0 {
		log.Printf("✅ Recaptcha Enterprise enabled for: %s", strings.Join(mounted, ", "))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "formguard",
			"version": handlers.Version,
			"forms":   mounted,
		})
	})

	app.Get("/health", handlers.NewHealthHandler(opts.Health).Health)

	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	return mounted
}

// enabledIntegrations returns nothing unless the credentials are complete and
// at least one integration is selected.
func enabledIntegrations(ctx context.Context, svc settings.Service) []string {
	if _, err := svc.Load(ctx); err != nil {
		log.Printf("⚠️ %s (%v)", configureNotice, err)
		return nil
	}

	names, err := svc.EnabledIntegrations(ctx)
	if err != nil {
		log.Printf("⚠️ %s (%v)", configureNotice, err)
		return nil
	}
	if len(names) == 0 {
		log.Printf("⚠️ %s (no integrations selected)", configureNotice)
		return nil
	}
	return names
}
