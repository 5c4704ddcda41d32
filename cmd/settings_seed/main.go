package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	"formguard/internal/config"
	"formguard/internal/models"
	"formguard/internal/repositories"
	"formguard/internal/services/recaptcha"
	"formguard/internal/services/settings"
)

func main() {
	config.LoadEnv()

	s := &models.Settings{
		SiteKey:      os.Getenv("RECAPTCHA_SITE_KEY"),
		APIKey:       os.Getenv("RECAPTCHA_API_KEY"),
		ProjectID:    os.Getenv("RECAPTCHA_PROJECT_ID"),
		Risk:         parseRisk(os.Getenv("RECAPTCHA_RISK")),
		Integrations: models.StringList(strings.Split(os.Getenv("RECAPTCHA_INTEGRATIONS"), ",")),
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer repositories.Close()

	svc := settings.NewService(
		repositories.NewSettingsRepository(repositories.DB),
		repositories.CacheService,
		config.GetEnv("RECAPTCHA_INPUT_PREFIX", recaptcha.DefaultInputIDPrefix),
	)
	if err := svc.Save(context.Background(), s); err != nil {
		log.Fatalf("Failed to save settings: %v", err)
	}

	if missing := settings.Missing(s); len(missing) > 0 {
		log.Printf("⚠️ Settings saved without %s; forms stay unprotected until they are set", strings.Join(missing, ", "))
	}
	if len(s.Integrations) == 0 {
		log.Println("⚠️ Settings saved without integrations; RECAPTCHA_INTEGRATIONS is empty")
	}

	log.Println("✅ Recaptcha Enterprise settings saved successfully!")
}

// parseRisk falls back to the default threshold when the value is empty or
// not a number.
func parseRisk(value string) float64 {
	risk, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return recaptcha.DefaultRiskThreshold
	}
	return risk
}
