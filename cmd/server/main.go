// Package main starts the form gate service.
package main

import (
	"context"
	"log"
	"net/http"

	"formguard/internal/config"
	"formguard/internal/middleware"
	"formguard/internal/repositories"
	"formguard/internal/routes"
	"formguard/internal/services/recaptcha"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	config.LoadEnv()

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer repositories.Close()

	if err := repositories.CacheService.HealthCheck(context.Background()); err != nil {
		log.Printf("⚠️ Settings cache unavailable, reading from database: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if sqlDB, err := repositories.DB.DB(); err == nil {
		reg.MustRegister(collectors.NewDBStatsCollector(sqlDB, "formguard"))
	}

	assessor := recaptcha.NewAssessor(
		recaptcha.WithBaseURL(config.GetEnv("RECAPTCHA_ASSESSMENT_URL", recaptcha.DefaultAssessmentURL)),
		recaptcha.WithHTTPClient(&http.Client{
			Timeout: config.GetDurationEnv("RECAPTCHA_HTTP_TIMEOUT", recaptcha.DefaultHTTPTimeout),
		}),
		recaptcha.WithMetrics(recaptcha.NewPrometheusMetrics(reg)),
	)

	app := fiber.New(fiber.Config{AppName: "formguard"})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.ClientInfo())

	routes.SetupRoutes(app, routes.NewOptions(repositories.DB, repositories.CacheService, assessor, reg))

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
