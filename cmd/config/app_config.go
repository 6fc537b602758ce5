package config

import (
	"Shelf-Buddy-Backend/internal/api/handlers"
	"Shelf-Buddy-Backend/internal/api/routes"
	"Shelf-Buddy-Backend/internal/middleware"
	"Shelf-Buddy-Backend/internal/utils"
	"Shelf-Buddy-Backend/internal/utils/mailing"
	"Shelf-Buddy-Backend/pkg/jwt"
	"Shelf-Buddy-Backend/pkg/reminder"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, *reminder.Sweeper, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	mailer := mailing.NewSMTPMailer()

	// Repository
	reminderRepository := reminder.NewReminderRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	reminderService := reminder.NewReminderService(reminderRepository, mailer)

	// Handler
	reminderHandler := handlers.NewReminderHandler(reminderService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		ReminderHandler: reminderHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()

	sweeper := reminder.NewSweeper(reminderService, SweepInterval())
	return app, sweeper, nil
}

// SweepInterval reads the sweeper cadence from config, defaulting to daily.
func SweepInterval() time.Duration {
	raw := utils.GetConfig("SWEEP_INTERVAL_HOURS")
	if raw == "" {
		return 24 * time.Hour
	}
	parsed, err := time.ParseDuration(raw + "h")
	if err != nil || parsed <= 0 {
		return 24 * time.Hour
	}
	return parsed
}
