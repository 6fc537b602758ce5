package routes

import (
	"Shelf-Buddy-Backend/internal/api/handlers"
	"Shelf-Buddy-Backend/internal/middleware"
	"Shelf-Buddy-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	ReminderHandler handlers.ReminderHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Reminders()
	c.Jobs()
	c.GuestRoute()
}

func (c *Config) Reminders() {
	reminders := c.App.Group("/api/v1/reminders", c.Middleware.AuthMiddleware(c.JWTService))
	{
		reminders.Post("", c.ReminderHandler.CreateReminder)
		reminders.Get("", c.ReminderHandler.ListUpcoming)
		reminders.Post("/:id/cancel", c.ReminderHandler.CancelReminder)
	}
}

// Jobs holds the infrastructure-triggered routes; like a webhook, these are
// reached by the platform scheduler rather than an authenticated user.
func (c *Config) Jobs() {
	c.App.Post("/jobs/reminder-sweep", c.ReminderHandler.RunSweep)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
