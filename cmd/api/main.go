package main

import (
	"log"
	"time"

	config "github.com/devcarkson/reserve-with-ease-backend-sub000/configs"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/jobs"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/notifications"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedSupportActor()
	config.LoadPolicy()
	notifications.InitEmailService()

	c := cron.New()
	c.AddFunc("* * * * *", jobs.DispatchOutbox)
	c.AddFunc("10 0 * * *", jobs.ExpireLapsedDiscounts)
	c.AddFunc("30 0 * * *", jobs.SweepNoShows)
	go c.Start()
	log.Println("Cron jobs scheduled")

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Reserve With Ease",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Reserve With Ease API",
		})
	})

	routes.AuthRoutes(app)
	routes.PropertyRoutes(app)
	routes.ReservationRoutes(app)
	routes.PaymentRoutes(app)
	routes.NotificationRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
