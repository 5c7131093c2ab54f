package routes

import (
	"github.com/devcarkson/reserve-with-ease-backend-sub000/handlers"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	owner := api.Group("/owner", middleware.Protected(), middleware.OwnerRequired())
	owner.Post("/reservations/:id/payments", handlers.RecordPayment)
	owner.Post("/reservations/:id/approve-payment", handlers.ApprovePayment)
	owner.Get("/invoices", handlers.MonthlyInvoice)
}
