package routes

import (
	"github.com/devcarkson/reserve-with-ease-backend-sub000/handlers"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReservationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reservations := api.Group("/reservations", middleware.Protected())
	reservations.Get("/me", handlers.ListMyReservations)
	reservations.Post("", handlers.CreateReservation)
	reservations.Get("/:id", handlers.GetReservation)
	reservations.Post("/:id/cancel", handlers.CancelReservation)

	owner := api.Group("/owner/reservations", middleware.Protected(), middleware.OwnerRequired())
	owner.Get("", handlers.ListOwnerReservations)
	owner.Post("/:id/confirm", handlers.ConfirmReservation)
	owner.Post("/:id/check-in", handlers.CheckInGuest)
	owner.Post("/:id/check-out", handlers.CheckOutGuest)
	owner.Post("/:id/no-show", handlers.MarkNoShow)
}
