package routes

import (
	"github.com/devcarkson/reserve-with-ease-backend-sub000/handlers"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func PropertyRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Browsing and the availability probe are public.
	properties := api.Group("/properties")
	properties.Get("", handlers.ListProperties)
	properties.Get("/:id", handlers.GetProperty)
	properties.Get("/:id/rooms", handlers.ListPropertyRooms)
	properties.Get("/:id/availability", handlers.CheckAvailability)

	owned := api.Group("/properties", middleware.Protected(), middleware.OwnerRequired())
	owned.Post("", handlers.CreateProperty)
	owned.Put("/:id", handlers.UpdateProperty)
	owned.Post("/:id/categories", handlers.CreateRoomCategory)
	owned.Put("/:id/categories/:categoryId", handlers.UpdateRoomCategory)
	owned.Post("/:id/calendar", handlers.SetPropertyCalendar)
	owned.Post("/:id/rooms/:roomId/calendar", handlers.SetRoomCalendar)
}
