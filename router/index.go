package router

import (
	"restaurant_ordering/handler"
	"restaurant_ordering/middleware"
	"restaurant_ordering/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	protected := middleware.Protected(h.Tokens(), h.Service())
	admin := middleware.AdminOnly()

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), h.Register)
	auth.Post("/login", validate.Login(), h.Login)
	auth.Get("/me", protected, h.Me)

	menu := v1.Group("/menu")
	menu.Get("/", h.GetMenu)
	menu.Get("/:slug", h.GetMenuItem)

	tables := v1.Group("/tables", protected)
	tables.Get("/available", h.GetAvailableTables)

	order := v1.Group("/orders", protected)
	order.Post("/", validate.OrderInput(), h.CreateOrder)
	order.Get("/", validate.OrderFilter(), h.GetOrders)
	order.Get("/:id", validate.GetById("id"), h.GetOrderById)
	order.Put("/:id", validate.GetById("id"), validate.OrderInput(), h.EditOrder)
	order.Delete("/:id", admin, validate.GetById("id"), h.DeleteOrder)
	order.Get("/:id/receipt", validate.GetById("id"), h.GetOrderReceipt)
	order.Post("/:id/cancel", validate.GetById("id"), h.CancelOrder)
	order.Patch("/:id/status", admin, validate.GetById("id"), validate.Status(), h.UpdateOrderStatus)
	order.Post("/:id/confirm-payment", admin, validate.GetById("id"), validate.ConfirmPayment(), h.ConfirmPayment)

	dashboard := v1.Group("/dashboard", protected, admin)
	dashboard.Get("/", validate.OrderFilter(), h.GetDashboard)
	dashboard.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	dashboard.Get("/live", websocket.New(h.LiveDashboard))
}
