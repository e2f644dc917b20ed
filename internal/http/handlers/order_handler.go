package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "ucpmerchant/internal/log"
	"ucpmerchant/internal/repos"
	"ucpmerchant/internal/validate"
)

type OrderHandler struct {
	Orders *repos.OrderRepo
}

func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "order_id"})
		return h.notFound(c, c.Params("id"))
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return h.notFound(c, id)
	}
	return c.JSON(o)
}

// List answers GET /api/ucp/orders with the last 10 orders in insertion
// order; count is the total held in the store, not the window size.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.ListRecent(10)
	if err != nil {
		applog.Error(c, "orders.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	count, err := h.Orders.Count()
	if err != nil {
		applog.Error(c, "orders.count", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(fiber.Map{
		"orders":  orders,
		"count":   count,
		"sandbox": true,
	})
}

func (h *OrderHandler) notFound(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":    "Order not found",
		"order_id": id,
		"note":     "Orders are stored in memory and reset on server restart.",
	})
}
