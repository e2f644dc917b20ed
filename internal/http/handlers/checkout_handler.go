package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "ucpmerchant/internal/log"
	"ucpmerchant/internal/services"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// Create answers POST /api/ucp/checkout. An unparseable body is treated as an
// empty request and falls through to the missing-line_items failure, which
// carries a full example payload.
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		req = services.CheckoutRequest{}
	}

	order, err := h.Checkout.Checkout(req)
	if err != nil {
		return h.fail(c, err)
	}

	applog.Audit(c, "checkout.create", map[string]any{
		"order_id": order.OrderID,
		"lines":    len(order.LineItems),
		"total":    order.Totals.Total,
	})
	return c.Status(fiber.StatusCreated).JSON(order)
}

// Test answers GET /api/ucp/test: a one-call sample purchase through the real
// checkout path, so agents can see a complete order shape without composing a
// request body.
func (h *CheckoutHandler) Test(c *fiber.Ctx) error {
	order, err := h.Checkout.Checkout(services.CheckoutRequest{
		LineItems:    []services.LineItemRequest{{ProductID: "pudding-theory-pdf"}},
		PaymentToken: "sandbox_test",
	})
	if err != nil {
		return h.fail(c, err)
	}

	applog.Audit(c, "checkout.test", map[string]any{"order_id": order.OrderID})
	return c.JSON(fiber.Map{
		"message": "Test order via GET /api/ucp/test",
		"order":   order,
		"next_steps": []string{
			"Download the PDF at order.fulfillment[0].download_url",
			"Try POST /api/ucp/checkout with your own data",
			"See /api/ucp/examples for code samples",
		},
	})
}

// fail maps checkout errors to 400 bodies: the message becomes "error" and
// the hint fields are merged in alongside it.
func (h *CheckoutHandler) fail(c *fiber.Ctx, err error) error {
	var ce *services.CheckoutError
	if errors.As(err, &ce) {
		applog.Security(c, "checkout.reject", map[string]any{"code": ce.Code})
		body := fiber.Map{"error": ce.Message}
		for k, v := range ce.Hints {
			body[k] = v
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}
	applog.Error(c, "checkout.fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "checkout failed"})
}
