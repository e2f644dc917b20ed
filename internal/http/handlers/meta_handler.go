package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// MetaHandler serves the utility endpoints around the protocol surface:
// health, human-oriented docs, and copy-paste code examples.
type MetaHandler struct {
	BaseURL string
}

func (h *MetaHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   "Pudding Heroes UCP Sandbox",
		"version":   "1.0.0",
		"sandbox":   true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *MetaHandler) Docs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":        "Pudding Heroes UCP Sandbox",
		"description": "The first indie UCP merchant implementation.",
		"version":     "1.0.0",
		"sandbox":     true,
		"base_url":    h.BaseURL,
		"endpoints": fiber.Map{
			"GET /api/ucp/discovery":     "UCP discovery manifest",
			"GET /api/ucp/products":      "List products (filters: type, max_price, in_stock)",
			"GET /api/ucp/products/<id>": "Get product details",
			"POST /api/ucp/checkout":     "Create an order",
			"GET /api/ucp/orders/<id>":   "Get order status",
			"GET /api/ucp/test":          "Quick test - creates sample order",
		},
		"free_products":         []string{"pudding-theory-pdf", "mind-lottery", "npc-or-player"},
		"subscription_products": []string{"house-membership-monthly", "house-membership-annual"},
		"github":                "https://github.com/steven2030/ucp-merchant",
	})
}

func (h *MetaHandler) Examples(c *fiber.Ctx) error {
	checkoutBody := `'{"line_items": [{"product_id": "pudding-theory-pdf", "quantity": 1}], "payment_token": "sandbox_test"}'`
	return c.JSON(fiber.Map{
		"curl": fiber.Map{
			"discovery": fmt.Sprintf("curl %s/.well-known/ucp.json", h.BaseURL),
			"products":  fmt.Sprintf("curl %s/api/ucp/products", h.BaseURL),
			"checkout":  fmt.Sprintf(`curl -X POST %s/api/ucp/checkout -H "Content-Type: application/json" -d %s`, h.BaseURL, checkoutBody),
		},
		"python": fmt.Sprintf(`import requests

order = requests.post(
    "%s/api/ucp/checkout",
    json={
        "line_items": [{"product_id": "pudding-theory-pdf", "quantity": 1}],
        "payment_token": "sandbox_test"
    }
).json()

print(order["fulfillment"][0]["download_url"])`, h.BaseURL),
	})
}
