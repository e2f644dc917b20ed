package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ucpmerchant/internal/services"
)

type DiscoveryHandler struct {
	Discovery *services.DiscoveryService
}

// Describe serves the capability manifest. Bound at both the protocol path
// and /.well-known/ucp.json; same payload either way.
func (h *DiscoveryHandler) Describe(c *fiber.Ctx) error {
	return c.JSON(h.Discovery.Describe())
}
