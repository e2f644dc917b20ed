package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "ucpmerchant/internal/log"
	"ucpmerchant/internal/repos"
	"ucpmerchant/internal/services"
	"ucpmerchant/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List answers GET /api/ucp/products with optional type, in_stock and
// max_price filters. A malformed max_price is ignored, not an error: agents
// get the unfiltered set rather than a 400 they have to reverse-engineer.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repos.ProductFilter{
		Type:        c.Query("type"),
		InStockOnly: validate.Flag(c.Query("in_stock")),
	}
	if mp, ok := validate.MaxPrice(c.Query("max_price")); ok {
		filter.MaxPrice = &mp
	}

	products, err := h.Catalog.ListProducts(filter)
	if err != nil {
		applog.Error(c, "products.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(fiber.Map{
		"products": products,
		"count":    len(products),
		"sandbox":  true,
	})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_id"})
		return h.notFound(c, c.Params("id"))
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return h.notFound(c, id)
	}
	return c.JSON(fiber.Map{"product": p, "sandbox": true})
}

func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_id"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	avail, err := h.Catalog.CheckAvailability(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(avail)
}

func (h *ProductHandler) notFound(c *fiber.Ctx, id string) error {
	ids, err := h.Catalog.ProductIDs()
	if err != nil {
		applog.Error(c, "products.ids", err, nil)
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":              "Product not found",
		"product_id":         id,
		"available_products": ids,
	})
}
