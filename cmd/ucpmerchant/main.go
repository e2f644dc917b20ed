package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"ucpmerchant/internal/config"
	"ucpmerchant/internal/http/handlers"
	applog "ucpmerchant/internal/log"
	"ucpmerchant/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN, cfg.BaseURL)
	if err != nil {
		log.Fatal(err)
	}

	// Landing page templates; every protocol endpoint is JSON.
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please retry.",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	deps := handlers.NewDeps(db, cfg)

	// Landing page
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{"BaseURL": cfg.BaseURL})
	})

	// Discovery: the well-known root binding and the protocol binding serve
	// the same manifest.
	app.Get("/.well-known/ucp.json", deps.DiscoveryHandler.Describe)

	api := app.Group("/api/ucp")
	api.Get("/discovery", deps.DiscoveryHandler.Describe)

	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/products/:id/availability", deps.ProductHandler.Availability)

	api.Post("/checkout", deps.CheckoutHandler.Create)
	api.Get("/orders/:id", deps.OrderHandler.Detail)
	api.Get("/orders", deps.OrderHandler.List)

	api.Get("/health", deps.MetaHandler.Health)
	api.Get("/docs", deps.MetaHandler.Docs)
	api.Get("/examples", deps.MetaHandler.Examples)
	api.Get("/test", deps.CheckoutHandler.Test)

	// JSON 404 for everything else; agents should never see HTML errors.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
			"hint":  "See /api/ucp/discovery for supported endpoints",
		})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
