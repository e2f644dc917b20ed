package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"ucpmerchant/internal/config"
	"ucpmerchant/internal/http/handlers"
	"ucpmerchant/internal/repos"
)

const testBase = "https://sandbox.test"

// newTestApp mirrors main's route table against a fresh in-memory store.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{Port: "0", DBDSN: ":memory:", BaseURL: testBase}
	db, err := repos.OpenDB(cfg.DBDSN, cfg.BaseURL)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	app := fiber.New()
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg)
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
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string, wantStatus int) map[string]any {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: want %d, got %d (%s)", path, wantStatus, resp.StatusCode, body)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("GET %s: decode: %v", path, err)
	}
	return out
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, wantStatus int) map[string]any {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST %s: want %d, got %d (%s)", path, wantStatus, resp.StatusCode, raw)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("POST %s: decode: %v", path, err)
	}
	return out
}

func TestDiscoveryServedAtBothPaths(t *testing.T) {
	app := newTestApp(t)

	wellKnown := getJSON(t, app, "/.well-known/ucp.json", 200)
	protocol := getJSON(t, app, "/api/ucp/discovery", 200)

	a, _ := json.Marshal(wellKnown)
	b, _ := json.Marshal(protocol)
	if !bytes.Equal(a, b) {
		t.Fatalf("discovery payloads differ:\n%s\n%s", a, b)
	}

	ucp, _ := wellKnown["ucp"].(map[string]any)
	if ucp == nil || ucp["sandbox"] != true {
		t.Fatalf("bad manifest: %v", wellKnown)
	}
	caps, _ := ucp["capabilities"].([]any)
	if len(caps) != 3 {
		t.Fatalf("want 3 capabilities, got %v", caps)
	}
}

func TestProductListingFilters(t *testing.T) {
	app := newTestApp(t)

	full := getJSON(t, app, "/api/ucp/products", 200)
	if full["count"].(float64) != 10 || full["sandbox"] != true {
		t.Fatalf("bad unfiltered listing: %v", full)
	}

	bookings := getJSON(t, app, "/api/ucp/products?type=booking", 200)
	if bookings["count"].(float64) != 2 {
		t.Fatalf("want 2 bookings, got %v", bookings["count"])
	}

	cheap := getJSON(t, app, "/api/ucp/products?max_price=5", 200)
	for _, raw := range cheap["products"].([]any) {
		p := raw.(map[string]any)
		if p["price"].(float64) > 5 {
			t.Fatalf("price filter leaked %v", p["id"])
		}
	}
	if cheap["count"].(float64) != 4 {
		t.Fatalf("want 4 products at or under 5, got %v", cheap["count"])
	}

	// malformed max_price: filter silently not applied
	lenient := getJSON(t, app, "/api/ucp/products?max_price=cheap", 200)
	if lenient["count"].(float64) != 10 {
		t.Fatalf("malformed max_price must return the full set, got %v", lenient["count"])
	}
}

func TestProductDetailAndMiss(t *testing.T) {
	app := newTestApp(t)

	detail := getJSON(t, app, "/api/ucp/products/pudding-heroes-paperback", 200)
	p := detail["product"].(map[string]any)
	if p["isbn"] != "979-8-9906134-0-6" || p["type"] != "physical" {
		t.Fatalf("bad product detail: %v", p)
	}

	miss := getJSON(t, app, "/api/ucp/products/flux-capacitor", 404)
	if miss["error"] == nil || miss["product_id"] != "flux-capacitor" {
		t.Fatalf("miss payload must name the id: %v", miss)
	}
	if ids, _ := miss["available_products"].([]any); len(ids) != 10 {
		t.Fatalf("miss payload must list valid ids: %v", miss)
	}
}

func TestAvailability(t *testing.T) {
	app := newTestApp(t)

	booking := getJSON(t, app, "/api/ucp/products/signal-house-weekend/availability", 200)
	if booking["available"] != true {
		t.Fatalf("sandbox bookings are always available: %v", booking)
	}
	if dates, _ := booking["available_dates"].([]any); len(dates) != 4 {
		t.Fatalf("booking must offer sample dates: %v", booking)
	}

	plain := getJSON(t, app, "/api/ucp/products/pudding-heroes-kindle/availability", 200)
	if plain["available"] != true || plain["available_dates"] != nil {
		t.Fatalf("bad plain availability: %v", plain)
	}

	miss := getJSON(t, app, "/api/ucp/products/flux-capacitor/availability", 404)
	if miss["error"] == nil {
		t.Fatalf("availability miss must carry an error field: %v", miss)
	}
}

func TestCheckoutToOrderStatus(t *testing.T) {
	app := newTestApp(t)

	order := postJSON(t, app, "/api/ucp/checkout", map[string]any{
		"line_items":    []map[string]any{{"product_id": "pudding-theory-pdf", "quantity": 1}},
		"payment_token": "sandbox_test",
	}, 201)

	totals := order["totals"].(map[string]any)
	if totals["total"].(float64) != 0 {
		t.Fatalf("free pdf order must total 0: %v", totals)
	}
	f := order["fulfillment"].([]any)[0].(map[string]any)
	if f["type"] != "instant_download" || f["status"] != "delivered" {
		t.Fatalf("bad fulfillment: %v", f)
	}

	oid := order["order_id"].(string)
	fetched := getJSON(t, app, "/api/ucp/orders/"+oid, 200)
	if fetched["status"] != "completed" || fetched["order_id"] != oid {
		t.Fatalf("order readback mismatch: %v", fetched)
	}
}

func TestCheckoutRejectsProductionToken(t *testing.T) {
	app := newTestApp(t)

	before := getJSON(t, app, "/api/ucp/orders", 200)["count"].(float64)

	body := postJSON(t, app, "/api/ucp/checkout", map[string]any{
		"line_items":    []map[string]any{{"product_id": "pudding-theory-pdf"}},
		"payment_token": "live_card_123",
	}, 400)
	if body["error"] == nil || body["order_id"] != nil {
		t.Fatalf("rejection must carry error and no order id: %v", body)
	}
	if body["hint"] == nil {
		t.Fatalf("rejection must hint at sandbox_test: %v", body)
	}

	after := getJSON(t, app, "/api/ucp/orders", 200)["count"].(float64)
	if before != after {
		t.Fatalf("order store changed on rejected checkout: %v -> %v", before, after)
	}
}

func TestCheckoutMissingLineItems(t *testing.T) {
	app := newTestApp(t)

	body := postJSON(t, app, "/api/ucp/checkout", map[string]any{}, 400)
	if body["error"] == nil || body["example"] == nil {
		t.Fatalf("missing line_items must include an example payload: %v", body)
	}
}

func TestOrderNotFoundStatesVolatility(t *testing.T) {
	app := newTestApp(t)

	miss := getJSON(t, app, "/api/ucp/orders/ORD_NEVERISSUED1", 404)
	if miss["error"] == nil || miss["order_id"] != "ORD_NEVERISSUED1" {
		t.Fatalf("bad miss payload: %v", miss)
	}
	if miss["note"] == nil {
		t.Fatalf("miss payload must state store volatility: %v", miss)
	}
}

func TestOrdersListWindow(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 12; i++ {
		postJSON(t, app, "/api/ucp/checkout", map[string]any{
			"line_items":    []map[string]any{{"product_id": "mind-lottery"}},
			"payment_token": "sandbox_test",
		}, 201)
	}

	list := getJSON(t, app, "/api/ucp/orders", 200)
	if list["count"].(float64) != 12 {
		t.Fatalf("count must be total orders, got %v", list["count"])
	}
	if orders, _ := list["orders"].([]any); len(orders) != 10 {
		t.Fatalf("listing must window to the last 10, got %d", len(list["orders"].([]any)))
	}
}

func TestHealthAndUtility(t *testing.T) {
	app := newTestApp(t)

	health := getJSON(t, app, "/api/ucp/health", 200)
	if health["status"] != "healthy" || health["sandbox"] != true {
		t.Fatalf("bad health payload: %v", health)
	}

	docs := getJSON(t, app, "/api/ucp/docs", 200)
	if docs["endpoints"] == nil {
		t.Fatalf("docs must list endpoints: %v", docs)
	}

	examples := getJSON(t, app, "/api/ucp/examples", 200)
	if examples["curl"] == nil || examples["python"] == nil {
		t.Fatalf("examples must include curl and python snippets: %v", examples)
	}

	test := getJSON(t, app, "/api/ucp/test", 200)
	order, _ := test["order"].(map[string]any)
	if order == nil || order["status"] != "completed" {
		t.Fatalf("test purchase must return a completed order: %v", test)
	}
	// the sample order is stored like any other
	oid := order["order_id"].(string)
	getJSON(t, app, "/api/ucp/orders/"+oid, 200)
}
