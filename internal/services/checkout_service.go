package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ucpmerchant/internal/domain"
	"ucpmerchant/internal/repos"
)

// LineItemRequest is the caller-supplied line shape. Quantity is a pointer so
// an absent field (defaults to 1) is distinguishable from an explicit zero.
type LineItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

// CheckoutRequest is the loosely-typed body of POST /api/ucp/checkout.
type CheckoutRequest struct {
	LineItems    []LineItemRequest `json:"line_items"`
	Buyer        *domain.Buyer     `json:"buyer"`
	PaymentToken string            `json:"payment_token"`
}

type CheckoutService struct {
	Catalog *repos.CatalogRepo
	Orders  *repos.OrderRepo
	Fulfill *FulfillmentGenerator
}

func NewCheckoutService(catalog *repos.CatalogRepo, orders *repos.OrderRepo, fulfill *FulfillmentGenerator) *CheckoutService {
	return &CheckoutService{Catalog: catalog, Orders: orders, Fulfill: fulfill}
}

// exampleCheckout is returned with invalid requests so agents can self-correct.
var exampleCheckout = map[string]any{
	"line_items":    []map[string]any{{"product_id": "pudding-theory-pdf", "quantity": 1}},
	"buyer":         map[string]any{"name": "Test Agent", "email": "agent@example.com"},
	"payment_token": "sandbox_test",
}

// SandboxToken reports whether a payment token is accepted by the sandbox
// policy: empty, the literal "test", or any token starting with "sandbox_".
func SandboxToken(token string) bool {
	return token == "" || token == "test" || strings.HasPrefix(token, "sandbox_")
}

// Checkout validates the request, prices it, classifies payment, and on
// success persists exactly one order. Validation is fail-fast: the first
// failure wins and nothing is written.
func (s *CheckoutService) Checkout(req CheckoutRequest) (domain.Order, error) {
	if len(req.LineItems) == 0 {
		return domain.Order{}, invalidRequest("Missing line_items", map[string]any{
			"example": exampleCheckout,
		})
	}

	// Resolve and price each line in request order.
	var (
		products []domain.Product
		lines    []domain.PricedLineItem
		subtotal = decimal.Zero
	)
	for _, item := range req.LineItems {
		p, err := s.Catalog.Get(item.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				ids, idErr := s.Catalog.IDs()
				if idErr != nil {
					return domain.Order{}, idErr
				}
				return domain.Order{}, &CheckoutError{
					Code:    CodeProductNotFound,
					Message: fmt.Sprintf("Product not found: %s", item.ProductID),
					Hints:   map[string]any{"available_products": ids},
				}
			}
			return domain.Order{}, err
		}

		qty := 1
		if item.Quantity != nil {
			qty = *item.Quantity
		}
		if qty < 1 {
			return domain.Order{}, invalidRequest(
				fmt.Sprintf("Invalid quantity %d for product %s", qty, p.ID),
				map[string]any{"hint": "quantity must be a positive integer; omit it to default to 1"},
			)
		}

		lineTotal := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(qty)))
		subtotal = subtotal.Add(lineTotal)

		products = append(products, p)
		lines = append(lines, domain.PricedLineItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    qty,
			UnitPrice:   p.Price,
			Total:       lineTotal.InexactFloat64(),
		})
	}

	if !SandboxToken(req.PaymentToken) {
		return domain.Order{}, &CheckoutError{
			Code:    CodePaymentRejected,
			Message: "Production payments not enabled. Use sandbox mode.",
			Hints:   map[string]any{"hint": "Set payment_token to 'sandbox_test'"},
		}
	}

	fulfillment := make([]domain.FulfillmentRecord, 0, len(products))
	for _, p := range products {
		fulfillment = append(fulfillment, s.Fulfill.Generate(p))
	}

	buyer := domain.Buyer{Name: "Anonymous Agent"}
	if req.Buyer != nil {
		buyer = *req.Buyer
	}
	token := req.PaymentToken
	if token == "" {
		token = "sandbox_default"
	}

	sub := subtotal.InexactFloat64()
	order := domain.Order{
		OrderID:   refID("ORD_", 12),
		Status:    "completed",
		Sandbox:   true,
		CreatedAt: time.Now().UTC().Format("2006-01-02T15:04:05.000000") + "Z",
		Buyer:     buyer,
		LineItems: lines,
		Totals:    domain.Totals{Subtotal: sub, Total: sub},
		Payment: domain.Payment{
			Token:  token,
			Status: "sandbox_success",
			Note:   "No actual charge - sandbox mode",
		},
		Fulfillment: fulfillment,
	}

	if err := s.Orders.Insert(order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}
