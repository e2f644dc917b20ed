package handlers

import (
	"github.com/jmoiron/sqlx"

	"ucpmerchant/internal/config"
	"ucpmerchant/internal/repos"
	"ucpmerchant/internal/services"
)

type Deps struct {
	DiscoveryHandler *DiscoveryHandler
	ProductHandler   *ProductHandler
	CheckoutHandler  *CheckoutHandler
	OrderHandler     *OrderHandler
	MetaHandler      *MetaHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catalogRepo := repos.NewCatalogRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(catalogRepo)
	fulfill := services.NewFulfillmentGenerator(cfg.BaseURL)
	checkoutSvc := services.NewCheckoutService(catalogRepo, orderRepo, fulfill)
	discoverySvc := services.NewDiscoveryService(cfg.BaseURL)

	return &Deps{
		DiscoveryHandler: &DiscoveryHandler{Discovery: discoverySvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CheckoutHandler:  &CheckoutHandler{Checkout: checkoutSvc},
		OrderHandler:     &OrderHandler{Orders: orderRepo},
		MetaHandler:      &MetaHandler{BaseURL: cfg.BaseURL},
	}
}
