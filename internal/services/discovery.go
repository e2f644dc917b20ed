package services

import "ucpmerchant/internal/domain"

// Merchant identity for this deployment. Edit these for your own store.
var merchant = domain.Merchant{
	Name:        "Pudding Heroes",
	Description: "Sci-fi books, consciousness experiments, and immersive vacation rentals",
	Website:     "https://puddingheroes.com",
	Contact:     "steven@puddingheroes.com",
	LogoURL:     "https://puddingheroes.com/images/logo.png",
}

type DiscoveryService struct {
	BaseURL string
}

func NewDiscoveryService(baseURL string) *DiscoveryService {
	return &DiscoveryService{BaseURL: baseURL}
}

// Describe renders the capability manifest. Pure function of configuration:
// no inputs, no failure modes. Served identically at /.well-known/ucp.json
// and /api/ucp/discovery.
func (s *DiscoveryService) Describe() domain.Manifest {
	return domain.Manifest{
		UCP: domain.UCPInfo{
			Version:     "1.0",
			Merchant:    merchant,
			Sandbox:     true,
			SandboxNote: "This is a developer sandbox. Use payment_token 'sandbox_test' for test transactions. Free items are actually delivered.",
			Capabilities: []string{
				"dev.ucp.shopping.checkout",
				"dev.ucp.shopping.catalog",
				"dev.ucp.shopping.fulfillment",
			},
			Services: map[string]string{
				"products": "/api/ucp/products",
				"checkout": "/api/ucp/checkout",
				"orders":   "/api/ucp/orders",
			},
		},
		Payment: domain.PaymentPolicy{
			SandboxMode:    true,
			AcceptedTokens: []string{"sandbox_*", "test"},
			Note:           "Sandbox mode accepts any token starting with 'sandbox_' or the literal 'test'.",
		},
		Documentation: domain.DocLinks{
			GitHub:  "https://github.com/steven2030/ucp-merchant",
			APIDocs: s.BaseURL + "/api/ucp/docs",
		},
	}
}
