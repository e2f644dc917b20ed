package services

import "ucpmerchant/internal/domain"

// FulfillmentGenerator synthesizes one fulfillment record per line item.
// Dispatch is an ordered rule table: identifier-specific rules first, then
// class rules, then the digital fallback. The rule order is load-bearing:
// the sandbox PDF is class "digital" but must hit its identifier rule.
type FulfillmentGenerator struct {
	BaseURL string
	rules   []fulfillmentRule
}

type fulfillmentRule struct {
	match func(p domain.Product) bool
	build func(g *FulfillmentGenerator, p domain.Product) domain.FulfillmentRecord
}

func NewFulfillmentGenerator(baseURL string) *FulfillmentGenerator {
	g := &FulfillmentGenerator{BaseURL: baseURL}
	g.rules = []fulfillmentRule{
		{
			match: func(p domain.Product) bool { return p.ID == "pudding-theory-pdf" },
			build: (*FulfillmentGenerator).pdfDownload,
		},
		{
			match: func(p domain.Product) bool { return p.ID == "mind-lottery" },
			build: (*FulfillmentGenerator).mindLottery,
		},
		{
			match: func(p domain.Product) bool {
				return p.ID == "house-membership-monthly" || p.ID == "house-membership-annual"
			},
			build: (*FulfillmentGenerator).houseMembership,
		},
		{
			match: func(p domain.Product) bool { return p.Type == domain.TypeSubscription },
			build: (*FulfillmentGenerator).genericSubscription,
		},
		{
			match: func(p domain.Product) bool { return p.Type == domain.TypePhysical },
			build: (*FulfillmentGenerator).shipment,
		},
		{
			match: func(p domain.Product) bool { return p.Type == domain.TypeBooking },
			build: (*FulfillmentGenerator).reservation,
		},
	}
	return g
}

// Generate evaluates the rule table top-down; unmatched products fall back to
// a generic digital delivery.
func (g *FulfillmentGenerator) Generate(p domain.Product) domain.FulfillmentRecord {
	for _, r := range g.rules {
		if r.match(p) {
			return r.build(g, p)
		}
	}
	return domain.FulfillmentRecord{
		ProductID: p.ID,
		Type:      domain.FulfillDigital,
		Status:    domain.StatusSandboxDelivered,
	}
}

func (g *FulfillmentGenerator) pdfDownload(p domain.Product) domain.FulfillmentRecord {
	return domain.FulfillmentRecord{
		ProductID:   p.ID,
		Type:        domain.FulfillInstantDownload,
		DownloadURL: g.BaseURL + "/downloads/pudding-theory.pdf",
		Status:      domain.StatusDelivered,
	}
}

func (g *FulfillmentGenerator) mindLottery(p domain.Product) domain.FulfillmentRecord {
	return domain.FulfillmentRecord{
		ProductID:   p.ID,
		Type:        domain.FulfillRedirect,
		RedirectURL: "https://bookofhouses.com/mind-lottery",
		Status:      domain.StatusDelivered,
	}
}

func (g *FulfillmentGenerator) houseMembership(p domain.Product) domain.FulfillmentRecord {
	period := p.BillingPeriod
	if period == "" {
		period = "monthly"
	}
	// Fixed sandbox billing dates keyed by period.
	next := "2026-02-13"
	if period == "annual" {
		next = "2027-01-13"
	}
	return domain.FulfillmentRecord{
		ProductID:       p.ID,
		Type:            domain.FulfillSubscription,
		SubscriptionID:  refID("SUB_", 10),
		BillingPeriod:   period,
		NextBillingDate: next,
		SignupURL:       "https://boho.team/join",
		Status:          domain.StatusSandboxActive,
		Note:            "Sandbox subscription - no actual billing",
	}
}

func (g *FulfillmentGenerator) genericSubscription(p domain.Product) domain.FulfillmentRecord {
	return domain.FulfillmentRecord{
		ProductID:      p.ID,
		Type:           domain.FulfillSubscription,
		SubscriptionID: refID("SUB_", 10),
		Status:         domain.StatusSandboxActive,
	}
}

func (g *FulfillmentGenerator) shipment(p domain.Product) domain.FulfillmentRecord {
	return domain.FulfillmentRecord{
		ProductID:      p.ID,
		Type:           domain.FulfillShipping,
		TrackingNumber: refID("SANDBOX_", 8),
		Carrier:        "USPS",
		Status:         domain.StatusSandboxShipped,
	}
}

func (g *FulfillmentGenerator) reservation(p domain.Product) domain.FulfillmentRecord {
	return domain.FulfillmentRecord{
		ProductID:        p.ID,
		Type:             domain.FulfillReservation,
		ConfirmationCode: refID("SH_", 6),
		Status:           domain.StatusSandboxConfirmed,
	}
}
