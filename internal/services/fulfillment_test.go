package services_test

import (
	"regexp"
	"testing"

	"ucpmerchant/internal/domain"
	"ucpmerchant/internal/services"
)

func TestFulfillment_IdentifierBeatsClass(t *testing.T) {
	g := services.NewFulfillmentGenerator(testBase)

	// pudding-theory-pdf is class "digital" but must hit its identifier rule,
	// not the digital fallback
	f := g.Generate(domain.Product{ID: "pudding-theory-pdf", Type: domain.TypeDigital})
	if f.Type != domain.FulfillInstantDownload || f.Status != domain.StatusDelivered {
		t.Fatalf("identifier rule not applied: %+v", f)
	}
	if f.DownloadURL != testBase+"/downloads/pudding-theory.pdf" {
		t.Fatalf("bad download url: %s", f.DownloadURL)
	}

	// mind-lottery is class "experience" and gets the redirect rule
	f = g.Generate(domain.Product{ID: "mind-lottery", Type: domain.TypeExperience})
	if f.Type != domain.FulfillRedirect || f.RedirectURL != "https://bookofhouses.com/mind-lottery" || f.Status != domain.StatusDelivered {
		t.Fatalf("mind-lottery rule not applied: %+v", f)
	}
}

func TestFulfillment_KnownMemberships(t *testing.T) {
	g := services.NewFulfillmentGenerator(testBase)
	reSub := regexp.MustCompile(`^SUB_[0-9A-F]{10}$`)

	cases := []struct {
		id, period, nextBilling string
	}{
		{"house-membership-monthly", "monthly", "2026-02-13"},
		{"house-membership-annual", "annual", "2027-01-13"},
	}
	for _, tc := range cases {
		f := g.Generate(domain.Product{ID: tc.id, Type: domain.TypeSubscription, BillingPeriod: tc.period, SignupURL: "https://boho.team/join"})
		if f.Type != domain.FulfillSubscription || f.Status != domain.StatusSandboxActive {
			t.Fatalf("%s: bad record %+v", tc.id, f)
		}
		if !reSub.MatchString(f.SubscriptionID) {
			t.Fatalf("%s: bad subscription id %q", tc.id, f.SubscriptionID)
		}
		if f.BillingPeriod != tc.period || f.NextBillingDate != tc.nextBilling {
			t.Fatalf("%s: bad billing fields %+v", tc.id, f)
		}
		if f.SignupURL != "https://boho.team/join" {
			t.Fatalf("%s: signup url not carried: %+v", tc.id, f)
		}
	}
}

func TestFulfillment_GenericSubscription(t *testing.T) {
	g := services.NewFulfillmentGenerator(testBase)

	f := g.Generate(domain.Product{ID: "some-other-plan", Type: domain.TypeSubscription})
	if f.Type != domain.FulfillSubscription || f.Status != domain.StatusSandboxActive {
		t.Fatalf("bad record: %+v", f)
	}
	// generic subscriptions get no billing schedule
	if f.BillingPeriod != "" || f.NextBillingDate != "" || f.SignupURL != "" {
		t.Fatalf("generic subscription must not carry membership fields: %+v", f)
	}
}

func TestFulfillment_PhysicalShipment(t *testing.T) {
	g := services.NewFulfillmentGenerator(testBase)

	f := g.Generate(domain.Product{ID: "pudding-heroes-paperback", Type: domain.TypePhysical})
	if f.Type != domain.FulfillShipping || f.Status != domain.StatusSandboxShipped || f.Carrier != "USPS" {
		t.Fatalf("bad record: %+v", f)
	}
	if !regexp.MustCompile(`^SANDBOX_[0-9A-F]{8}$`).MatchString(f.TrackingNumber) {
		t.Fatalf("bad tracking number %q", f.TrackingNumber)
	}
}

func TestFulfillment_BookingReservation(t *testing.T) {
	g := services.NewFulfillmentGenerator(testBase)

	f := g.Generate(domain.Product{ID: "signal-house-1night", Type: domain.TypeBooking})
	if f.Type != domain.FulfillReservation || f.Status != domain.StatusSandboxConfirmed {
		t.Fatalf("bad record: %+v", f)
	}
	if !regexp.MustCompile(`^SH_[0-9A-F]{6}$`).MatchString(f.ConfirmationCode) {
		t.Fatalf("bad confirmation code %q", f.ConfirmationCode)
	}
}

func TestFulfillment_DigitalFallback(t *testing.T) {
	g := services.NewFulfillmentGenerator(testBase)

	// npc-or-player has no identifier rule and class "experience" has no
	// class rule, so it falls through to the generic digital delivery
	f := g.Generate(domain.Product{ID: "npc-or-player", Type: domain.TypeExperience})
	if f.Type != domain.FulfillDigital || f.Status != domain.StatusSandboxDelivered {
		t.Fatalf("bad fallback record: %+v", f)
	}

	f = g.Generate(domain.Product{ID: "pudding-heroes-kindle", Type: domain.TypeDigital})
	if f.Type != domain.FulfillDigital || f.Status != domain.StatusSandboxDelivered {
		t.Fatalf("plain digital product should fall through: %+v", f)
	}
}
