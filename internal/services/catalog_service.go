package services

import (
	"strings"

	"ucpmerchant/internal/domain"
	"ucpmerchant/internal/repos"
)

type CatalogService struct {
	Prods *repos.CatalogRepo
}

func NewCatalogService(prods *repos.CatalogRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) ListProducts(f repos.ProductFilter) ([]domain.Product, error) {
	return s.Prods.List(f)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) ProductIDs() ([]string, error) {
	return s.Prods.IDs()
}

// Sample dates offered for booking availability. The sandbox never says no.
var sampleBookingDates = []string{"2026-01-20", "2026-01-21", "2026-01-27", "2026-01-28"}

// CheckAvailability answers the stock question for a product; booking
// products (the signal-house listings) always come back available with a
// fixed set of sample dates.
func (s *CatalogService) CheckAvailability(id string) (domain.Availability, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return domain.Availability{}, err
	}

	if strings.HasPrefix(p.ID, "signal-house") {
		return domain.Availability{
			ProductID:      p.ID,
			Available:      true,
			Sandbox:        true,
			Note:           "Sandbox mode - always shows available.",
			AvailableDates: sampleBookingDates,
		}, nil
	}

	return domain.Availability{ProductID: p.ID, Available: p.InStock, Sandbox: true}, nil
}
