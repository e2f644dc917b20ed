package repos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"ucpmerchant/internal/domain"
)

type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// ProductFilter narrows a listing. Unset options impose no constraint; set
// options combine with AND.
type ProductFilter struct {
	Type        string
	InStockOnly bool
	MaxPrice    *decimal.Decimal // inclusive upper bound
}

const productCols = `
  id, name, description, price, currency, type, fulfillment, in_stock,
  download_url, isbn, amazon_url, billing_period, signup_url, location,
  experience_url, image_url, features_json`

// List returns matching products in catalog insertion order.
func (r *CatalogRepo) List(f ProductFilter) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if f.Type != "" {
		where += ` AND type = ?`
		args = append(args, f.Type)
	}
	if f.InStockOnly {
		where += ` AND in_stock = 1`
	}
	if f.MaxPrice != nil {
		where += ` AND price <= ?`
		args = append(args, f.MaxPrice.InexactFloat64())
	}

	out := []domain.Product{} // empty result serializes as [], not null
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY seq
	`, args...)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if err := decodeFeatures(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Get returns the product or sql.ErrNoRows.
func (r *CatalogRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE id = ?
	`, id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := decodeFeatures(&p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// IDs returns every catalog id in insertion order. Error payloads list these
// so agents can self-correct without documentation.
func (r *CatalogRepo) IDs() ([]string, error) {
	var ids []string
	err := r.db.Select(&ids, `SELECT id FROM products ORDER BY seq`)
	return ids, err
}

func decodeFeatures(p *domain.Product) error {
	if p.FeaturesJSON == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(p.FeaturesJSON), &p.Features); err != nil {
		return err
	}
	p.FeaturesJSON = ""
	return nil
}
