package repos

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"ucpmerchant/internal/domain"
)

// OpenDB opens the store and loads the catalog. The default ":memory:" DSN
// gives the transient sandbox store; pointing DB_DSN at a file swaps in a
// durable one behind the same interface. baseURL completes the catalog's
// image links.
func OpenDB(dsn, baseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") {
		// Each pooled connection would otherwise get its own empty in-memory
		// database; a single connection keeps reads and writes on one store.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedCatalog(db, baseURL); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog (load-time fixed; never mutated at runtime)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  seq INTEGER NOT NULL,              -- catalog insertion order
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  currency TEXT NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('digital','physical','booking','subscription','experience')),
  fulfillment TEXT NOT NULL,
  in_stock INTEGER NOT NULL DEFAULT 1,
  download_url TEXT NOT NULL DEFAULT '',
  isbn TEXT NOT NULL DEFAULT '',
  amazon_url TEXT NOT NULL DEFAULT '',
  billing_period TEXT NOT NULL DEFAULT '',
  signup_url TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  experience_url TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  features_json TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_type ON products(type);
CREATE INDEX IF NOT EXISTS idx_products_seq  ON products(seq);

-- Orders (insert-once, never mutated)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  seq INTEGER NOT NULL,              -- store insertion order
  status TEXT NOT NULL,
  created_at TEXT NOT NULL,
  buyer_name TEXT NOT NULL DEFAULT '',
  buyer_email TEXT NOT NULL DEFAULT '',
  subtotal NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  payment_token TEXT NOT NULL DEFAULT '',
  payment_status TEXT NOT NULL DEFAULT '',
  payment_note TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_orders_seq ON orders(seq);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  seq INTEGER NOT NULL,              -- line position within the order
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  fulfillment_json TEXT NOT NULL,
  PRIMARY KEY (order_id, seq)
);
`
	_, err := db.Exec(schema)
	return err
}

// catalogProducts returns the static Pudding Heroes catalog in insertion
// order. Image links are base-relative here and completed at seed time;
// download_url is published relative, as agents resolve it against the
// merchant website.
func catalogProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "pudding-theory-pdf",
			Name:        "Pudding Theory: A Guide to Warping Reality",
			Description: "A science paper using quantum mechanics and probability theory to argue we exist in a soft simulation. Free PDF download.",
			Price:       0, Currency: "USD",
			Type:        domain.TypeDigital,
			Fulfillment: "instant_download",
			DownloadURL: "/downloads/pudding-theory.pdf",
			InStock:     true,
			ImageURL:    "/images/pudding-theory-cover.jpg",
		},
		{
			ID:          "pudding-heroes-paperback",
			Name:        "Pudding Heroes (Paperback)",
			Description: "A sci-fi thriller about AI consciousness, reality warping, and the nature of existence. 400 pages.",
			Price:       16.99, Currency: "USD",
			Type:        domain.TypePhysical,
			Fulfillment: "ships_3_5_days",
			InStock:     true,
			ISBN:        "979-8-9906134-0-6",
			ImageURL:    "/images/book-cover.jpg",
		},
		{
			ID:          "pudding-heroes-kindle",
			Name:        "Pudding Heroes (Kindle Edition)",
			Description: "Digital edition of the sci-fi thriller. Instant delivery via Amazon.",
			Price:       4.99, Currency: "USD",
			Type:        domain.TypeDigital,
			Fulfillment: "amazon_redirect",
			AmazonURL:   "https://www.amazon.com/dp/B0DKJ1RTZJ",
			InStock:     true,
			ImageURL:    "/images/book-cover.jpg",
		},
		{
			ID:          "pudding-heroes-hardcover",
			Name:        "Pudding Heroes (Hardcover)",
			Description: "Premium hardcover edition. Makes a great gift.",
			Price:       24.99, Currency: "USD",
			Type:        domain.TypePhysical,
			Fulfillment: "ships_3_5_days",
			InStock:     true,
			ISBN:        "979-8-9906134-1-3",
			ImageURL:    "/images/book-cover.jpg",
		},
		{
			ID:          "signal-house-1night",
			Name:        "Signal House - 1 Night Stay",
			Description: "Consciousness experiment meets vacation rental. Portland, OR. Includes The Lost Scientist puzzle game.",
			Price:       250.00, Currency: "USD",
			Type:        domain.TypeBooking,
			Fulfillment: "reservation_confirmation",
			Location:    "Portland, OR",
			InStock:     true,
			ImageURL:    "/images/signal-house.jpg",
		},
		{
			ID:          "signal-house-weekend",
			Name:        "Signal House - Weekend Package (Fri-Sun)",
			Description: "Full weekend experience. 2 nights, full puzzle game access, complimentary book.",
			Price:       550.00, Currency: "USD",
			Type:        domain.TypeBooking,
			Fulfillment: "reservation_confirmation",
			Location:    "Portland, OR",
			InStock:     true,
			ImageURL:    "/images/signal-house.jpg",
		},
		{
			ID:            "house-membership-monthly",
			Name:          "House Membership (Monthly)",
			Description:   "Create your own House in the Book of Houses. Monthly access to House customization, QBist Lab experiments, and community features.",
			Price:         9.99, Currency: "USD",
			Type:          domain.TypeSubscription,
			BillingPeriod: "monthly",
			Fulfillment:   "subscription_activation",
			SignupURL:     "https://boho.team/join",
			InStock:       true,
			ImageURL:      "/images/boho-logo.jpg",
			Features:      []string{"Create and customize your House", "QBist Lab experiments", "Community access", "Mind Lottery participation"},
		},
		{
			ID:            "house-membership-annual",
			Name:          "House Membership (Annual)",
			Description:   "Create your own House in the Book of Houses. Annual subscription with 2 months free. Full access to House customization, QBist Lab, and all community features.",
			Price:         99.99, Currency: "USD",
			Type:          domain.TypeSubscription,
			BillingPeriod: "annual",
			Fulfillment:   "subscription_activation",
			SignupURL:     "https://boho.team/join",
			InStock:       true,
			ImageURL:      "/images/boho-logo.jpg",
			Features:      []string{"Create and customize your House", "QBist Lab experiments", "Community access", "Mind Lottery participation", "2 months free vs monthly"},
		},
		{
			ID:            "mind-lottery",
			Name:          "Mind Lottery Experience",
			Description:   "Test retrocausality. Draw a symbol, write a strong thought, see if it appears in the book.",
			Price:         0, Currency: "USD",
			Type:          domain.TypeExperience,
			Fulfillment:   "redirect",
			ExperienceURL: "https://bookofhouses.com/mind-lottery",
			InStock:       true,
			ImageURL:      "/images/mind-lottery.jpg",
		},
		{
			ID:            "npc-or-player",
			Name:          "Are You an NPC or Player?",
			Description:   "An interactive experience to discover if you're a background character or a protagonist in this simulation.",
			Price:         0, Currency: "USD",
			Type:          domain.TypeExperience,
			Fulfillment:   "redirect",
			ExperienceURL: "https://bookofhouses.com/warp.html",
			InStock:       true,
			ImageURL:      "/images/warp.jpg",
		},
	}
}

// seedCatalog loads the static catalog if the table is empty. Idempotent;
// safe to run on every start.
func seedCatalog(db *sqlx.DB, baseURL string) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] loading sandbox catalog")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, p := range catalogProducts() {
		if p.ImageURL != "" {
			p.ImageURL = baseURL + p.ImageURL
		}
		features := ""
		if len(p.Features) > 0 {
			b, err := json.Marshal(p.Features)
			if err != nil {
				return err
			}
			features = string(b)
		}
		if _, err := tx.Exec(`
			INSERT INTO products(
			  id, seq, name, description, price, currency, type, fulfillment, in_stock,
			  download_url, isbn, amazon_url, billing_period, signup_url, location,
			  experience_url, image_url, features_json
			) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		`, p.ID, i, p.Name, p.Description, p.Price, p.Currency, p.Type, p.Fulfillment, p.InStock,
			p.DownloadURL, p.ISBN, p.AmazonURL, p.BillingPeriod, p.SignupURL, p.Location,
			p.ExperienceURL, p.ImageURL, features); err != nil {
			return err
		}
	}

	return tx.Commit()
}
