package domain

// Product classes as advertised in the catalog.
const (
	TypeDigital      = "digital"
	TypePhysical     = "physical"
	TypeBooking      = "booking"
	TypeSubscription = "subscription"
	TypeExperience   = "experience"
)

// Product is an immutable catalog entry. Class-specific fields (download URL,
// ISBN, billing period, ...) are optional and omitted from JSON when unset,
// matching the loosely-shaped catalog agents expect.
type Product struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	Currency    string  `db:"currency" json:"currency"`
	Type        string  `db:"type" json:"type"` // digital | physical | booking | subscription | experience
	Fulfillment string  `db:"fulfillment" json:"fulfillment"`
	InStock     bool    `db:"in_stock" json:"in_stock"`

	DownloadURL   string `db:"download_url" json:"download_url,omitempty"`
	ISBN          string `db:"isbn" json:"isbn,omitempty"`
	AmazonURL     string `db:"amazon_url" json:"amazon_url,omitempty"`
	BillingPeriod string `db:"billing_period" json:"billing_period,omitempty"` // monthly | annual
	SignupURL     string `db:"signup_url" json:"signup_url,omitempty"`
	Location      string `db:"location" json:"location,omitempty"`
	ExperienceURL string `db:"experience_url" json:"experience_url,omitempty"`
	ImageURL      string `db:"image_url" json:"image_url,omitempty"`

	FeaturesJSON string   `db:"features_json" json:"-"`
	Features     []string `db:"-" json:"features,omitempty"`
}

// Availability is the stock/booking answer for a single product.
type Availability struct {
	ProductID      string   `json:"product_id"`
	Available      bool     `json:"available"`
	Sandbox        bool     `json:"sandbox"`
	Note           string   `json:"note,omitempty"`
	AvailableDates []string `json:"available_dates,omitempty"`
}
