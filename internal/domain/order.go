package domain

// Fulfillment record types.
const (
	FulfillInstantDownload = "instant_download"
	FulfillRedirect        = "redirect"
	FulfillSubscription    = "subscription"
	FulfillShipping        = "shipping"
	FulfillReservation     = "reservation"
	FulfillDigital         = "digital"
)

// Fulfillment statuses. Free digital goods are genuinely delivered; everything
// else is simulated and carries a sandbox_ status.
const (
	StatusDelivered        = "delivered"
	StatusSandboxActive    = "sandbox_active"
	StatusSandboxShipped   = "sandbox_shipped"
	StatusSandboxConfirmed = "sandbox_confirmed"
	StatusSandboxDelivered = "sandbox_delivered"
)

// Buyer is free-form contact info supplied by the agent.
type Buyer struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// PricedLineItem snapshots product name and unit price at order time, so
// historical orders are insulated from later catalog edits.
type PricedLineItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// FulfillmentRecord is a tagged variant keyed by Type; only the fields
// relevant to that type are set. Created once per line item at checkout.
type FulfillmentRecord struct {
	ProductID        string `json:"product_id"`
	Type             string `json:"type"`
	Status           string `json:"status"`
	DownloadURL      string `json:"download_url,omitempty"`
	RedirectURL      string `json:"redirect_url,omitempty"`
	SubscriptionID   string `json:"subscription_id,omitempty"`
	BillingPeriod    string `json:"billing_period,omitempty"`
	NextBillingDate  string `json:"next_billing_date,omitempty"`
	SignupURL        string `json:"signup_url,omitempty"`
	TrackingNumber   string `json:"tracking_number,omitempty"`
	Carrier          string `json:"carrier,omitempty"`
	ConfirmationCode string `json:"confirmation_code,omitempty"`
	Note             string `json:"note,omitempty"`
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type Payment struct {
	Token  string `json:"token"`
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// Order is the aggregate produced by a successful checkout. It is inserted
// once and never mutated; Fulfillment[i] corresponds to LineItems[i].
type Order struct {
	OrderID     string              `json:"order_id"`
	Status      string              `json:"status"` // always "completed"
	Sandbox     bool                `json:"sandbox"`
	CreatedAt   string              `json:"created_at"` // UTC, ISO-8601
	Buyer       Buyer               `json:"buyer"`
	LineItems   []PricedLineItem    `json:"line_items"`
	Totals      Totals              `json:"totals"`
	Payment     Payment             `json:"payment"`
	Fulfillment []FulfillmentRecord `json:"fulfillment"`
}
