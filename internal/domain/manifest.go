package domain

// Merchant identity advertised by discovery.
type Merchant struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Contact     string `json:"contact"`
	LogoURL     string `json:"logo_url"`
}

type UCPInfo struct {
	Version      string            `json:"version"`
	Merchant     Merchant          `json:"merchant"`
	Sandbox      bool              `json:"sandbox"`
	SandboxNote  string            `json:"sandbox_note"`
	Capabilities []string          `json:"capabilities"`
	Services     map[string]string `json:"services"`
}

type PaymentPolicy struct {
	SandboxMode    bool     `json:"sandbox_mode"`
	AcceptedTokens []string `json:"accepted_tokens"`
	Note           string   `json:"note"`
}

type DocLinks struct {
	GitHub  string `json:"github"`
	APIDocs string `json:"api_docs"`
}

// Manifest is the static capability description returned by discovery. It is
// a pure function of configuration; both discovery routes serve this payload.
type Manifest struct {
	UCP           UCPInfo       `json:"ucp"`
	Payment       PaymentPolicy `json:"payment"`
	Documentation DocLinks      `json:"documentation"`
}
