package validate

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ID validates a product or order identifier from the path.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// MaxPrice parses the max_price query param. A malformed value reports !ok;
// callers skip the filter rather than erroring, by policy.
func MaxPrice(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Flag reports whether a query param asks for the in-stock filter. Only an
// explicit "true" (any case) turns it on.
func Flag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
