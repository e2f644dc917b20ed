package services

import (
	"strings"

	"github.com/google/uuid"
)

// refID builds a sandbox reference like ORD_3F92A1... from a random uuid:
// prefix plus n uppercase hex characters. Collision odds are negligible for
// sandbox volumes; this is not a security boundary.
func refID(prefix string, n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + hex[:n]
}
