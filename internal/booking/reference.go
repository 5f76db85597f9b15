package booking

import (
	"strings"

	"github.com/google/uuid"
)

// NewReference generates a short human-readable booking reference such as
// "BK3F2A9C01". References are shown on receipts and used for front-desk
// lookup; a unique index on the column guards the slim collision window.
func NewReference() string {
	id := uuid.New()
	hex := strings.ReplaceAll(id.String(), "-", "")
	return "BK" + strings.ToUpper(hex[:8])
}
