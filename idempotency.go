package hookbase

import (
	"strings"

	"github.com/google/uuid"
)

// NewIdempotencyKey returns a random key for the Idempotency-Key header: a
// version 4 UUID as 32 hex digits without dashes.
func NewIdempotencyKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
