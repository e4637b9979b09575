// internal/core/ports/membership_service.go
package ports

import (
	"context"

	"github.com/pvginkel/electronics-inventory/internal/core/domain"
)

// MembershipService defines the application service port for shopping list
// membership lookups. This interface is implemented by the application
// service and consumed by the HTTP handlers.
type MembershipService interface {
	// LookupBatch resolves an ordered batch of part keys and returns one
	// entry per key, in request order, each carrying the part's ordered
	// membership rows. The whole batch fails on any validation or
	// resolution error.
	LookupBatch(ctx context.Context, keys []string, includeDone bool) ([]domain.PartMemberships, error)

	// LookupOne is the single-part lookup. It routes through LookupBatch
	// with a singleton batch so the two paths share ordering and filtering.
	LookupOne(ctx context.Context, key string, includeDone bool) (*domain.PartMemberships, error)
}
