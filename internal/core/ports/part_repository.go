// internal/core/ports/part_repository.go
package ports

import (
	"context"

	"github.com/pvginkel/electronics-inventory/internal/core/domain"
)

// PartRepository defines the persistence port for part key resolution.
// This interface is implemented by the database adapter.
type PartRepository interface {
	// ResolveKeys resolves external part keys to internal part ids in one
	// batched query. Keys with no matching part are simply absent from the
	// returned map; the caller decides how to treat partial resolution.
	ResolveKeys(ctx context.Context, keys []string) (map[string]int64, error)
}

// MembershipRepository defines the persistence port for the bulk membership
// row fetch. This interface is implemented by the database adapter.
type MembershipRepository interface {
	// FindByPartIDs returns all membership rows for the given part ids in a
	// single join query. When includeDone is false, rows whose line or list
	// has reached the done status are excluded. Row order is unspecified.
	FindByPartIDs(ctx context.Context, partIDs []int64, includeDone bool) ([]domain.MembershipRow, error)
}
