// internal/adapters/db/part_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pvginkel/electronics-inventory/internal/core/ports"
)

// partRepository implements ports.PartRepository
type partRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewPartRepository creates a new part repository
func NewPartRepository(db *Database, logger *slog.Logger) ports.PartRepository {
	return &partRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "part")),
	}
}

// ResolveKeys resolves part keys to internal ids in one query. Keys that do
// not match a part are absent from the result; the service layer turns that
// into a not-found failure naming every missing key.
func (r *partRepository) ResolveKeys(ctx context.Context, keys []string) (map[string]int64, error) {
	query := `SELECT key, id FROM parts WHERE key = ANY($1)`

	rows, err := r.db.Query(ctx, query, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve part keys: %w", err)
	}
	defer rows.Close()

	resolved := make(map[string]int64, len(keys))
	for rows.Next() {
		var key string
		var id int64
		if err := rows.Scan(&key, &id); err != nil {
			return nil, fmt.Errorf("failed to scan part key: %w", err)
		}
		resolved[key] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	r.logger.DebugContext(ctx, "part keys resolved",
		slog.Int("requested", len(keys)),
		slog.Int("resolved", len(resolved)))

	return resolved, nil
}
