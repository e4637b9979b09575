// internal/core/services/membership.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pvginkel/electronics-inventory/internal/core/domain"
	"github.com/pvginkel/electronics-inventory/internal/core/ports"
)

// keyCachePrefix namespaces part key resolution entries in the cache.
const keyCachePrefix = "partkey:"

// MembershipService implements the bulk shopping list membership lookup
// pipeline: validate the key batch, resolve keys to part ids, fetch all
// membership rows in one query, group them back onto the requested keys and
// sort each group. The single-part lookup routes through the same pipeline.
type MembershipService struct {
	parts       ports.PartRepository
	memberships ports.MembershipRepository
	keyCache    ports.CacheRepository
	keyCacheTTL time.Duration
	logger      *slog.Logger
}

// Statically assert that *MembershipService implements the MembershipService interface.
var _ ports.MembershipService = (*MembershipService)(nil)

// NewMembershipService creates a new membership lookup service. keyCache may
// be nil, in which case every lookup resolves keys against the database.
func NewMembershipService(parts ports.PartRepository, memberships ports.MembershipRepository,
	keyCache ports.CacheRepository, keyCacheTTL time.Duration, logger *slog.Logger) *MembershipService {
	return &MembershipService{
		parts:       parts,
		memberships: memberships,
		keyCache:    keyCache,
		keyCacheTTL: keyCacheTTL,
		logger:      logger.With(slog.String("service", "membership")),
	}
}

// LookupBatch performs the bulk membership lookup. The returned slice has
// exactly one entry per requested key, in request order; parts without
// memberships carry an empty row slice. The whole batch fails on the first
// validation or resolution error and nothing is partially returned.
func (s *MembershipService) LookupBatch(ctx context.Context, keys []string, includeDone bool) ([]domain.PartMemberships, error) {
	keys, err := domain.NormalizeKeyBatch(keys)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveKeys(ctx, keys)
	if err != nil {
		return nil, err
	}

	// Fail on the full set of unresolved keys before touching the row query.
	var missing []string
	for _, key := range keys {
		if _, ok := resolved[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.NotFoundError{Keys: missing}
	}

	partIDs := make([]int64, len(keys))
	for i, key := range keys {
		partIDs[i] = resolved[key]
	}

	rows, err := s.memberships.FindByPartIDs(ctx, partIDs, includeDone)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch membership rows: %w", err)
	}

	results := s.groupAndOrder(ctx, keys, partIDs, rows)

	s.logger.DebugContext(ctx, "bulk membership lookup completed",
		slog.Int("keys", len(keys)),
		slog.Int("rows", len(rows)),
		slog.Bool("include_done", includeDone))

	return results, nil
}

// LookupOne is the single-part lookup, implemented as a singleton batch so
// the two code paths share validation, filtering and ordering.
func (s *MembershipService) LookupOne(ctx context.Context, key string, includeDone bool) (*domain.PartMemberships, error) {
	results, err := s.LookupBatch(ctx, []string{key}, includeDone)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// resolveKeys resolves part keys to internal ids, consulting the key cache
// first when configured. Keys absent from the returned map did not resolve.
// Cache failures degrade to a database lookup and are never fatal.
func (s *MembershipService) resolveKeys(ctx context.Context, keys []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(keys))

	misses := keys
	if s.keyCache != nil {
		misses = misses[:0:0]
		for _, key := range keys {
			var id int64
			if err := s.keyCache.Get(ctx, keyCachePrefix+key, &id); err == nil {
				ids[key] = id
			} else {
				misses = append(misses, key)
			}
		}
	}

	if len(misses) > 0 {
		fromDB, err := s.parts.ResolveKeys(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve part keys: %w", err)
		}
		for key, id := range fromDB {
			ids[key] = id
			if s.keyCache != nil {
				if err := s.keyCache.SetWithTTL(ctx, keyCachePrefix+key, id, s.keyCacheTTL); err != nil {
					s.logger.WarnContext(ctx, "failed to cache part key resolution",
						slog.String("key", key),
						slog.String("error", err.Error()))
				}
			}
		}
	}

	return ids, nil
}

// groupAndOrder seeds one empty group per requested key in request order,
// assigns each raw row to its part's group, and sorts every group with the
// composite membership ordering rule.
func (s *MembershipService) groupAndOrder(ctx context.Context, keys []string, partIDs []int64, rows []domain.MembershipRow) []domain.PartMemberships {
	position := make(map[int64]int, len(partIDs))
	results := make([]domain.PartMemberships, len(keys))
	for i, key := range keys {
		position[partIDs[i]] = i
		results[i] = domain.PartMemberships{
			Key:    key,
			PartID: partIDs[i],
			Rows:   []domain.MembershipRow{},
		}
	}

	for _, row := range rows {
		pos, ok := position[row.PartID]
		if !ok {
			// The row fetch is keyed on the resolved id set, so this only
			// happens if the repository misbehaves.
			s.logger.WarnContext(ctx, "dropping membership row for unrequested part",
				slog.Int64("part_id", row.PartID),
				slog.Int64("line_id", row.LineID))
			continue
		}
		results[pos].Rows = append(results[pos].Rows, row)
	}

	for i := range results {
		group := results[i].Rows
		sort.Slice(group, func(a, b int) bool {
			return group[a].Before(group[b])
		})
	}

	return results
}
