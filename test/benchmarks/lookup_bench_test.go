package benchmarks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/pvginkel/electronics-inventory/internal/core/domain"
	"github.com/pvginkel/electronics-inventory/internal/core/services"
)

// stubPartRepository resolves keys from a fixed in-memory map so the
// benchmarks measure the lookup pipeline rather than database latency.
type stubPartRepository struct {
	ids map[string]int64
}

func (s *stubPartRepository) ResolveKeys(_ context.Context, keys []string) (map[string]int64, error) {
	resolved := make(map[string]int64, len(keys))
	for _, key := range keys {
		if id, ok := s.ids[key]; ok {
			resolved[key] = id
		}
	}
	return resolved, nil
}

type stubMembershipRepository struct {
	rows []domain.MembershipRow
}

func (s *stubMembershipRepository) FindByPartIDs(_ context.Context, partIDs []int64, includeDone bool) ([]domain.MembershipRow, error) {
	wanted := make(map[int64]bool, len(partIDs))
	for _, id := range partIDs {
		wanted[id] = true
	}

	var out []domain.MembershipRow
	for _, row := range s.rows {
		if !wanted[row.PartID] {
			continue
		}
		if !includeDone && row.Done() {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// buildFixture creates numParts parts with rowsPerPart membership rows each,
// timestamps scattered so the per-key sort has real work to do.
func buildFixture(numParts, rowsPerPart int) ([]string, *stubPartRepository, *stubMembershipRepository) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	keys := make([]string, numParts)
	ids := make(map[string]int64, numParts)
	rows := make([]domain.MembershipRow, 0, numParts*rowsPerPart)

	for p := 0; p < numParts; p++ {
		key := fmt.Sprintf("PART-%04d", p)
		keys[p] = key
		ids[key] = int64(p + 1)

		for r := 0; r < rowsPerPart; r++ {
			lineID := int64(p*rowsPerPart + r + 1)
			rows = append(rows, domain.MembershipRow{
				PartID:        int64(p + 1),
				LineID:        lineID,
				LineStatus:    domain.StatusReady,
				Quantity:      r + 1,
				LineCreatedAt: base.Add(time.Duration(-lineID) * time.Minute),
				LineUpdatedAt: base.Add(time.Duration(lineID%7) * time.Minute),
				ListID:        int64(r + 1),
				ListName:      fmt.Sprintf("List %d", r+1),
				ListStatus:    domain.StatusReady,
				ListUpdatedAt: base.Add(time.Duration(lineID%3) * time.Minute),
			})
		}
	}

	return keys, &stubPartRepository{ids: ids}, &stubMembershipRepository{rows: rows}
}

func benchmarkLookupBatch(b *testing.B, numParts, rowsPerPart int) {
	keys, parts, memberships := buildFixture(numParts, rowsPerPart)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := services.NewMembershipService(parts, memberships, nil, time.Hour, logger)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		results, err := service.LookupBatch(ctx, keys, false)
		if err != nil {
			b.Fatalf("lookup failed: %v", err)
		}
		if len(results) != numParts {
			b.Fatalf("expected %d results, got %d", numParts, len(results))
		}
	}
}

func BenchmarkLookupBatch_SmallBatch(b *testing.B) {
	benchmarkLookupBatch(b, 10, 5)
}

func BenchmarkLookupBatch_FullBatch(b *testing.B) {
	benchmarkLookupBatch(b, domain.MaxKeyBatchSize, 5)
}

func BenchmarkLookupBatch_DenseMemberships(b *testing.B) {
	benchmarkLookupBatch(b, domain.MaxKeyBatchSize, 50)
}

func BenchmarkNormalizeKeyBatch(b *testing.B) {
	keys := make([]string, domain.MaxKeyBatchSize)
	for i := range keys {
		keys[i] = fmt.Sprintf("  PART-%04d  ", i)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := domain.NormalizeKeyBatch(keys); err != nil {
			b.Fatalf("normalize failed: %v", err)
		}
	}
}

func BenchmarkMembershipRowSort(b *testing.B) {
	_, _, memberships := buildFixture(1, 500)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows, err := memberships.FindByPartIDs(ctx, []int64{1}, true)
		if err != nil {
			b.Fatalf("fetch failed: %v", err)
		}
		sort.Slice(rows, func(a, b int) bool {
			return rows[a].Before(rows[b])
		})
	}
}
