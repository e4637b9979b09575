package domain_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pvginkel/electronics-inventory/internal/core/domain"
)

func TestMembershipRow_Done(t *testing.T) {
	tests := []struct {
		name       string
		lineStatus domain.Status
		listStatus domain.Status
		want       bool
	}{
		{"both_active", domain.StatusConcept, domain.StatusReady, false},
		{"line_done", domain.StatusDone, domain.StatusReady, true},
		{"list_done", domain.StatusReady, domain.StatusDone, true},
		{"both_done", domain.StatusDone, domain.StatusDone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := domain.MembershipRow{LineStatus: tt.lineStatus, ListStatus: tt.listStatus}
			assert.Equal(t, tt.want, row.Done())
		})
	}
}

func TestMembershipRow_Before(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	row := func(lineUpdated, listUpdated, lineCreated time.Time, lineID int64) domain.MembershipRow {
		return domain.MembershipRow{
			LineID:        lineID,
			LineCreatedAt: lineCreated,
			LineUpdatedAt: lineUpdated,
			ListUpdatedAt: listUpdated,
		}
	}

	tests := []struct {
		name string
		a, b domain.MembershipRow
		want bool
	}{
		{
			name: "newer_line_update_wins",
			a:    row(base.Add(time.Hour), base, base, 1),
			b:    row(base, base, base, 2),
			want: true,
		},
		{
			name: "older_line_update_loses",
			a:    row(base, base, base, 1),
			b:    row(base.Add(time.Hour), base, base, 2),
			want: false,
		},
		{
			name: "list_update_breaks_line_tie",
			a:    row(base, base.Add(time.Minute), base, 5),
			b:    row(base, base, base, 1),
			want: true,
		},
		{
			name: "older_line_creation_breaks_update_ties",
			a:    row(base, base, base.Add(-time.Hour), 5),
			b:    row(base, base, base, 1),
			want: true,
		},
		{
			name: "line_id_is_final_tie_break",
			a:    row(base, base, base, 1),
			b:    row(base, base, base, 2),
			want: true,
		},
		{
			name: "identical_rows_are_not_before_each_other",
			a:    row(base, base, base, 1),
			b:    row(base, base, base, 1),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Before(tt.b))
		})
	}
}

func TestMembershipRow_Before_TotalOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := []domain.MembershipRow{
		{LineID: 3, LineUpdatedAt: base, ListUpdatedAt: base, LineCreatedAt: base},
		{LineID: 1, LineUpdatedAt: base.Add(2 * time.Hour), ListUpdatedAt: base, LineCreatedAt: base},
		{LineID: 2, LineUpdatedAt: base, ListUpdatedAt: base.Add(time.Hour), LineCreatedAt: base},
		{LineID: 4, LineUpdatedAt: base, ListUpdatedAt: base, LineCreatedAt: base.Add(-time.Hour)},
		{LineID: 5, LineUpdatedAt: base.Add(2 * time.Hour), ListUpdatedAt: base, LineCreatedAt: base},
	}

	sort.Slice(rows, func(a, b int) bool {
		return rows[a].Before(rows[b])
	})

	got := make([]int64, len(rows))
	for i, r := range rows {
		got[i] = r.LineID
	}

	// Line 1 and 5 share the newest line update and fall back to line id.
	// Line 2's list update beats 4's older creation, which beats plain line 3.
	assert.Equal(t, []int64{1, 5, 2, 4, 3}, got)
}
