// internal/core/domain/membership.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipRow is the read-time projection of one shopping list line
// together with the list and seller fields the serializer needs. It is built
// per request from a single join query and never persisted.
type MembershipRow struct {
	PartID        int64
	LineID        int64
	LineStatus    Status
	Quantity      int
	UnitPrice     *decimal.Decimal
	Note          string
	LineCreatedAt time.Time
	LineUpdatedAt time.Time
	ListID        int64
	ListName      string
	ListStatus    Status
	ListUpdatedAt time.Time
	SellerName    string
	SellerWebsite string
}

// Done reports whether the row is excluded by the default status filter,
// i.e. either the line or its list has reached the done state.
func (r MembershipRow) Done() bool {
	return r.LineStatus == StatusDone || r.ListStatus == StatusDone
}

// Before implements the composite membership ordering rule: most recently
// updated line first, then most recently updated list, then oldest line
// first, with the line id as the final deterministic tie-break. The single
// and bulk lookups both sort with this rule so the two paths cannot diverge.
func (r MembershipRow) Before(other MembershipRow) bool {
	if !r.LineUpdatedAt.Equal(other.LineUpdatedAt) {
		return r.LineUpdatedAt.After(other.LineUpdatedAt)
	}
	if !r.ListUpdatedAt.Equal(other.ListUpdatedAt) {
		return r.ListUpdatedAt.After(other.ListUpdatedAt)
	}
	if !r.LineCreatedAt.Equal(other.LineCreatedAt) {
		return r.LineCreatedAt.Before(other.LineCreatedAt)
	}
	return r.LineID < other.LineID
}

// PartMemberships pairs one requested part key with its ordered membership
// rows. Rows is never nil; a part with no memberships carries an empty slice.
type PartMemberships struct {
	Key    string
	PartID int64
	Rows   []MembershipRow
}
