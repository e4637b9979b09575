// internal/core/domain/shopping.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status shared by shopping lists and lines
type Status string

// Status constants
const (
	StatusConcept Status = "concept"
	StatusReady   Status = "ready"
	StatusDone    Status = "done"
)

// Valid reports whether the status is one of the known lifecycle values
func (s Status) Valid() bool {
	switch s {
	case StatusConcept, StatusReady, StatusDone:
		return true
	}
	return false
}

// MaxKeyBatchSize is the upper bound on part keys per bulk lookup request.
const MaxKeyBatchSize = 100

// Part represents a stocked electronic part. The Key is the external,
// caller-facing identifier; ID is internal and never leaves the service.
type Part struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Seller represents a vendor a shopping list line can be ordered from
type Seller struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

// ShoppingList represents a purchase planning list
type ShoppingList struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShoppingListLine represents one part entry on a shopping list
type ShoppingListLine struct {
	ID             int64            `json:"id"`
	ShoppingListID int64            `json:"shopping_list_id"`
	PartID         int64            `json:"part_id"`
	SellerID       *int64           `json:"seller_id,omitempty"`
	Quantity       int              `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
	Note           string           `json:"note,omitempty"`
	Status         Status           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// NormalizeKeyBatch trims and validates a bulk lookup key batch. It enforces
// the batch-shape invariants: 1..MaxKeyBatchSize entries, no blank keys, no
// exact duplicates after trimming. Returns the trimmed keys in request order.
func NormalizeKeyBatch(keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, &ValidationError{Reason: "empty batch"}
	}
	if len(keys) > MaxKeyBatchSize {
		return nil, &ValidationError{Reason: "batch too large"}
	}

	trimmed := make([]string, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for i, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, &ValidationError{Reason: "blank key"}
		}
		if _, dup := seen[key]; dup {
			return nil, &ValidationError{Reason: "duplicate key: " + key}
		}
		seen[key] = struct{}{}
		trimmed[i] = key
	}

	return trimmed, nil
}
