// internal/handlers/membership.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pvginkel/electronics-inventory/internal/core/domain"
	"github.com/pvginkel/electronics-inventory/internal/core/ports"
)

// MembershipHandler handles part membership lookup requests
type MembershipHandler struct {
	service ports.MembershipService
	logger  *slog.Logger
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(service ports.MembershipService, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "membership")),
	}
}

// LookupBatch handles POST /api/v1/parts/memberships
func (h *MembershipHandler) LookupBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BulkMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.service.LookupBatch(ctx, req.Keys, req.IncludeDone)
	if err != nil {
		h.respondLookupError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, BulkMembershipResponse{
		Results: toMembershipEntries(results),
	})
}

// LookupOne handles GET /api/v1/parts/{key}/memberships
func (h *MembershipHandler) LookupOne(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := r.PathValue("key")

	includeDone := false
	if v := r.URL.Query().Get("include_done"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid include_done value")
			return
		}
		includeDone = parsed
	}

	result, err := h.service.LookupOne(ctx, key, includeDone)
	if err != nil {
		h.respondLookupError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toMembershipEntry(*result))
}

// respondLookupError maps service errors onto HTTP status codes. Validation
// failures are the caller's fault, unknown keys are reported with the full
// key list, everything else is an internal failure.
func (h *MembershipHandler) respondLookupError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		h.respondError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		h.respondJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":        "unknown part keys",
			"missing_keys": notFoundErr.Keys,
		})
		return
	}

	h.logger.ErrorContext(ctx, "membership lookup failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	h.respondError(w, http.StatusInternalServerError, "Failed to look up memberships")
}

// Helper methods

func (h *MembershipHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *MembershipHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// Request/Response DTOs

// BulkMembershipRequest represents the request body for a bulk lookup
type BulkMembershipRequest struct {
	Keys        []string `json:"keys"`
	IncludeDone bool     `json:"include_done"`
}

// BulkMembershipResponse carries one entry per requested key, in request order
type BulkMembershipResponse struct {
	Results []MembershipEntry `json:"results"`
}

// MembershipEntry holds the memberships of a single part
type MembershipEntry struct {
	Key         string          `json:"key"`
	Memberships []MembershipDTO `json:"memberships"`
}

// MembershipDTO is the wire form of one shopping list line
type MembershipDTO struct {
	LineID        int64      `json:"line_id"`
	ListID        int64      `json:"list_id"`
	ListName      string     `json:"list_name"`
	ListStatus    string     `json:"list_status"`
	LineStatus    string     `json:"line_status"`
	Quantity      int        `json:"quantity"`
	UnitPrice     *string    `json:"unit_price,omitempty"`
	Note          string     `json:"note,omitempty"`
	Seller        *SellerDTO `json:"seller,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ListUpdatedAt time.Time  `json:"list_updated_at"`
}

// SellerDTO is the wire form of a line's seller reference
type SellerDTO struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

func toMembershipEntries(results []domain.PartMemberships) []MembershipEntry {
	entries := make([]MembershipEntry, 0, len(results))
	for _, result := range results {
		entries = append(entries, toMembershipEntry(result))
	}
	return entries
}

func toMembershipEntry(result domain.PartMemberships) MembershipEntry {
	memberships := make([]MembershipDTO, 0, len(result.Rows))
	for _, row := range result.Rows {
		memberships = append(memberships, toMembershipDTO(row))
	}

	return MembershipEntry{
		Key:         result.Key,
		Memberships: memberships,
	}
}

func toMembershipDTO(row domain.MembershipRow) MembershipDTO {
	dto := MembershipDTO{
		LineID:        row.LineID,
		ListID:        row.ListID,
		ListName:      row.ListName,
		ListStatus:    string(row.ListStatus),
		LineStatus:    string(row.LineStatus),
		Quantity:      row.Quantity,
		Note:          row.Note,
		CreatedAt:     row.LineCreatedAt,
		UpdatedAt:     row.LineUpdatedAt,
		ListUpdatedAt: row.ListUpdatedAt,
	}

	if row.UnitPrice != nil {
		price := row.UnitPrice.String()
		dto.UnitPrice = &price
	}

	if row.SellerName != "" {
		dto.Seller = &SellerDTO{
			Name:    row.SellerName,
			Website: row.SellerWebsite,
		}
	}

	return dto
}
