package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pvginkel/electronics-inventory/internal/core/domain"
	"github.com/pvginkel/electronics-inventory/internal/handlers"
	"github.com/pvginkel/electronics-inventory/test/helpers"
	"github.com/pvginkel/electronics-inventory/test/mocks"
)

func newMembershipHandler(t *testing.T) (*handlers.MembershipHandler, *mocks.MockMembershipService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockMembershipService(ctrl)
	return handlers.NewMembershipHandler(service, helpers.TestLogger()), service
}

func samplePartMemberships(key string) domain.PartMemberships {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	price := decimal.RequireFromString("0.42")

	return domain.PartMemberships{
		Key:    key,
		PartID: 1,
		Rows: []domain.MembershipRow{
			{
				PartID:        1,
				LineID:        10,
				LineStatus:    domain.StatusReady,
				Quantity:      25,
				UnitPrice:     &price,
				Note:          "restock",
				LineCreatedAt: now.Add(-time.Hour),
				LineUpdatedAt: now,
				ListID:        5,
				ListName:      "Bench restock",
				ListStatus:    domain.StatusReady,
				ListUpdatedAt: now,
				SellerName:    "Mouser",
				SellerWebsite: "https://www.mouser.com",
			},
		},
	}
}

func TestLookupBatch_Success(t *testing.T) {
	handler, service := newMembershipHandler(t)

	service.EXPECT().
		LookupBatch(gomock.Any(), []string{"A", "B"}, true).
		Return([]domain.PartMemberships{
			samplePartMemberships("A"),
			{Key: "B", PartID: 2, Rows: []domain.MembershipRow{}},
		}, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"keys":         []string{"A", "B"},
		"include_done": true,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parts/memberships", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.LookupBatch(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.BulkMembershipResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "A", resp.Results[0].Key)
	require.Len(t, resp.Results[0].Memberships, 1)

	m := resp.Results[0].Memberships[0]
	assert.Equal(t, int64(10), m.LineID)
	assert.Equal(t, "Bench restock", m.ListName)
	assert.Equal(t, "ready", m.LineStatus)
	require.NotNil(t, m.UnitPrice)
	assert.Equal(t, "0.42", *m.UnitPrice)
	require.NotNil(t, m.Seller)
	assert.Equal(t, "Mouser", m.Seller.Name)

	// Key without memberships serializes as an empty array, not null
	assert.Equal(t, "B", resp.Results[1].Key)
	require.NotNil(t, resp.Results[1].Memberships)
	assert.Empty(t, resp.Results[1].Memberships)
	assert.Contains(t, w.Body.String(), `"memberships":[]`)
}

func TestLookupBatch_InvalidBody(t *testing.T) {
	handler, _ := newMembershipHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parts/memberships", bytes.NewReader([]byte(`{not json`)))
	w := httptest.NewRecorder()

	handler.LookupBatch(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestLookupBatch_ValidationError(t *testing.T) {
	handler, service := newMembershipHandler(t)

	service.EXPECT().
		LookupBatch(gomock.Any(), gomock.Any(), false).
		Return(nil, &domain.ValidationError{Reason: "duplicate key: A"})

	body, _ := json.Marshal(map[string]interface{}{"keys": []string{"A", "A"}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parts/memberships", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.LookupBatch(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate key: A")
}

func TestLookupBatch_UnknownKeys(t *testing.T) {
	handler, service := newMembershipHandler(t)

	service.EXPECT().
		LookupBatch(gomock.Any(), []string{"A", "B", "C"}, false).
		Return(nil, &domain.NotFoundError{Keys: []string{"A", "C"}})

	body, _ := json.Marshal(map[string]interface{}{"keys": []string{"A", "B", "C"}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parts/memberships", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.LookupBatch(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Error       string   `json:"error"`
		MissingKeys []string `json:"missing_keys"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unknown part keys", resp.Error)
	assert.Equal(t, []string{"A", "C"}, resp.MissingKeys)
}

func TestLookupBatch_InternalError(t *testing.T) {
	handler, service := newMembershipHandler(t)

	service.EXPECT().
		LookupBatch(gomock.Any(), gomock.Any(), false).
		Return(nil, errors.New("connection refused"))

	body, _ := json.Marshal(map[string]interface{}{"keys": []string{"A"}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parts/memberships", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.LookupBatch(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal details never leak to the caller
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestLookupOne_Success(t *testing.T) {
	handler, service := newMembershipHandler(t)

	result := samplePartMemberships("R-0603-10K")
	service.EXPECT().
		LookupOne(gomock.Any(), "R-0603-10K", false).
		Return(&result, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/R-0603-10K/memberships", nil)
	req.SetPathValue("key", "R-0603-10K")
	w := httptest.NewRecorder()

	handler.LookupOne(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var entry handlers.MembershipEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "R-0603-10K", entry.Key)
	require.Len(t, entry.Memberships, 1)
}

func TestLookupOne_IncludeDoneQueryParam(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantArg    bool
		wantStatus int
	}{
		{"defaults_to_false", "", false, http.StatusOK},
		{"parses_true", "?include_done=true", true, http.StatusOK},
		{"parses_false", "?include_done=false", false, http.StatusOK},
		{"rejects_garbage", "?include_done=banana", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := newMembershipHandler(t)

			if tt.wantStatus == http.StatusOK {
				result := samplePartMemberships("A")
				service.EXPECT().
					LookupOne(gomock.Any(), "A", tt.wantArg).
					Return(&result, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/A/memberships"+tt.query, nil)
			req.SetPathValue("key", "A")
			w := httptest.NewRecorder()

			handler.LookupOne(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestLookupOne_UnknownKey(t *testing.T) {
	handler, service := newMembershipHandler(t)

	service.EXPECT().
		LookupOne(gomock.Any(), "MISSING", false).
		Return(nil, &domain.NotFoundError{Keys: []string{"MISSING"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/MISSING/memberships", nil)
	req.SetPathValue("key", "MISSING")
	w := httptest.NewRecorder()

	handler.LookupOne(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING")
}

func TestLookupOne_BlankKeyIsValidationError(t *testing.T) {
	handler, service := newMembershipHandler(t)

	service.EXPECT().
		LookupOne(gomock.Any(), " ", false).
		Return(nil, &domain.ValidationError{Reason: "blank key"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/%20/memberships", nil)
	req.SetPathValue("key", " ")
	w := httptest.NewRecorder()

	handler.LookupOne(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "blank key")
}
