package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvginkel/electronics-inventory/internal/core/domain"
)

func TestNormalizeKeyBatch(t *testing.T) {
	maxBatch := make([]string, domain.MaxKeyBatchSize)
	for i := range maxBatch {
		maxBatch[i] = fmt.Sprintf("PART-%03d", i)
	}
	oversized := append([]string{"PART-EXTRA"}, maxBatch...)

	tests := []struct {
		name       string
		keys       []string
		want       []string
		wantReason string
	}{
		{
			name: "passes_through_clean_batch",
			keys: []string{"R-0603-10K", "C-0805-100N"},
			want: []string{"R-0603-10K", "C-0805-100N"},
		},
		{
			name: "trims_surrounding_whitespace",
			keys: []string{"  R-0603-10K ", "\tC-0805-100N\n"},
			want: []string{"R-0603-10K", "C-0805-100N"},
		},
		{
			name: "preserves_request_order",
			keys: []string{"Z-LAST", "A-FIRST", "M-MIDDLE"},
			want: []string{"Z-LAST", "A-FIRST", "M-MIDDLE"},
		},
		{
			name: "accepts_single_key",
			keys: []string{"R-0603-10K"},
			want: []string{"R-0603-10K"},
		},
		{
			name: "accepts_max_batch",
			keys: maxBatch,
			want: maxBatch,
		},
		{
			name:       "rejects_empty_batch",
			keys:       []string{},
			wantReason: "empty batch",
		},
		{
			name:       "rejects_nil_batch",
			keys:       nil,
			wantReason: "empty batch",
		},
		{
			name:       "rejects_oversized_batch",
			keys:       oversized,
			wantReason: "batch too large",
		},
		{
			name:       "rejects_blank_key",
			keys:       []string{"R-0603-10K", "   "},
			wantReason: "blank key",
		},
		{
			name:       "rejects_duplicate_key",
			keys:       []string{"R-0603-10K", "R-0603-10K"},
			wantReason: "duplicate key: R-0603-10K",
		},
		{
			name:       "rejects_duplicate_after_trimming",
			keys:       []string{"R-0603-10K", " R-0603-10K "},
			wantReason: "duplicate key: R-0603-10K",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NormalizeKeyBatch(tt.keys)

			if tt.wantReason != "" {
				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.wantReason, validationErr.Reason)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, domain.StatusConcept.Valid())
	assert.True(t, domain.StatusReady.Valid())
	assert.True(t, domain.StatusDone.Valid())
	assert.False(t, domain.Status("archived").Valid())
	assert.False(t, domain.Status("").Valid())
}

func TestValidationError_Message(t *testing.T) {
	err := error(&domain.ValidationError{Reason: "empty batch"})
	assert.Equal(t, "invalid request: empty batch", err.Error())

	var target *domain.ValidationError
	assert.True(t, errors.As(err, &target))
}

func TestNotFoundError_NamesAllKeys(t *testing.T) {
	err := error(&domain.NotFoundError{Keys: []string{"A-1", "B-2", "C-3"}})
	assert.Equal(t, "unknown part keys: A-1, B-2, C-3", err.Error())
}
