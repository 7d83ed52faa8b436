package order

import (
	"testing"

	"github.com/example/storefront-core/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"PENDING", StatusPending, false},
		{"shipped", StatusShipped, false},
		{" return_request ", StatusReturnRequest, false},
		{"REFUNDED", "", true},
		{"", "", true},
		{"LOST", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				assert.ErrorIs(t, err, apperr.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatuses_AllHaveDescriptions(t *testing.T) {
	statuses := Statuses()
	assert.Len(t, statuses, 9)

	for _, s := range statuses {
		assert.True(t, s.Valid(), s)
		assert.NotEqual(t, "Your order status was updated.", s.Description(), s)
	}
	assert.Equal(t, "Your order status was updated.", Status("REFUNDED").Description())
}
