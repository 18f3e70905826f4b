package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{name: "placeholders excluded", ratings: []int{0, 4, 5}, want: 4.5},
		{name: "no reviews", ratings: nil, want: 0},
		{name: "only placeholders", ratings: []int{0, 0}, want: 0},
		{name: "rounded to one decimal", ratings: []int{5, 4, 4}, want: 4.3},
		{name: "rounds half up", ratings: []int{5, 4, 4, 4}, want: 4.3},
		{name: "single", ratings: []int{3}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageRating(tt.ratings))
		})
	}
}

func TestValidateRating(t *testing.T) {
	for r := MinRating; r <= MaxRating; r++ {
		assert.NoError(t, ValidateRating(r))
	}
	assert.ErrorIs(t, ValidateRating(0), ErrValidation)
	assert.ErrorIs(t, ValidateRating(6), ErrInvalidRating)
}

func TestNewPlaceholderReview(t *testing.T) {
	b := &Booking{ID: uuid.New(), UserID: "user-1"}

	r := NewPlaceholderReview(b, "provider-1")

	assert.Equal(t, b.ID, r.BookingID)
	assert.Equal(t, "user-1", r.UserID)
	assert.Equal(t, "provider-1", r.ProviderID)
	assert.Equal(t, 0, r.Rating)
	assert.Empty(t, r.Comment)
	assert.True(t, r.IsPlaceholder())
}
