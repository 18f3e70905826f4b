package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidRating rating outside MinRating..MaxRating
var ErrInvalidRating = fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, MinRating, MaxRating)

// Review feedback tied one-to-one to a completed booking
type Review struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	UserID     string
	ProviderID string
	Rating     int // UnratedRating for a placeholder
	Comment    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPlaceholderReview creates the unrated review opened when a booking completes
func NewPlaceholderReview(booking *Booking, providerID string) *Review {
	return &Review{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		ProviderID: providerID,
		Rating:     UnratedRating,
		Comment:    "",
	}
}

// IsPlaceholder returns true if the user has not rated yet
func (r *Review) IsPlaceholder() bool {
	return r.Rating == UnratedRating
}

// ValidateRating checks a user-submitted rating
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// AverageRating mean of the rated reviews rounded to one decimal.
// Placeholders are excluded; no rated reviews gives 0.
func AverageRating(ratings []int) float64 {
	sum, n := 0, 0
	for _, r := range ratings {
		if r == UnratedRating {
			continue
		}
		sum += r
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}

// ReviewDetails review with reviewer and service summary for listings
type ReviewDetails struct {
	Review

	ReviewerName *string
	ServiceTitle string
}

// ProviderStats dashboard numbers of a provider
type ProviderStats struct {
	UpcomingCount  int
	CompletedCount int
	Earnings       int64
	Rating         float64
}
