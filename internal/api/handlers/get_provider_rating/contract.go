package get_provider_rating

import (
	"context"

	"github.com/AnushkaaaaS/Neighborly/internal/service/reviews/models"
)

type ReviewService interface {
	ProviderRating(ctx context.Context, providerID string) (*models.RatingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
