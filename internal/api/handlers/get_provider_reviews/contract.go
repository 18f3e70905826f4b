package get_provider_reviews

import (
	"context"

	"github.com/AnushkaaaaS/Neighborly/internal/service/reviews/models"
)

type ReviewService interface {
	ListByProvider(ctx context.Context, providerID string) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
