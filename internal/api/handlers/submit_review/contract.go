package submit_review

import (
	"context"

	"github.com/AnushkaaaaS/Neighborly/internal/service/reviews/models"
)

type ReviewService interface {
	Submit(ctx context.Context, req *models.SubmitReviewRequest) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
