package review

import (
	"errors"
	"fmt"

	"github.com/AnushkaaaaS/Neighborly/internal/domain"
)

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = fmt.Errorf("review.repository: %w", domain.ErrNotFound)

	// ErrReviewExists возвращается, когда отзыв на бронирование уже существует
	ErrReviewExists = fmt.Errorf("review.repository: review already exists: %w", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("review.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("review.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("review.repository: failed to scan row")
)
