package get_provider_services

import (
	"context"

	"github.com/AnushkaaaaS/Neighborly/internal/service/catalog/models"
)

type CatalogService interface {
	ListByProvider(ctx context.Context, providerID, callerID string) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
