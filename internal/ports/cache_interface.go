package ports

import (
	"context"

	"pdf-summary-server/internal/model"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetSummary(ctx context.Context, summary *model.Summary) error
	GetSummary(ctx context.Context, uuid string) (*model.Summary, error)
	DeleteSummary(ctx context.Context, uuid string) error
}
