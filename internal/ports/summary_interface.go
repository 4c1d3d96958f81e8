package ports

import (
	"context"

	"pdf-summary-server/internal/model"
)

// SummaryRepository : SQL слой
type SummaryRepository interface {
	Insert(ctx context.Context, summary *model.Summary) (string, error)
	ListByOwner(ctx context.Context, ownerUUID string) ([]model.Summary, error)
	GetByUUID(ctx context.Context, summaryUUID string, ownerUUID string) (*model.Summary, error)
	Delete(ctx context.Context, summaryUUID string, ownerUUID string) (bool, error)
}

// ConversionService : конвейер convert-pdf целиком
type ConversionService interface {
	Convert(ctx context.Context, ownerUUID string, filename string, pdfBytes []byte) (*model.Summary, string, error)
}

// SummaryService : операции над готовыми записями
type SummaryService interface {
	ListSummaries(ctx context.Context, ownerUUID string) ([]model.GetSummaryResult, error)
	GetSummary(ctx context.Context, summaryUUID string, ownerUUID string) (*model.Summary, error)
	DeleteSummary(ctx context.Context, summaryUUID string, ownerUUID string) error
}

// ChatService : вопросы по сохранённому документу
type ChatService interface {
	Ask(ctx context.Context, summaryUUID string, ownerUUID string, question string) (answer string, title string, err error)
}
