package ports

import (
	"context"

	"pdf-summary-server/internal/model"
)

// TextExtractor : извлечение текста из PDF постранично
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) ([]model.Page, error)
}

// Summarizer : клиент сервиса генерации текста
type Summarizer interface {
	Summarize(ctx context.Context, fullText string) (string, error)
	Answer(ctx context.Context, prompt string) (string, error)
}

// Renderer : рендер HTML в PDF через headless-браузер
type Renderer interface {
	RenderPDF(ctx context.Context, htmlPath string) ([]byte, error)
}
