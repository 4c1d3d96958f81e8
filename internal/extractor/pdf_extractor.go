package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"pdf-summary-server/internal/model"
)

// ExtractionError : входной файл не является корректным PDF либо чтение
// текстового слоя не удалось
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ошибка извлечения текста: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ошибка извлечения текста: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// PDFExtractor : постраничное извлечение текстового слоя PDF.
// Страницы без текста пропускаются; пустой результат — не ошибка,
// решение о нём принимает вызывающая сторона
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) ExtractText(ctx context.Context, path string) ([]model.Page, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &ExtractionError{Reason: "не удалось открыть PDF", Err: err}
	}
	defer file.Close()

	var pages []model.Page
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// повреждённая страница не роняет весь документ
			continue
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		pages = append(pages, model.Page{
			Number: pageNum,
			Text:   text,
		})
	}

	return pages, nil
}
