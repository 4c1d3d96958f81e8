package requestresponse

import (
	"time"

	"pdf-summary-server/internal/model"
)

// ConvertResponse : ответ на успешную конвертацию PDF
type ConvertResponse struct {
	Message   string `json:"message" example:"PDF обработан"`
	SummaryID string `json:"summary_id" example:"qwdj1q4o34u34ih759ou1"`
	PublicURL string `json:"public_url" example:"https://storage/users/u1/summaries/s1.pdf"`
}

// SummaryResponse : описывает запись для JSON-ответа
type SummaryResponse struct {
	UUID             string `json:"id" example:"qwdj1q4o34u34ih759ou1"`
	FilenameOriginal string `json:"original_filename" example:"report.pdf"`
	Title            string `json:"title" example:"Q3 Report"`
	PublicURL        string `json:"public_url,omitempty"`
	CreatedAt        string `json:"created_at" example:"2025-08-23T12:34:56Z"`
}

// SummaryResponseFromModel : конвертирует model.Summary в SummaryResponse
func SummaryResponseFromModel(s *model.Summary, getURL string) SummaryResponse {
	return SummaryResponse{
		UUID:             s.UUID,
		FilenameOriginal: s.FilenameOriginal,
		Title:            s.Title,
		PublicURL:        getURL,
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
	}
}

// ListSummariesResponse : ответ API со списком записей
type ListSummariesResponse struct {
	Summaries []SummaryResponse `json:"summaries"`
	Count     int               `json:"count" example:"10"`
}

// ChatRequest : вопрос по сохранённому документу
type ChatRequest struct {
	Question   string `json:"question" example:"О чём этот документ?"`
	DocumentID string `json:"document_id" example:"qwdj1q4o34u34ih759ou1"`
}

// ChatResponse : ответ ассистента
type ChatResponse struct {
	Answer        string `json:"answer"`
	DocumentTitle string `json:"document_title"`
	Question      string `json:"question"`
}

// DeleteResponse : подтверждение удаления
type DeleteResponse struct {
	Message string `json:"message" example:"запись удалена"`
}

// HealthResponse : состояние сервиса и внешних зависимостей
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
	Storage  string `json:"storage" example:"ok"`
}

// ErrorResponse : общий объект ошибки
type ErrorResponse struct {
	Detail string `json:"detail" example:"описание ошибки"`
}
