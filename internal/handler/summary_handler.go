package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pdf-summary-server/config"
	"pdf-summary-server/internal/model/requestresponse"
	"pdf-summary-server/internal/ports"
	"pdf-summary-server/internal/security"
	"pdf-summary-server/internal/service"
	"pdf-summary-server/internal/util"
)

const maxUploadBytes = 25 << 20

type SummaryHandler struct {
	conversionService ports.ConversionService
	summaryService    ports.SummaryService
	chatService       ports.ChatService
	db                *config.Database
	storage           ports.BlobStorage
}

func NewSummaryHandler(
	conversionService ports.ConversionService,
	summaryService ports.SummaryService,
	chatService ports.ChatService,
	db *config.Database,
	storage ports.BlobStorage,
) *SummaryHandler {
	return &SummaryHandler{
		conversionService: conversionService,
		summaryService:    summaryService,
		chatService:       chatService,
		db:                db,
		storage:           storage,
	}
}

// ConvertPDF godoc
// @Summary Конвертация PDF в суммаризованный PDF
// @Description Принимает PDF, извлекает текст, суммаризует через LLM, рендерит новый PDF и сохраняет его.
// @Tags Summaries
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF файл"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ConvertResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Файл отсутствует или не читается"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Ошибка одного из этапов конвейера"
// @Router /convert-pdf [post]
func (h *SummaryHandler) ConvertPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, err := security.GetPrincipalFromContext(ctx)
	if err != nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		util.HandleError(w, "поддерживаются только PDF файлы", http.StatusBadRequest)
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		util.HandleError(w, "ошибка чтения файла", http.StatusInternalServerError)
		return
	}

	summary, publicURL, err := h.conversionService.Convert(ctx, principal.UserUUID, header.Filename, fileBytes)
	if err != nil {
		log.Println(err)
		var pipeErr *service.PipelineError
		if errors.As(err, &pipeErr) {
			util.HandleError(w, pipeErr.Error(), http.StatusInternalServerError)
			return
		}
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	response := requestresponse.ConvertResponse{
		Message:   "PDF обработан",
		SummaryID: summary.UUID,
		PublicURL: publicURL,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ListSummaries godoc
// @Summary Список записей пользователя
// @Description Возвращает все обработанные документы владельца с pre-signed URL.
// @Tags Summaries
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListSummariesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /summaries [get]
func (h *SummaryHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, err := security.GetPrincipalFromContext(ctx)
	if err != nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	results, err := h.summaryService.ListSummaries(ctx, principal.UserUUID)
	if err != nil {
		log.Println(err)
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	response := requestresponse.ListSummariesResponse{
		Summaries: make([]requestresponse.SummaryResponse, 0, len(results)),
		Count:     len(results),
	}
	for _, result := range results {
		response.Summaries = append(response.Summaries, requestresponse.SummaryResponseFromModel(result.Summary, result.GetURL))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// DeleteSummary godoc
// @Summary Удаление записи
// @Description Удаляет blob из хранилища (best-effort) и запись из БД.
// @Tags Summaries
// @Produce json
// @Param id path string true "UUID записи"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DeleteResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Запись не найдена или принадлежит другому пользователю"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /summaries/{id} [delete]
func (h *SummaryHandler) DeleteSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, err := security.GetPrincipalFromContext(ctx)
	if err != nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	summaryUUID := chi.URLParam(r, "id")
	if summaryUUID == "" {
		util.HandleError(w, "ID записи обязателен", http.StatusBadRequest)
		return
	}

	if err := h.summaryService.DeleteSummary(ctx, summaryUUID, principal.UserUUID); err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrSummaryNotFound) {
			util.HandleError(w, "запись не найдена", http.StatusNotFound)
			return
		}
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.DeleteResponse{Message: "запись удалена"})
}

// ChatPDF godoc
// @Summary Вопрос по сохранённому документу
// @Description Отвечает на вопрос по извлечённому тексту документа.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body requestresponse.ChatRequest true "Вопрос и идентификатор документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ChatResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /chat-pdf [post]
func (h *SummaryHandler) ChatPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, err := security.GetPrincipalFromContext(ctx)
	if err != nil {
		util.HandleError(w, "пользователь не авторизован", http.StatusUnauthorized)
		return
	}

	var request requestresponse.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(request.Question) == "" || strings.TrimSpace(request.DocumentID) == "" {
		util.HandleError(w, "question и document_id обязательны", http.StatusBadRequest)
		return
	}

	answer, title, err := h.chatService.Ask(ctx, request.DocumentID, principal.UserUUID, request.Question)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrSummaryNotFound) {
			util.HandleError(w, "документ не найден", http.StatusNotFound)
			return
		}
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	response := requestresponse.ChatResponse{
		Answer:        answer,
		DocumentTitle: title,
		Question:      request.Question,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Health godoc
// @Summary Проверка работоспособности
// @Description Liveness плюс best-effort проверка БД и объектного хранилища.
// @Tags Health
// @Produce json
// @Success 200 {object} requestresponse.HealthResponse
// @Router /health [get]
func (h *SummaryHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := requestresponse.HealthResponse{
		Status:   "ok",
		Database: "ok",
		Storage:  "ok",
	}

	if err := h.db.PingContext(ctx); err != nil {
		log.Printf("[SummaryHandler] health: БД недоступна: %v", err)
		response.Database = "error"
	}

	if err := h.storage.Ping(ctx); err != nil {
		log.Printf("[SummaryHandler] health: хранилище недоступно: %v", err)
		response.Storage = "error"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
