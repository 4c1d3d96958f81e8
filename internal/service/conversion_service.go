package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdf-summary-server/config"
	"pdf-summary-server/internal/extractor"
	"pdf-summary-server/internal/model"
	"pdf-summary-server/internal/ports"
	"pdf-summary-server/internal/util"
	"pdf-summary-server/internal/worker"
)

const (
	StageExtract   = "extract"
	StageSummarize = "summarize"
	StageRender    = "render"
	StageUpload    = "upload"
	StagePersist   = "persist"
)

// PipelineError : ошибка конвейера с тегом этапа, на котором он остановился
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("этап %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// ConversionService : конвейер convert-pdf.
// Состояния: получен → извлечён → суммаризован → отрендерен → сохранён.
// Любая ошибка обрывает конвейер; после успешной загрузки blob и неудачной
// вставки записи выполняется компенсирующее удаление blob — "blob есть,
// записи нет" не должно переживать окно ошибки
type ConversionService struct {
	extractor   ports.TextExtractor
	summarizer  ports.Summarizer
	renderer    ports.Renderer
	storage     ports.BlobStorage
	summaryRepo ports.SummaryRepository
	pool        *worker.Pool

	tempDir          string
	stageTimeout     time.Duration
	summarizeTimeout time.Duration
	renderTimeout    time.Duration
	urlTTL           time.Duration
}

func NewConversionService(
	textExtractor ports.TextExtractor,
	summarizer ports.Summarizer,
	renderer ports.Renderer,
	storage ports.BlobStorage,
	summaryRepo ports.SummaryRepository,
	pool *worker.Pool,
	pipelineCfg *config.PipelineConfig,
	rendererCfg *config.RendererConfig,
	openAICfg *config.OpenAIConfig,
	urlTTL time.Duration,
) *ConversionService {
	tempDir := pipelineCfg.TempDir
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "pdf-summary")
	}

	return &ConversionService{
		extractor:        textExtractor,
		summarizer:       summarizer,
		renderer:         renderer,
		storage:          storage,
		summaryRepo:      summaryRepo,
		pool:             pool,
		tempDir:          tempDir,
		stageTimeout:     parseDuration(pipelineCfg.StageTimeout, 30*time.Second),
		summarizeTimeout: parseDuration(openAICfg.Timeout, 120*time.Second),
		renderTimeout:    parseDuration(rendererCfg.Timeout, 60*time.Second),
		urlTTL:           urlTTL,
	}
}

// Convert : прогоняет загруженный PDF через весь конвейер и возвращает
// созданную запись вместе с pre-signed URL на готовый файл
func (s *ConversionService) Convert(ctx context.Context, ownerUUID string, filename string, pdfBytes []byte) (*model.Summary, string, error) {
	requestID := uuid.New().String()

	inputPath, err := s.saveTempFile(pdfBytes, fmt.Sprintf("input_%s.pdf", requestID))
	if err != nil {
		return nil, "", &PipelineError{Stage: StageExtract, Err: err}
	}
	defer s.cleanupTempFile(inputPath)

	// ========= извлечение текста =========
	pages, err := runStage(ctx, s.pool, s.stageTimeout, func(stageCtx context.Context) ([]model.Page, error) {
		return s.extractor.ExtractText(stageCtx, inputPath)
	})
	if err != nil {
		return nil, "", &PipelineError{Stage: StageExtract, Err: err}
	}
	if len(pages) == 0 {
		return nil, "", &PipelineError{
			Stage: StageExtract,
			Err:   &extractor.ExtractionError{Reason: "в документе нет текстового слоя"},
		}
	}

	fullText := joinPages(pages)

	// ========= суммаризация =========
	markup, err := runStage(ctx, s.pool, s.summarizeTimeout, func(stageCtx context.Context) (string, error) {
		return s.summarizer.Summarize(stageCtx, fullText)
	})
	if err != nil {
		return nil, "", &PipelineError{Stage: StageSummarize, Err: err}
	}

	markupPath, err := s.saveTempFile([]byte(markup), fmt.Sprintf("output_%s.html", requestID))
	if err != nil {
		return nil, "", &PipelineError{Stage: StageRender, Err: err}
	}
	defer s.cleanupTempFile(markupPath)

	// ========= рендер =========
	renderedPDF, err := runStage(ctx, s.pool, s.renderTimeout, func(stageCtx context.Context) ([]byte, error) {
		return s.renderer.RenderPDF(stageCtx, markupPath)
	})
	if err != nil {
		return nil, "", &PipelineError{Stage: StageRender, Err: err}
	}

	// ========= загрузка blob (строго до вставки записи) =========
	storagePath := fmt.Sprintf("users/%s/summaries/%s.pdf", ownerUUID, requestID)

	_, err = runStage(ctx, s.pool, s.stageTimeout, func(stageCtx context.Context) (struct{}, error) {
		return struct{}{}, s.storage.UploadObject(stageCtx, storagePath, renderedPDF, "application/pdf")
	})
	if err != nil {
		return nil, "", &PipelineError{Stage: StageUpload, Err: err}
	}

	// ========= вставка записи =========
	summary := &model.Summary{
		OwnerUUID:        ownerUUID,
		FilenameOriginal: filename,
		Title:            titleFromFilename(filename),
		StoragePath:      storagePath,
		ExtractedText:    &fullText,
		CreatedAt:        time.Now(),
	}

	insertedUUID, err := runStage(ctx, s.pool, s.stageTimeout, func(stageCtx context.Context) (string, error) {
		return s.summaryRepo.Insert(stageCtx, summary)
	})
	if err != nil {
		// по таймауту статус вставки неизвестен: запись могла закоммититься
		// уже после дедлайна, удаление blob тогда сломает живую запись
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			log.Printf("[ConversionService] вставка записи прервана, blob %s оставлен до сверки", storagePath)
			return nil, "", &PipelineError{Stage: StagePersist, Err: err}
		}

		// компенсирующее удаление: загруженный blob не должен осиротеть.
		// Контекст запроса к этому моменту мог истечь — берём свежий
		cleanupCtx, cancel := context.WithTimeout(context.Background(), s.stageTimeout)
		defer cancel()
		if delErr := s.storage.DeleteObject(cleanupCtx, storagePath); delErr != nil {
			log.Printf("[ConversionService] не удалось удалить осиротевший blob %s: %v", storagePath, delErr)
		}
		return nil, "", &PipelineError{Stage: StagePersist, Err: err}
	}
	summary.UUID = insertedUUID

	publicURL, err := s.storage.GeneratePresignedGetURL(ctx, storagePath, s.urlTTL)
	if err != nil {
		// запись уже опубликована, ссылку клиент сможет получить списком
		log.Printf("[ConversionService] не удалось сгенерировать URL для %s: %v", storagePath, err)
		publicURL = ""
	}

	log.Printf("[ConversionService] документ %s успешно обработан, запись %s", filename, insertedUUID)

	return summary, publicURL, nil
}

// runStage : блокирующий вызов уходит в пул воркеров и ограничивается
// собственным таймаутом этапа. Контекст этапа передаётся внутрь операции:
// дедлайн обрывает саму работу, а не только ожидание её результата
func runStage[T any](ctx context.Context, pool *worker.Pool, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return worker.RunTask(stageCtx, pool, func() (T, error) {
		return fn(stageCtx)
	})
}

// saveTempFile : сохраняет данные во временную директорию; имена уникальны
// на запрос, конкурентные конвертации не пересекаются на диске
func (s *ConversionService) saveTempFile(data []byte, name string) (string, error) {
	if err := os.MkdirAll(s.tempDir, 0755); err != nil {
		return "", util.LogError("[ConversionService] ошибка создания временной директории", err)
	}

	path := filepath.Join(s.tempDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", util.LogError("[ConversionService] ошибка записи временного файла", err)
	}

	return path, nil
}

func (s *ConversionService) cleanupTempFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("[ConversionService] не удалось удалить временный файл %s: %v", path, err)
	}
}

func joinPages(pages []model.Page) string {
	var b strings.Builder
	for _, page := range pages {
		fmt.Fprintf(&b, "--- Page %d ---\n", page.Number)
		b.WriteString(page.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func titleFromFilename(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
