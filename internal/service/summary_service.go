package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"pdf-summary-server/internal/model"
	"pdf-summary-server/internal/ports"
	"pdf-summary-server/internal/util"
)

// ErrSummaryNotFound : запись не существует или принадлежит другому владельцу
var ErrSummaryNotFound = fmt.Errorf("запись не найдена")

type SummaryService struct {
	summaryRepo ports.SummaryRepository
	cacheRepo   ports.CacheRepository
	storage     ports.BlobStorage
	urlTTL      time.Duration
}

func NewSummaryService(
	summaryRepo ports.SummaryRepository,
	cacheRepo ports.CacheRepository,
	storage ports.BlobStorage,
	urlTTL time.Duration,
) *SummaryService {
	return &SummaryService{
		summaryRepo: summaryRepo,
		cacheRepo:   cacheRepo,
		storage:     storage,
		urlTTL:      urlTTL,
	}
}

// ListSummaries : записи владельца с pre-signed URL; ошибка генерации URL
// для отдельной строки не роняет весь список
func (s *SummaryService) ListSummaries(ctx context.Context, ownerUUID string) ([]model.GetSummaryResult, error) {
	summaries, err := s.summaryRepo.ListByOwner(ctx, ownerUUID)
	if err != nil {
		return nil, util.LogError("[SummaryService] не удалось получить список записей", err)
	}

	results := make([]model.GetSummaryResult, 0, len(summaries))
	for i := range summaries {
		summary := summaries[i]

		url, err := s.storage.GeneratePresignedGetURL(ctx, summary.StoragePath, s.urlTTL)
		if err != nil {
			log.Printf("[SummaryService] ошибка генерации URL для записи %s: %v", summary.UUID, err)
			url = ""
		}

		results = append(results, model.GetSummaryResult{
			Summary: &summary,
			GetURL:  url,
		})
	}

	return results, nil
}

// GetSummary : запись владельца, сперва из кэша, затем из БД с прогревом.
// Кэш обслуживает chat-pdf: извлечённый текст одного документа спрашивают
// много раз подряд
func (s *SummaryService) GetSummary(ctx context.Context, summaryUUID string, ownerUUID string) (*model.Summary, error) {
	cached, err := s.cacheRepo.GetSummary(ctx, summaryUUID)
	if err != nil {
		log.Printf("[SummaryService] ошибка кэширования: %v", err)
	}

	if cached != nil {
		// кэш общий по uuid, принадлежность проверяется всегда
		if cached.OwnerUUID != ownerUUID {
			return nil, ErrSummaryNotFound
		}
		return cached, nil
	}

	summary, err := s.summaryRepo.GetByUUID(ctx, summaryUUID, ownerUUID)
	if err != nil {
		return nil, util.LogError("[SummaryService] не удалось получить запись", err)
	}
	if summary == nil {
		return nil, ErrSummaryNotFound
	}

	if err := s.cacheRepo.SetSummary(ctx, summary); err != nil {
		log.Printf("[SummaryService] ошибка кэширования записи: %v", err)
	}

	return summary, nil
}

// DeleteSummary : сперва best-effort удаление blob, затем авторитетное
// удаление записи — ошибка хранилища blob не блокирует удаление метаданных
func (s *SummaryService) DeleteSummary(ctx context.Context, summaryUUID string, ownerUUID string) error {
	summary, err := s.summaryRepo.GetByUUID(ctx, summaryUUID, ownerUUID)
	if err != nil {
		return util.LogError("[SummaryService] не удалось получить запись", err)
	}
	if summary == nil {
		return ErrSummaryNotFound
	}

	if err := s.storage.DeleteObject(ctx, summary.StoragePath); err != nil {
		log.Printf("[SummaryService] не удалось удалить blob %s: %v", summary.StoragePath, err)
	}

	deleted, err := s.summaryRepo.Delete(ctx, summaryUUID, ownerUUID)
	if err != nil {
		return util.LogError("[SummaryService] ошибка удаления записи", err)
	}
	if deleted == false {
		return ErrSummaryNotFound
	}

	if err := s.cacheRepo.DeleteSummary(ctx, summaryUUID); err != nil {
		log.Printf("[SummaryService] ошибка удаления записи из кэша: %v", err)
	}

	log.Printf("[SummaryService] запись %s успешно удалена", summaryUUID)
	return nil
}
