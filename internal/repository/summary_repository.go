package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pdf-summary-server/config"
	"pdf-summary-server/internal/model"
	"pdf-summary-server/internal/util"
)

// PersistenceError : операция с удалённым хранилищем записей не удалась
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ошибка хранилища (%s): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ошибка хранилища (%s)", e.Op)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type SummaryRepository struct {
	*config.Database
}

func NewSummaryRepository(database *config.Database) *SummaryRepository {
	return &SummaryRepository{database}
}

// Insert : сохраняет новую запись; uuid назначает БД. Отсутствие
// возвращённого идентификатора — ошибка, даже если INSERT формально прошёл
func (r *SummaryRepository) Insert(ctx context.Context, summary *model.Summary) (string, error) {
	query := `
		INSERT INTO summaries (owner_uuid, filename_original, title, storage_path, extracted_text, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING uuid
	`

	var insertedUUID string
	err := r.QueryRowxContext(
		ctx,
		query,
		summary.OwnerUUID,
		summary.FilenameOriginal,
		summary.Title,
		summary.StoragePath,
		summary.ExtractedText,
	).Scan(&insertedUUID)
	if err != nil {
		return "", &PersistenceError{Op: "insert", Err: err}
	}

	if insertedUUID == "" {
		return "", &PersistenceError{Op: "insert", Err: fmt.Errorf("БД не вернула идентификатор записи")}
	}

	return insertedUUID, nil
}

// ListByOwner : все записи владельца, новые первыми
func (r *SummaryRepository) ListByOwner(ctx context.Context, ownerUUID string) ([]model.Summary, error) {
	query := `
		SELECT uuid, owner_uuid, filename_original, title, storage_path, extracted_text, created_at
		FROM summaries
		WHERE owner_uuid = $1
		ORDER BY created_at DESC
	`

	summaries := []model.Summary{}
	if err := r.SelectContext(ctx, &summaries, query, ownerUUID); err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}

	return summaries, nil
}

// GetByUUID : запись по идентификатору, всегда в рамках владельца —
// чужую запись через этот интерфейс прочитать нельзя
func (r *SummaryRepository) GetByUUID(ctx context.Context, summaryUUID string, ownerUUID string) (*model.Summary, error) {
	query := `
		SELECT uuid, owner_uuid, filename_original, title, storage_path, extracted_text, created_at
		FROM summaries
		WHERE uuid = $1 AND owner_uuid = $2
	`

	var summary model.Summary
	err := r.GetContext(ctx, &summary, query, summaryUUID, ownerUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get", Err: err}
	}

	return &summary, nil
}

// Delete : удаляет запись владельца; false — записи не было
func (r *SummaryRepository) Delete(ctx context.Context, summaryUUID string, ownerUUID string) (bool, error) {
	query := `
		DELETE FROM summaries
		WHERE uuid = $1 AND owner_uuid = $2
	`

	result, err := r.ExecContext(ctx, query, summaryUUID, ownerUUID)
	if err != nil {
		return false, &PersistenceError{Op: "delete", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, util.LogError("[SummaryRepository] не удалось получить число удалённых строк", err)
	}

	return affected > 0, nil
}
