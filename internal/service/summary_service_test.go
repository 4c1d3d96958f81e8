package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pdf-summary-server/internal/model"
	"pdf-summary-server/internal/service"
)

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) SetSummary(ctx context.Context, summary *model.Summary) error {
	return m.Called(ctx, summary).Error(0)
}

func (m *MockCacheRepository) GetSummary(ctx context.Context, uuid string) (*model.Summary, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Summary), args.Error(1)
}

func (m *MockCacheRepository) DeleteSummary(ctx context.Context, uuid string) error {
	return m.Called(ctx, uuid).Error(0)
}

func newSummaryFixture() (*MockSummaryRepository, *MockCacheRepository, *MockBlobStorage, *service.SummaryService) {
	repo := new(MockSummaryRepository)
	cache := new(MockCacheRepository)
	storage := new(MockBlobStorage)
	svc := service.NewSummaryService(repo, cache, storage, 15*time.Minute)
	return repo, cache, storage, svc
}

func storedSummary() *model.Summary {
	text := "извлечённый текст"
	return &model.Summary{
		UUID:          "summary-1",
		OwnerUUID:     "owner-1",
		Title:         "report",
		StoragePath:   "users/owner-1/summaries/s1.pdf",
		ExtractedText: &text,
		CreatedAt:     time.Now(),
	}
}

func TestDeleteSummary_BlobFailureDoesNotBlockRecordDelete(t *testing.T) {
	repo, cache, storage, svc := newSummaryFixture()

	repo.On("GetByUUID", mock.Anything, "summary-1", "owner-1").Return(storedSummary(), nil)
	storage.On("DeleteObject", mock.Anything, "users/owner-1/summaries/s1.pdf").
		Return(errors.New("хранилище недоступно"))
	repo.On("Delete", mock.Anything, "summary-1", "owner-1").Return(true, nil)
	cache.On("DeleteSummary", mock.Anything, "summary-1").Return(nil)

	err := svc.DeleteSummary(context.Background(), "summary-1", "owner-1")

	// удаление blob best-effort: запись удалена, ошибка хранилища только в логе
	require.NoError(t, err)
	repo.AssertCalled(t, "Delete", mock.Anything, "summary-1", "owner-1")
	cache.AssertCalled(t, "DeleteSummary", mock.Anything, "summary-1")
}

func TestDeleteSummary_NotFound(t *testing.T) {
	repo, _, storage, svc := newSummaryFixture()

	repo.On("GetByUUID", mock.Anything, "missing", "owner-1").Return(nil, nil)

	err := svc.DeleteSummary(context.Background(), "missing", "owner-1")

	require.ErrorIs(t, err, service.ErrSummaryNotFound)
	storage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
}

func TestDeleteSummary_ForeignRecordLooksMissing(t *testing.T) {
	repo, _, _, svc := newSummaryFixture()

	// чужая запись через owner-scoped выборку не видна
	repo.On("GetByUUID", mock.Anything, "summary-1", "intruder").Return(nil, nil)

	err := svc.DeleteSummary(context.Background(), "summary-1", "intruder")

	require.ErrorIs(t, err, service.ErrSummaryNotFound)
}

func TestGetSummary_CacheMissWarmsCache(t *testing.T) {
	repo, cache, _, svc := newSummaryFixture()

	cache.On("GetSummary", mock.Anything, "summary-1").Return(nil, nil)
	repo.On("GetByUUID", mock.Anything, "summary-1", "owner-1").Return(storedSummary(), nil)
	cache.On("SetSummary", mock.Anything, mock.AnythingOfType("*model.Summary")).Return(nil)

	summary, err := svc.GetSummary(context.Background(), "summary-1", "owner-1")

	require.NoError(t, err)
	assert.Equal(t, "summary-1", summary.UUID)
	cache.AssertCalled(t, "SetSummary", mock.Anything, mock.AnythingOfType("*model.Summary"))
}

func TestGetSummary_CacheHitSkipsRepository(t *testing.T) {
	repo, cache, _, svc := newSummaryFixture()

	cache.On("GetSummary", mock.Anything, "summary-1").Return(storedSummary(), nil)

	summary, err := svc.GetSummary(context.Background(), "summary-1", "owner-1")

	require.NoError(t, err)
	assert.Equal(t, "report", summary.Title)
	repo.AssertNotCalled(t, "GetByUUID", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetSummary_CacheHitForeignOwnerRejected(t *testing.T) {
	_, cache, _, svc := newSummaryFixture()

	cache.On("GetSummary", mock.Anything, "summary-1").Return(storedSummary(), nil)

	_, err := svc.GetSummary(context.Background(), "summary-1", "intruder")

	require.ErrorIs(t, err, service.ErrSummaryNotFound)
}

func TestListSummaries_URLFailureDoesNotDropRow(t *testing.T) {
	repo, _, storage, svc := newSummaryFixture()

	rows := []model.Summary{*storedSummary()}
	repo.On("ListByOwner", mock.Anything, "owner-1").Return(rows, nil)
	storage.On("GeneratePresignedGetURL", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return("", errors.New("хранилище недоступно"))

	results, err := svc.ListSummaries(context.Background(), "owner-1")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "summary-1", results[0].Summary.UUID)
	assert.Empty(t, results[0].GetURL)
}
