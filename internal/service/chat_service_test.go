package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pdf-summary-server/config"
	"pdf-summary-server/internal/model"
	"pdf-summary-server/internal/service"
)

type MockSummaryService struct{ mock.Mock }

func (m *MockSummaryService) ListSummaries(ctx context.Context, ownerUUID string) ([]model.GetSummaryResult, error) {
	args := m.Called(ctx, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GetSummaryResult), args.Error(1)
}

func (m *MockSummaryService) GetSummary(ctx context.Context, summaryUUID string, ownerUUID string) (*model.Summary, error) {
	args := m.Called(ctx, summaryUUID, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Summary), args.Error(1)
}

func (m *MockSummaryService) DeleteSummary(ctx context.Context, summaryUUID string, ownerUUID string) error {
	return m.Called(ctx, summaryUUID, ownerUUID).Error(0)
}

func newChatService(summaries *MockSummaryService, llm *MockSummarizer, budget int) *service.ChatService {
	return service.NewChatService(summaries, llm, &config.ChatConfig{ContextBudgetChars: budget})
}

func summaryWithText(text string) *model.Summary {
	return &model.Summary{
		UUID:             "summary-1",
		OwnerUUID:        "owner-1",
		FilenameOriginal: "report.pdf",
		Title:            "report",
		StoragePath:      "users/owner-1/summaries/s1.pdf",
		ExtractedText:    &text,
	}
}

func TestBoundContext_ShortTextUnchanged(t *testing.T) {
	text := "короткий документ"
	assert.Equal(t, text, service.BoundContext(text, 1000))
}

func TestBoundContext_TruncatesLongText(t *testing.T) {
	head := strings.Repeat("a", 5000)
	middle := strings.Repeat("b", 20000)
	tail := strings.Repeat("c", 5000)
	text := head + middle + tail
	budget := 6000

	bounded := service.BoundContext(text, budget)

	marker := "[... middle of document truncated ...]"
	assert.Equal(t, 1, strings.Count(bounded, marker), "маркер усечения ровно один")
	assert.True(t, strings.HasPrefix(bounded, "aaa"), "голова документа сохранена")
	assert.True(t, strings.HasSuffix(bounded, "ccc"), "хвост документа сохранён")
	assert.LessOrEqual(t, len(bounded), budget+len(marker)+4, "итоговый размер ограничен бюджетом плюс маркер")
}

func TestBoundContext_CutsOnRuneBoundaries(t *testing.T) {
	// кириллица: два байта на символ, нечётные бюджеты режут руну пополам
	text := strings.Repeat("я", 10000)

	for _, budget := range []int{1001, 1003} {
		bounded := service.BoundContext(text, budget)

		assert.True(t, utf8.ValidString(bounded), "бюджет %d: срез не должен ломать UTF-8", budget)
		assert.True(t, strings.HasPrefix(bounded, "я"))
		assert.True(t, strings.HasSuffix(bounded, "я"))
	}
}

func TestAsk_PromptContainsQuestionAndContent(t *testing.T) {
	summaries := new(MockSummaryService)
	llm := new(MockSummarizer)
	chat := newChatService(summaries, llm, 1000)

	summaries.On("GetSummary", mock.Anything, "summary-1", "owner-1").Return(summaryWithText("содержимое отчёта"), nil)

	var capturedPrompt string
	llm.On("Answer", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { capturedPrompt = args.String(1) }).
		Return("ответ модели", nil)

	answer, title, err := chat.Ask(context.Background(), "summary-1", "owner-1", "О чём документ?")

	require.NoError(t, err)
	assert.Equal(t, "ответ модели", answer)
	assert.Equal(t, "report", title)
	assert.Contains(t, capturedPrompt, "содержимое отчёта")
	assert.Contains(t, capturedPrompt, "О чём документ?")
}

func TestAsk_NoStoredTextFallsBackToTitle(t *testing.T) {
	summaries := new(MockSummaryService)
	llm := new(MockSummarizer)
	chat := newChatService(summaries, llm, 1000)

	record := summaryWithText("")
	record.ExtractedText = nil
	summaries.On("GetSummary", mock.Anything, "summary-1", "owner-1").Return(record, nil)

	var capturedPrompt string
	llm.On("Answer", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { capturedPrompt = args.String(1) }).
		Return("ответ без текста", nil)

	_, _, err := chat.Ask(context.Background(), "summary-1", "owner-1", "Вопрос")

	require.NoError(t, err)
	assert.Contains(t, capturedPrompt, "text content is not available")
	assert.Contains(t, capturedPrompt, "report.pdf")
}

func TestAsk_DegradedAnswerOnLLMFailure(t *testing.T) {
	summaries := new(MockSummaryService)
	llm := new(MockSummarizer)
	chat := newChatService(summaries, llm, 1000)

	summaries.On("GetSummary", mock.Anything, "summary-1", "owner-1").Return(summaryWithText("текст"), nil)
	llm.On("Answer", mock.Anything, mock.AnythingOfType("string")).Return("", errors.New("сервис недоступен"))

	answer, title, err := chat.Ask(context.Background(), "summary-1", "owner-1", "Вопрос")

	// совещательный эндпоинт: ошибка LLM не наружу, а деградационный ответ
	require.NoError(t, err)
	assert.Equal(t, "report", title)
	assert.Equal(t, "The assistant is temporarily unavailable. Please try again in a moment.", answer)
}

func TestAsk_UnknownDocument(t *testing.T) {
	summaries := new(MockSummaryService)
	llm := new(MockSummarizer)
	chat := newChatService(summaries, llm, 1000)

	summaries.On("GetSummary", mock.Anything, "missing", "owner-1").Return(nil, service.ErrSummaryNotFound)

	_, _, err := chat.Ask(context.Background(), "missing", "owner-1", "Вопрос")

	require.ErrorIs(t, err, service.ErrSummaryNotFound)
	llm.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything)
}
