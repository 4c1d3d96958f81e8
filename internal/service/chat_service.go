package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"pdf-summary-server/config"
	"pdf-summary-server/internal/model"
	"pdf-summary-server/internal/ports"
)

const (
	// маркер между головой и хвостом усечённого контекста
	truncationMarker = "\n\n[... middle of document truncated ...]\n\n"

	// деградационный ответ: эндпоинт совещательный, ошибку LLM наружу не отдаём
	degradedAnswer = "The assistant is temporarily unavailable. Please try again in a moment."

	defaultContextBudget = 12000
)

// ChatService : вопросы по сохранённому документу. Контекст ограничен
// бюджетом символов: начало документа обычно определяет термины, конец —
// выводы, поэтому при усечении сохраняются голова и хвост
type ChatService struct {
	summaries  ports.SummaryService
	summarizer ports.Summarizer

	contextBudget int
}

func NewChatService(summaries ports.SummaryService, summarizer ports.Summarizer, cfg *config.ChatConfig) *ChatService {
	budget := cfg.ContextBudgetChars
	if budget <= 0 {
		budget = defaultContextBudget
	}

	return &ChatService{
		summaries:     summaries,
		summarizer:    summarizer,
		contextBudget: budget,
	}
}

func (s *ChatService) Ask(ctx context.Context, summaryUUID string, ownerUUID string, question string) (string, string, error) {
	summary, err := s.summaries.GetSummary(ctx, summaryUUID, ownerUUID)
	if err != nil {
		return "", "", err
	}

	prompt := s.buildPrompt(summary, question)

	answer, err := s.summarizer.Answer(ctx, prompt)
	if err != nil {
		log.Printf("[ChatService] ошибка генерации ответа для записи %s: %v", summaryUUID, err)
		return degradedAnswer, summary.Title, nil
	}

	return answer, summary.Title, nil
}

// buildPrompt : извлечённый текст есть не у всех записей (старые строки
// хранят NULL) — без текста модель честно предупреждает пользователя
func (s *ChatService) buildPrompt(summary *model.Summary, question string) string {
	if summary.ExtractedText == nil || strings.TrimSpace(*summary.ExtractedText) == "" {
		return fmt.Sprintf(
			"You are answering questions about a document titled %q (original file: %q). "+
				"The document's text content is not available. Tell the user explicitly that "+
				"the full text was not stored and answer only from the title and filename.\n\nQuestion: %s",
			summary.Title, summary.FilenameOriginal, question,
		)
	}

	content := BoundContext(*summary.ExtractedText, s.contextBudget)

	return fmt.Sprintf(
		"You are answering questions about the document %q. "+
			"Use only the document content below.\n\nDocument content:\n%s\n\nQuestion: %s",
		summary.Title, content, question,
	)
}

// BoundContext : усечение текста под бюджет символов — голова, маркер, хвост.
// Текст в пределах бюджета возвращается как есть
func BoundContext(text string, budget int) string {
	if len(text) <= budget {
		return text
	}

	headLen := budget * 2 / 3
	tailStart := len(text) - (budget - headLen)

	// срезы не должны резать многобайтовые руны — границы сдвигаются
	// к началу ближайшей целой руны
	for headLen > 0 && !utf8.RuneStart(text[headLen]) {
		headLen--
	}
	for tailStart < len(text) && !utf8.RuneStart(text[tailStart]) {
		tailStart++
	}

	return text[:headLen] + truncationMarker + text[tailStart:]
}
