package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"pdf-summary-server/config"
)

// инструкция фиксированная: модель всегда возвращает самодостаточный HTML,
// который потом уходит в headless-браузер на печать
const summaryInstruction = `You are an expert analyst. Read the document below and produce a concise,
well-structured summary as a single self-contained HTML document.
Use inline CSS only. Structure the summary with a title, key points,
financial or factual highlights if present, and a short conclusion.
Return only the HTML, no markdown fences and no commentary.

Document text:

`

// GenerationError : удалённый вызов сервиса генерации завершился ошибкой,
// таймаутом или пустым ответом
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ошибка генерации: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ошибка генерации: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// OpenAIClient : один синхронный вызов на операцию, без ретраев —
// политика повторов принадлежит вызывающей стороне
type OpenAIClient struct {
	llm *openai.LLM
}

func NewOpenAIClient(cfg *config.OpenAIConfig) (*OpenAIClient, error) {
	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("[OpenAIClient] ошибка создания клиента: %w", err)
	}

	return &OpenAIClient{llm: llm}, nil
}

// Summarize : инструкция + полный извлечённый текст, без усечения
func (c *OpenAIClient) Summarize(ctx context.Context, fullText string) (string, error) {
	return c.generate(ctx, summaryInstruction+fullText)
}

// Answer : произвольный промпт (используется ассистентом вопросов)
func (c *OpenAIClient) Answer(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt)
}

func (c *OpenAIClient) generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		return "", &GenerationError{Reason: "удалённый вызов не удался", Err: err}
	}

	if strings.TrimSpace(completion) == "" {
		return "", &GenerationError{Reason: "сервис вернул пустой ответ"}
	}

	return completion, nil
}
