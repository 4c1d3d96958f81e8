package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"pdf-summary-server/config"
)

const (
	StageLaunch   = "launch"
	StageNavigate = "navigate"
	StageOutput   = "output"
)

// RenderError : ошибка рендера с указанием, на каком шаге браузер упал
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ошибка рендера (%s): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("ошибка рендера (%s)", e.Stage)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ChromeRenderer : печать HTML в PDF через headless Chrome.
// Каждый вызов поднимает изолированный браузерный контекст и гасит его
// на любом пути выхода — утёкший процесс браузера под нагрузкой опаснее
// любой другой утечки в этом сервисе
type ChromeRenderer struct {
	settleDelay time.Duration
	options     []chromedp.ExecAllocatorOption
}

func NewChromeRenderer(cfg *config.RendererConfig) *ChromeRenderer {
	settle := 2 * time.Second
	if cfg.SettleDelay != "" {
		if parsed, err := time.ParseDuration(cfg.SettleDelay); err == nil {
			settle = parsed
		}
	}

	return &ChromeRenderer{
		settleDelay: settle,
		options: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.DisableGPU,
			chromedp.NoSandbox,
			chromedp.Headless,
		),
	}
}

// RenderPDF : загружает htmlPath в браузер, ждёт загрузки страницы и
// settle-паузы (клиентский контент должен успеть дорисоваться), печатает A4
func (r *ChromeRenderer) RenderPDF(ctx context.Context, htmlPath string) ([]byte, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, r.options...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	// пустой Run заставляет chromedp реально запустить браузер,
	// чтобы отличить ошибку запуска от ошибки навигации
	if err := chromedp.Run(taskCtx); err != nil {
		return nil, &RenderError{Stage: StageLaunch, Err: err}
	}

	err := chromedp.Run(taskCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body"),
		chromedp.Sleep(r.settleDelay),
	)
	if err != nil {
		return nil, &RenderError{Stage: StageNavigate, Err: err}
	}

	var pdfBytes []byte
	err = chromedp.Run(taskCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBytes = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &RenderError{Stage: StageOutput, Err: err}
	}

	if len(pdfBytes) == 0 {
		return nil, &RenderError{Stage: StageOutput, Err: fmt.Errorf("браузер не вернул PDF")}
	}

	return pdfBytes, nil
}
