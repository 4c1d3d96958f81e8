package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"

	"pdf-summary-server/config"
	_ "pdf-summary-server/docs"
	"pdf-summary-server/internal/extractor"
	"pdf-summary-server/internal/handler"
	"pdf-summary-server/internal/renderer"
	"pdf-summary-server/internal/repository"
	"pdf-summary-server/internal/security"
	"pdf-summary-server/internal/service"
	"pdf-summary-server/internal/summarizer"
	"pdf-summary-server/internal/worker"
)

// @title PDF-summary-server
// @version 1.0
// @description REST API для суммаризации PDF документов

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	urlTTL := time.Duration(cfg.TTL.S3AndRedis) * time.Second

	summaryRepo := repository.NewSummaryRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, urlTTL)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	openAIClient, err := summarizer.NewOpenAIClient(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("Ошибка создания OpenAI клиента: %v", err)
	}

	pdfExtractor := extractor.NewPDFExtractor()
	chromeRenderer := renderer.NewChromeRenderer(&cfg.Renderer)
	pool := worker.NewPool(cfg.Pipeline.WorkerPoolSize)

	conversionService := service.NewConversionService(
		pdfExtractor,
		openAIClient,
		chromeRenderer,
		s3Service,
		summaryRepo,
		pool,
		&cfg.Pipeline,
		&cfg.Renderer,
		&cfg.OpenAI,
		urlTTL,
	)
	summaryService := service.NewSummaryService(summaryRepo, cacheRepo, s3Service, urlTTL)
	chatService := service.NewChatService(summaryService, openAIClient, &cfg.Chat)

	authClient := security.NewAuthClient(&cfg.Auth)

	summaryHandler := handler.NewSummaryHandler(conversionService, summaryService, chatService, db, s3Service)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupRoutes(router, summaryHandler, authClient)

	runServer(ctx, srv)
}

func setupRoutes(r chi.Router, h *handler.SummaryHandler, verifier security.TokenVerifier) {
	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(security.AuthMiddleware(verifier))
		r.Post("/convert-pdf", h.ConvertPDF)
		r.Get("/summaries", h.ListSummaries)
		r.Delete("/summaries/{id}", h.DeleteSummary)
		r.Post("/chat-pdf", h.ChatPDF)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
