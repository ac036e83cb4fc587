package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stitch/backend/internal/handler"
	"github.com/stitch/backend/internal/logging"
	"github.com/stitch/backend/internal/repository"
	"github.com/stitch/backend/internal/service"
	"github.com/stitch/backend/pkg/formtoken"
	"github.com/stitch/backend/pkg/hubspot"
	"github.com/stitch/backend/pkg/mail"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:4321"
	}

	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		siteName = "Stitch Consulting"
	}

	tokenSecret := os.Getenv("FORM_TOKEN_SECRET")
	if tokenSecret == "" {
		tokenSecret = "dev-secret-change-in-production-32bytes"
	}

	// レートリミットストアの選択: Redis > PostgreSQL > インメモリ
	var pool *pgxpool.Pool
	var store repository.RateLimitStore
	var archive repository.SubmissionRepository

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		var err error
		pool, err = repository.NewPool(context.Background(), dbURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer pool.Close()
		store = repository.NewPgRateLimitStore(pool)
		archive = repository.NewPgSubmissionRepository(pool)
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		store = repository.NewRedisRateLimitStore(redis.NewClient(opts), time.Hour)
	}

	if store == nil {
		store = repository.NewMemoryRateLimitStore()
	}

	tokens := formtoken.New(formtoken.SecretBytes(tokenSecret))
	validator := service.NewValidator()
	limiter := service.NewRateLimiter(store)
	limiter.LogPlaintextEmail = os.Getenv("RATE_LIMIT_LOG_EMAIL") == "true"

	mailer := mail.NewSMTPMailer(
		os.Getenv("SMTP_HOST"),
		envOr("SMTP_PORT", "587"),
		os.Getenv("SMTP_FROM"),
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
	)
	router := service.NewRouter(
		service.NewEmailBackend(mailer, os.Getenv("CONTACT_RECIPIENT"), siteName),
		service.NewHubSpotBackend(hubspot.NewClient(os.Getenv("HUBSPOT_API_KEY"))),
		service.NewWebhookBackend(os.Getenv("FORM_WEBHOOK_URL")),
	)

	submissionService := service.NewSubmissionService(tokens, validator, limiter, router, archive)

	h := handler.New(pool, frontendURL)
	formHandler := handler.NewFormHandler(submissionService, tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/forms/token", formHandler.Token)
	mux.HandleFunc("POST /api/forms/submit", formHandler.Submit)

	server := &http.Server{
		Addr:         ":8080",
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second, // delivery backends may block up to 30s
	}

	go func() {
		log.Printf("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
