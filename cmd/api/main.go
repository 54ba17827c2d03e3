package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sps2604/Prosearch-sub001/internal/config"
	"github.com/sps2604/Prosearch-sub001/internal/database"
	"github.com/sps2604/Prosearch-sub001/internal/directory"
	"github.com/sps2604/Prosearch-sub001/internal/handlers"
	"github.com/sps2604/Prosearch-sub001/internal/logger"
	"github.com/sps2604/Prosearch-sub001/internal/services"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load and check configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	appLog := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		appLog.Error("database unavailable", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 3. Initialize Core Services (Dependencies)
	llmService, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, appLog)
	if err != nil {
		appLog.Error("llm unavailable", slog.String("error", err.Error()))
		os.Exit(1)
	}
	jobService := services.NewJobService(db, appLog)
	applicationService := services.NewApplicationService(db, appLog)
	profileService := services.NewProfileService(db, appLog)

	// 4. Professional directory behind search
	dir, closeDir, err := directory.Open(cfg, db, appLog)
	if err != nil {
		appLog.Error("directory unavailable", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDir()
	appLog.Info("directory configured",
		slog.String("backend", cfg.DirectoryBackend),
		slog.Bool("cached", cfg.CacheEnabled()),
	)

	// 5. Setup Router & CORS
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(appLog))
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	var searchLimiter *handlers.IPRateLimiter
	if cfg.SearchRatePerSecond > 0 {
		searchLimiter = handlers.NewIPRateLimiter(rate.Limit(cfg.SearchRatePerSecond), cfg.SearchRateBurst, appLog)
	}

	handlers.RegisterRoutes(r, handlers.Handlers{
		Jobs:          handlers.NewJobHandler(llmService, jobService),
		Applications:  handlers.NewApplicationHandler(applicationService),
		Profiles:      handlers.NewProfileHandler(profileService, dir, cfg.SearchLimit),
		SearchLimiter: searchLimiter,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLog.Info("server starting", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		appLog.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
