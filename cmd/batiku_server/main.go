package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	exportapp "github.com/batiku-id/batiku/internal/export_service/app"
	"github.com/batiku-id/batiku/internal/generation_service/adapters/bedrock"
	generationapp "github.com/batiku-id/batiku/internal/generation_service/app"
	historydomain "github.com/batiku-id/batiku/internal/history_service/domain"
	historyfile "github.com/batiku-id/batiku/internal/history_service/repository/jsonfile"
	historymem "github.com/batiku-id/batiku/internal/history_service/repository/memory"
	"github.com/batiku-id/batiku/internal/platform/config"
	"github.com/batiku-id/batiku/internal/platform/logger"
	"github.com/batiku-id/batiku/internal/platform/queue"
	"github.com/batiku-id/batiku/internal/platform/storage"
	httptransport "github.com/batiku-id/batiku/internal/public_api_service/transport/http"
)

const serviceName = "batiku_server"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("Batiku server starting", "port", cfg.ServerPort, "region", cfg.AWSRegion)

	ctx := context.Background()
	validate := validator.New()
	fetchClient := &http.Client{Timeout: cfg.FetchTimeout()}

	var exportService *exportapp.ExportService
	var generationService *generationapp.GenerationService
	if cfg.S3BucketName == "" {
		// The routes stay mounted and answer 500 until a bucket is set.
		appLogger.Warn("S3_BUCKET_NAME is not set; export and generation routes will refuse requests")
	} else {
		store, err := storage.New(ctx, cfg.S3BucketName, cfg.AWSRegion, appLogger)
		if err != nil {
			appLogger.Error("failed to initialize object storage client", "error", err)
			os.Exit(1)
		}

		var notifier exportapp.Notifier
		if cfg.VectorizeQueueURL != "" {
			n, err := queue.New(ctx, cfg.VectorizeQueueURL, cfg.AWSRegion, appLogger)
			if err != nil {
				appLogger.Error("failed to initialize queue notifier", "error", err)
				os.Exit(1)
			}
			notifier = n
			appLogger.Info("vectorize queue notifications enabled", "queue_url", cfg.VectorizeQueueURL)
		}

		exportService = exportapp.NewExportService(store, notifier, fetchClient, appLogger)

		model, err := bedrock.New(ctx, cfg.BedrockModelID, cfg.AWSRegion, appLogger)
		if err != nil {
			appLogger.Error("failed to initialize Bedrock client", "error", err)
			os.Exit(1)
		}
		generationService = generationapp.NewGenerationService(
			model, store, cfg.GenerationCandidateCount, cfg.VariationCandidateCount, appLogger)
	}

	var historyStore historydomain.Store
	if cfg.HistoryFilePath != "" {
		fs, err := historyfile.New(cfg.HistoryFilePath)
		if err != nil {
			appLogger.Error("failed to initialize history file store", "path", cfg.HistoryFilePath, "error", err)
			os.Exit(1)
		}
		historyStore = fs
		appLogger.Info("export history persisted to file", "path", cfg.HistoryFilePath)
	} else {
		historyStore = historymem.New()
	}

	exportHandler := httptransport.NewExportHandler(pipelineOrNil(exportService), historyStore, appLogger, validate)
	generationHandler := httptransport.NewGenerationHandler(generatorOrNil(generationService), appLogger, validate)
	proxyHandler := httptransport.NewProxyHandler(fetchClient, appLogger)
	historyHandler := httptransport.NewHistoryHandler(historyStore, appLogger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(120 * time.Second))
	r.Use(httptransport.PrometheusMetricsMiddleware)

	r.Route("/api", func(api chi.Router) {
		exportHandler.RegisterRoutes(api)
		generationHandler.RegisterRoutes(api)
		proxyHandler.RegisterRoutes(api)
		historyHandler.RegisterRoutes(api)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLogger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", "error", err)
	}
	appLogger.Info("server stopped")
}

// pipelineOrNil avoids handing the handler a non-nil interface wrapping a
// nil pointer.
func pipelineOrNil(s *exportapp.ExportService) httptransport.ExportPipeline {
	if s == nil {
		return nil
	}
	return s
}

func generatorOrNil(s *generationapp.GenerationService) httptransport.Generator {
	if s == nil {
		return nil
	}
	return s
}
