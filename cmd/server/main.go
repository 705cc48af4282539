// Package main はAPIサーバーのエントリポイント。
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/config"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/handler"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/infra"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/repository"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/usecase"
)

func main() {
	ctx := context.Background()

	// .envファイルを読み込む（存在しない場合は無視）
	// 既存の環境変数は上書きしない
	_ = godotenv.Load()

	// 設定読み込み
	cfg := config.Load()

	// ログレベル設定
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "DEBUG":
		logLevel = slog.LevelDebug
	case "WARN":
		logLevel = slog.LevelWarn
	case "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	// トレーサー初期化（ロガー設定の前に実行）
	tp, err := infra.InitTracer(ctx, cfg)
	if err != nil {
		slog.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(ctx); err != nil {
				slog.Error("failed to shutdown tracer", "error", err)
			}
		}()
	}

	// トレース情報付きロガーを設定
	infra.SetupLogger(cfg, logLevel)

	// DB初期化
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is not set")
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}
	db, err := infra.NewDB(cfg.DatabaseURL, cfg.OtelEnabled)
	if err != nil {
		slog.Error("failed to init database", "error", err)
		os.Exit(1)
	}

	// DI
	siteRepo := repository.NewSiteRepository(db)
	jobRepo := repository.NewJobRepository(db)
	variationRepo := repository.NewVariationRepository(db)
	subRepo := repository.NewSubcontractorRepository(db)
	contractRepo := repository.NewContractRepository(db)
	workerRepo := repository.NewWorkerRepository(db)

	siteService := usecase.NewSiteService(siteRepo, jobRepo)
	jobService := usecase.NewJobService(jobRepo, siteRepo)
	variationService := usecase.NewVariationService(variationRepo, siteRepo, jobRepo)
	subService := usecase.NewSubcontractorService(subRepo)
	contractService := usecase.NewContractService(contractRepo, subRepo, siteRepo)
	workerService := usecase.NewWorkerService(workerRepo, jobRepo)

	router := handler.NewRouter(handler.Handlers{
		Site:          handler.NewSiteHandler(siteService),
		Job:           handler.NewJobHandler(jobService),
		Variation:     handler.NewVariationHandler(variationService),
		Subcontractor: handler.NewSubcontractorHandler(subService),
		Contract:      handler.NewContractHandler(contractService),
		Worker:        handler.NewWorkerHandler(workerService),
		Mobile:        handler.NewMobileHandler(workerService),
	}, cfg.JWTSecret)

	// サーバー起動
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting server", "port", cfg.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
