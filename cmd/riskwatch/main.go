package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/lighthouse-ops/riskwatch/internal/alerts"
	"github.com/lighthouse-ops/riskwatch/internal/audit"
	"github.com/lighthouse-ops/riskwatch/internal/config"
	"github.com/lighthouse-ops/riskwatch/internal/detail"
	"github.com/lighthouse-ops/riskwatch/internal/directory"
	"github.com/lighthouse-ops/riskwatch/internal/handler"
	"github.com/lighthouse-ops/riskwatch/internal/lighthouse"
	"github.com/lighthouse-ops/riskwatch/internal/notify"
	"github.com/lighthouse-ops/riskwatch/internal/service"
	"github.com/lighthouse-ops/riskwatch/internal/stream"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize backend client and components
	client := lighthouse.NewClient(cfg, logger)
	dir := directory.New(client, cfg.DirectoryLimit, logger)
	loader := detail.NewLoader(client, logger)
	queue := alerts.NewQueue()

	// Alert observers: SMTP notification plus optional Postgres audit trail
	var observers []stream.Observer
	notifier := notify.NewSender(cfg, logger)
	if notifier.Enabled() {
		observers = append(observers, notifier)
	}
	if cfg.DBConn != "" {
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		observers = append(observers, audit.NewRepository(db, logger))
	}

	// Initial directory snapshot; failure degrades to an empty
	// directory recoverable via /refresh or the next scheduled run.
	if err := dir.Refresh(ctx); err != nil {
		logger.Errorf("Initial directory fetch failed: %v", err)
	}

	// Scheduled snapshot refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RefreshCron, func() {
		refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := dir.Refresh(refreshCtx); err != nil {
			logger.Errorf("Scheduled directory refresh failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Invalid REFRESH_CRON: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Alert stream lives for the whole session, independent of the
	// HTTP surface, and is released when ctx is cancelled.
	st := stream.New(cfg.StreamURL(), queue, cfg.StreamReconnect, logger, observers...)
	go st.Run(ctx)

	svc := service.NewService(dir, loader, queue, st, logger)
	h := handler.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	h.Routes(r)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown: %v", err)
		}
	}()

	logger.Infof("Starting riskwatch on %s (backend %s)", addr, cfg.APIURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
