package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/vikoShak/ATS/internal/auth"
	"github.com/vikoShak/ATS/internal/config"
	"github.com/vikoShak/ATS/internal/domain/activity"
	"github.com/vikoShak/ATS/internal/domain/applicant"
	"github.com/vikoShak/ATS/internal/domain/department"
	"github.com/vikoShak/ATS/internal/domain/report"
	"github.com/vikoShak/ATS/internal/domain/requirement"
	"github.com/vikoShak/ATS/internal/domain/timesheet"
	"github.com/vikoShak/ATS/internal/mcp"
	"github.com/vikoShak/ATS/internal/memory"
	"github.com/vikoShak/ATS/internal/rpc"
	"github.com/vikoShak/ATS/internal/sqlite"
	"github.com/vikoShak/ATS/internal/storage"
	"github.com/vikoShak/ATS/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		logFile, err := openTailLog(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer logFile.Close()
			logWriter = logFile
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := openBackend(cfg.DB, logger)
	if err != nil {
		logger.Error("failed to open data store", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	defer store.close()

	uploader, closeUploader, err := openUploader(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to open document storage", "provider", cfg.Storage.Provider, "error", err)
		os.Exit(1)
	}
	defer closeUploader()

	departments := department.NewCatalog()
	activitySvc := activity.NewService(store.activities, logger)
	applicantSvc := applicant.NewService(store.applicants, uploader, activitySvc, applicant.Options{
		ReplaceByEmail: cfg.Bulk.ReplaceByEmail,
		PhoneRegion:    cfg.Bulk.PhoneRegion,
	}, logger)
	requirementSvc := requirement.NewService(store.requirements, departments, activitySvc, cfg.Features.Requirements, logger)
	timesheetSvc := timesheet.NewService(store.applicants, activitySvc, logger)
	reportSvc := report.NewService(applicantSvc, requirementSvc, timesheetSvc, activitySvc, logger)

	handler := rpc.NewHandler(rpc.Services{
		Applicants:   applicantSvc,
		Requirements: requirementSvc,
		Timesheets:   timesheetSvc,
		Activity:     activitySvc,
		Departments:  departments,
		Reports:      reportSvc,
	}, logger)

	var authSvc *auth.Service
	if cfg.Auth.Enabled {
		sessions, closeSessions, err := openSessionStore(ctx, cfg)
		if err != nil {
			logger.Error("failed to open session store", "store", cfg.Auth.SessionStore, "error", err)
			os.Exit(1)
		}
		defer closeSessions()
		authSvc = auth.NewService(auth.Credential{
			Username:     cfg.Auth.Username,
			Password:     cfg.Auth.Password,
			PasswordHash: cfg.Auth.PasswordHash,
		}, sessions, cfg.Auth.SessionTTL, logger)
	}

	mcpCfg := mcp.Config{
		Handler:       handler,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	}
	if authSvc != nil {
		mcpCfg.Resolver = authSvc
	}
	mcpServer := mcp.NewServer(mcpCfg)

	logger.Info("recruitiq starting",
		"transport", cfg.Transport.Mode,
		"db", cfg.DB.Driver,
		"storage", cfg.Storage.Provider,
		"requirements", cfg.Features.Requirements,
		"auth", cfg.Auth.Enabled,
	)

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(ctx, logger, mcpServer)
		return
	}

	httpCfg := transport.Config{
		Handler:  handler,
		Exporter: reportSvc,
		Logger:   logger,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{
				Stateless:      false,
				SessionTimeout: 30 * time.Minute,
			},
		),
	}
	if authSvc != nil {
		httpCfg.Auth = authSvc
	}
	runHTTPMode(ctx, logger, transport.NewServer(httpCfg), cfg.Server.Host, cfg.Server.Port)
}

// backend holds the repositories for the configured driver.
type backend struct {
	applicants   applicant.Repository
	requirements requirement.Repository
	activities   activity.Repository
	close        func() error
}

func openBackend(cfg config.DBConfig, logger *slog.Logger) (*backend, error) {
	if cfg.Driver == "memory" {
		logger.Warn("using in-memory store; data is lost on restart")
		return &backend{
			applicants:   memory.NewApplicantRepository(),
			requirements: memory.NewRequirementRepository(),
			activities:   memory.NewActivityRepository(),
			close:        func() error { return nil },
		}, nil
	}

	if err := ensureDBDir(cfg.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &backend{
		applicants:   sqlite.NewApplicantRepository(db),
		requirements: sqlite.NewRequirementRepository(db),
		activities:   sqlite.NewActivityRepository(db),
		close:        db.Close,
	}, nil
}

func openUploader(ctx context.Context, cfg config.StorageConfig) (applicant.Uploader, func(), error) {
	if cfg.Provider != "gcs" {
		return storage.NewPlaceholder(cfg.BaseURL), func() {}, nil
	}
	gcs, err := storage.NewGCS(ctx, storage.GCSConfig{
		Bucket:          cfg.Bucket,
		BaseURL:         cfg.BaseURL,
		CredentialsJSON: cfg.CredentialsJSON,
	})
	if err != nil {
		return nil, nil, err
	}
	return gcs, func() { _ = gcs.Close() }, nil
}

func openSessionStore(ctx context.Context, cfg config.Config) (auth.Store, func(), error) {
	if cfg.Auth.SessionStore != "redis" {
		return auth.NewMemoryStore(), func() {}, nil
	}
	rs, err := auth.NewRedisStore(ctx, auth.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	return rs, func() { _ = rs.Close() }, nil
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	// Run blocks until stdin closes or ctx is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
