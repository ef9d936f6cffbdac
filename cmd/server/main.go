package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/attendease/attendease/internal/config"
	"github.com/attendease/attendease/internal/domain/activity"
	"github.com/attendease/attendease/internal/domain/assistant"
	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/stats"
	"github.com/attendease/attendease/internal/domain/subject"
	"github.com/attendease/attendease/internal/mcp"
	"github.com/attendease/attendease/internal/oracle"
	"github.com/attendease/attendease/internal/pendingaction"
	"github.com/attendease/attendease/internal/ratelimit"
	"github.com/attendease/attendease/internal/sqlite"
	"github.com/attendease/attendease/internal/transport"
)

// defaultUserID identifies the single local user when auth is disabled.
const defaultUserID = "default"

func main() {
	_ = godotenv.Load()

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
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	subjectRepo := sqlite.NewSubjectRepository(db)
	attendanceRepo := sqlite.NewAttendanceRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	subjectSvc := subject.NewService(subjectRepo, logger)
	ledgerSvc := ledger.NewService(attendanceRepo, activityRepo, logger)
	statsSvc := stats.NewService(subjectRepo, attendanceRepo, logger)
	activitySvc := activity.NewService(activityRepo, logger)

	ctx := context.Background()
	if err := subjectSvc.EnsureDefaults(ctx, subjectSeeds(cfg.Subjects)); err != nil {
		logger.Error("failed to seed subjects", "error", err)
		os.Exit(1)
	}
	if !cfg.Auth.Enabled || cfg.Transport.Mode == "stdio" {
		if err := userRepo.EnsureUser(ctx, defaultUserID, defaultUserID, ""); err != nil {
			logger.Error("failed to ensure default user", "error", err)
			os.Exit(1)
		}
	}

	gen := buildOracle(cfg.Oracle, logger)
	limiter := ratelimit.New(cfg.Assistant.RateLimit, cfg.Assistant.RateWindow)
	pending := pendingaction.NewStore[assistant.Proposal](cfg.Assistant.PendingTTL)
	assistantSvc := assistant.NewService(
		subjectSvc, ledgerSvc, statsSvc, gen,
		limiter, pending, cfg.Assistant.MaxMessageLen, logger,
	)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Subjects: subjectSvc,
			Ledger:   ledgerSvc,
			Stats:    statsSvc,
		},
		Resolver:      userRepo,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		DefaultUser:   defaultUserID,
		Logger:        logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
		return
	}

	var authMiddleware func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		authMiddleware = transport.AuthMiddleware(userRepo)
	} else {
		authMiddleware = transport.StaticUserMiddleware(defaultUserID)
	}

	router := transport.NewRouter(transport.Services{
		Subjects:   subjectSvc,
		Ledger:     ledgerSvc,
		Stats:      statsSvc,
		Assistant:  assistantSvc,
		Activities: activitySvc,
	}, authMiddleware)

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/*", mcpHandler)

	runHTTPMode(logger, router, cfg.Server.Host, cfg.Server.Port)
}

// buildOracle returns the live client when an API key is configured, or a
// stub that reports the assistant as unavailable so the rest of the API
// still works without one.
func buildOracle(cfg config.OracleConfig, logger *slog.Logger) oracle.Oracle {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		logger.Warn("ANTHROPIC_API_KEY not set, assistant chat disabled")
		return unavailableOracle{}
	}
	return oracle.NewAnthropic(apiKey, cfg.Model, cfg.MaxTokens, cfg.Timeout)
}

type unavailableOracle struct{}

func (unavailableOracle) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("no oracle configured")
}

func subjectSeeds(seeds []config.SubjectSeed) []subject.Seed {
	out := make([]subject.Seed, len(seeds))
	for i, s := range seeds {
		out[i] = subject.Seed{Name: s.Name, TotalLectures: s.TotalLectures}
	}
	return out
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
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

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
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
