package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/stats"
	"github.com/attendease/attendease/internal/domain/subject"
)

const serverInstructions = `AttendEase exposes a per-student lecture attendance ledger.
Use list_subjects to discover subject IDs, mark_attendance to record a day,
get_attendance_stats for per-subject or overall standing, and
get_weekly_report for the last week's summary.`

// SubjectService defines subject operations needed by MCP.
type SubjectService interface {
	List(ctx context.Context) ([]subject.Subject, error)
}

// LedgerService defines attendance operations needed by MCP.
type LedgerService interface {
	Upsert(ctx context.Context, userID string, up ledger.Upsert) (*ledger.Entry, error)
}

// StatsService defines aggregate operations needed by MCP.
type StatsService interface {
	SubjectStats(ctx context.Context, userID, subjectID string) (*stats.SubjectStats, error)
	OverallStats(ctx context.Context, userID string) (*stats.OverallStats, error)
	WeeklyReport(ctx context.Context, userID string) (*stats.WeeklyReport, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Subjects SubjectService
	Ledger   LedgerService
	Stats    StatsService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      UserResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	DefaultUser   string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "attendease",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	// Stdio mode is local dev only, auth is always off there.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(cfg.DefaultUser))
	}

	registerTools(server, cfg.Services)

	return server
}
