package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/attendease/attendease/internal/domain/activity"
	"github.com/attendease/attendease/internal/domain/assistant"
	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/stats"
	"github.com/attendease/attendease/internal/domain/subject"
	"github.com/attendease/attendease/internal/oracle"
	"github.com/attendease/attendease/internal/pendingaction"
	"github.com/attendease/attendease/internal/ratelimit"
	"github.com/attendease/attendease/internal/sqlite"
	"github.com/attendease/attendease/internal/transport"
)

// OracleFunc adapts a function to the oracle interface so tests can script
// replies without a live model.
type OracleFunc func(ctx context.Context, prompt string) (string, error)

func (f OracleFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ScriptedOracle returns whatever reply was last set. It is the default
// oracle when Options.Oracle is nil.
type ScriptedOracle struct {
	mu    sync.Mutex
	reply string
}

func (o *ScriptedOracle) SetReply(reply string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reply = reply
}

func (o *ScriptedOracle) Generate(context.Context, string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.reply == "" {
		return "I can help with your attendance.", nil
	}
	return o.reply, nil
}

// Options tune the harness for individual tests.
type Options struct {
	Oracle    oracle.Oracle
	RateLimit int
	Subjects  []subject.Seed
}

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Users    *sqlite.UserRepository
	Oracle   *ScriptedOracle
	Token    string
	UserID   string
	Subjects []subject.Subject
}

// New starts an HTTP server over an in-memory database, seeds subjects and
// one API key, and returns the harness. The server is torn down with the
// test.
func New(t *testing.T, token, userID string, opts Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	subjectRepo := sqlite.NewSubjectRepository(db)
	attendanceRepo := sqlite.NewAttendanceRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	subjectSvc := subject.NewService(subjectRepo, nil)
	ledgerSvc := ledger.NewService(attendanceRepo, activityRepo, nil)
	statsSvc := stats.NewService(subjectRepo, attendanceRepo, nil)
	activitySvc := activity.NewService(activityRepo, nil)

	var scripted *ScriptedOracle
	gen := opts.Oracle
	if gen == nil {
		scripted = &ScriptedOracle{}
		gen = scripted
	}
	capacity := opts.RateLimit
	if capacity <= 0 {
		capacity = 20
	}
	limiter := ratelimit.New(capacity, 24*time.Hour)
	pending := pendingaction.NewStore[assistant.Proposal](5 * time.Minute)
	assistantSvc := assistant.NewService(subjectSvc, ledgerSvc, statsSvc, gen, limiter, pending, 500, nil)

	ctx := context.Background()
	seeds := opts.Subjects
	if seeds == nil {
		seeds = []subject.Seed{
			{Name: "Mathematics", TotalLectures: 40},
			{Name: "Physics", TotalLectures: 40},
		}
	}
	require.NoError(t, subjectSvc.EnsureDefaults(ctx, seeds))
	require.NoError(t, userRepo.EnsureUser(ctx, userID, userID, userID+"@example.com"))
	require.NoError(t, userRepo.AddAPIKey(ctx, token, userID, "test key"))

	subjects, err := subjectSvc.List(ctx)
	require.NoError(t, err)

	router := transport.NewRouter(transport.Services{
		Subjects:   subjectSvc,
		Ledger:     ledgerSvc,
		Stats:      statsSvc,
		Assistant:  assistantSvc,
		Activities: activitySvc,
	}, transport.AuthMiddleware(userRepo))

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Users:    userRepo,
		Oracle:   scripted,
		Token:    token,
		UserID:   userID,
		Subjects: subjects,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}
