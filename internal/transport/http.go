package transport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/attendease/attendease/internal/domain/ledger"
)

var validate = validator.New()

// Server wires HTTP handlers to the domain services.
type Server struct {
	subjects   SubjectService
	ledger     LedgerService
	stats      StatsService
	assistant  AssistantService
	activities ActivityService
}

// Services bundles the domain services the router exposes.
type Services struct {
	Subjects   SubjectService
	Ledger     LedgerService
	Stats      StatsService
	Assistant  AssistantService
	Activities ActivityService
}

// NewRouter creates the API router with middleware. The health endpoint
// stays outside the authenticated group so probes need no credentials.
func NewRouter(svcs Services, authMiddleware func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	srv := &Server{
		subjects:   svcs.Subjects,
		ledger:     svcs.Ledger,
		stats:      svcs.Stats,
		assistant:  svcs.Assistant,
		activities: svcs.Activities,
	}

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		r.Use(SessionMiddleware)

		r.Post("/assistant/chat", srv.handleAssistantChat)
		r.Post("/assistant/confirm", srv.handleAssistantConfirm)
		r.Post("/assistant/cancel", srv.handleAssistantCancel)

		r.Get("/subjects", srv.handleListSubjects)
		r.Patch("/subjects/{id}", srv.handleUpdateSubject)

		r.Post("/attendance", srv.handleMarkAttendance)
		r.Get("/attendance", srv.handleListAttendance)

		r.Get("/stats/subjects/{id}", srv.handleSubjectStats)
		r.Get("/stats/overall", srv.handleOverallStats)
		r.Get("/stats/window", srv.handleWindowStats)

		r.Get("/dashboard", srv.handleDashboard)
		r.Get("/reports/weekly", srv.handleWeeklyReport)
		r.Get("/activity", srv.handleActivity)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// identity resolves the authenticated user and the proposal session. The
// session falls back to the user ID so single-session clients need no
// extra header.
func identity(r *http.Request) (userID, sessionID string, ok bool) {
	userID, ok = UserFromContext(r.Context())
	if !ok || userID == "" {
		return "", "", false
	}
	sessionID, _ = SessionIDFromContext(r.Context())
	if sessionID == "" {
		sessionID = userID
	}
	return userID, sessionID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "validation_error", err.Error())
		return false
	}
	return true
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=500"`
}

func (s *Server) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.assistant.Turn(r.Context(), userID, sessionID, req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAssistantConfirm(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	result, err := s.assistant.Confirm(r.Context(), userID, sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAssistantCancel(w http.ResponseWriter, r *http.Request) {
	_, sessionID, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	s.assistant.Cancel(sessionID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.subjects.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subjects": subjects})
}

// Values below 1 are passed through; the service resets them to the default.
type updateSubjectRequest struct {
	TotalLectures int `json:"total_lectures"`
}

func (s *Server) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	var req updateSubjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	subj, err := s.subjects.UpdateTotalLectures(r.Context(), chi.URLParam(r, "id"), req.TotalLectures)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subj)
}

type markAttendanceRequest struct {
	SubjectID       string `json:"subject_id" validate:"required"`
	Date            string `json:"date"`
	LecturesTotal   int    `json:"lectures_total" validate:"min=0"`
	Status          string `json:"status" validate:"omitempty,oneof=present absent"`
	LecturesPresent *int   `json:"lectures_present"`
}

func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req markAttendanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date := req.Date
	if !ledger.ValidDate(date) {
		date = time.Now().Format(ledger.DateLayout)
	}

	present := ledger.PresentCount(req.LecturesTotal, ledger.Status(req.Status))
	if req.LecturesPresent != nil {
		present = *req.LecturesPresent
	}

	entry, err := s.ledger.Upsert(r.Context(), userID, ledger.Upsert{
		SubjectID:       req.SubjectID,
		Date:            date,
		LecturesTotal:   req.LecturesTotal,
		LecturesPresent: present,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "date": date})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleListAttendance(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	entries, err := s.ledger.Query(r.Context(), userID, ledger.QueryOptions{
		SubjectID: q.Get("subject_id"),
		From:      q.Get("from"),
		To:        q.Get("to"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleSubjectStats(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	result, err := s.stats.SubjectStats(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleOverallStats(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	result, err := s.stats.OverallStats(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleWindowStats(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	result, err := s.stats.WindowedStats(r.Context(), userID, q.Get("from"), q.Get("to"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subjects": result})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	dash, err := s.stats.Dashboard(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	report, err := s.stats.WeeklyReport(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(r)
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	entries, err := s.activities.Recent(r.Context(), userID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activity": entries})
}
