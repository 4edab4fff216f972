package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-sessions/internal/dto/request"
	"cinema-sessions/internal/usecase"
	"cinema-sessions/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SessionHandler struct {
	service usecase.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service usecase.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "session")),
	}
}

// CreateSession handles POST /api/admin/sessions (admin only)
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req request.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create session")
		return
	}

	utils.ResponseCreated(w, "Session was created", session)
}

// UpdateSession handles PUT /api/admin/sessions/{id} (admin only)
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		utils.ResponseBadRequest(w, "Session ID is required", nil)
		return
	}

	var req request.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.UpdateSession(r.Context(), sessionID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update session")
		return
	}

	utils.ResponseSuccess(w, "Session was updated", session)
}

// GetSessions handles GET /api/admin/sessions (admin only)
func (h *SessionHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	sessions, err := h.service.GetSessions(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get sessions")
		return
	}

	utils.ResponseSuccess(w, "success", sessions)
}

// GetSessionsByDate handles GET /api/sessions/{date} (public)
func (h *SessionHandler) GetSessionsByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if date == "" {
		utils.ResponseBadRequest(w, "Date is required", nil)
		return
	}

	sessions, err := h.service.GetSessionsByDate(r.Context(), date, r.URL.Query().Get("sort"))
	if err != nil {
		handleServiceError(w, h.log, err, "get sessions by date")
		return
	}

	utils.ResponseSuccess(w, "success", sessions)
}

// GetSessionsNow handles GET /api/sessions/now (public)
func (h *SessionHandler) GetSessionsNow(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.SessionsNowRequest{}
	if v := query.Get("hall_id"); v != "" {
		req.HallID = &v
	}
	if v := query.Get("from"); v != "" {
		req.From = &v
	}
	if v := query.Get("to"); v != "" {
		req.To = &v
	}

	sessions, err := h.service.GetSessionsToday(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get today's sessions")
		return
	}

	utils.ResponseSuccess(w, "success", sessions)
}
