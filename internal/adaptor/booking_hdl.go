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

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Book handles POST /api/sessions/{id}/book/{date} (protected)
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	sessionID := chi.URLParam(r, "id")
	date := chi.URLParam(r, "date")
	if sessionID == "" || date == "" {
		utils.ResponseBadRequest(w, "Session ID and date are required", nil)
		return
	}

	var req request.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Book(r.Context(), userID.String(), sessionID, date, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "book session")
		return
	}

	utils.ResponseCreated(w, "Session was booked", booking)
}

// GetFreePlaces handles GET /api/sessions/{id}/places/{date} (public)
func (h *BookingHandler) GetFreePlaces(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	date := chi.URLParam(r, "date")
	if sessionID == "" || date == "" {
		utils.ResponseBadRequest(w, "Session ID and date are required", nil)
		return
	}

	free, err := h.service.GetFreePlaces(r.Context(), sessionID, date)
	if err != nil {
		handleServiceError(w, h.log, err, "get free places")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]int{"free_places": free})
}

// GetUserBookings handles GET /api/user/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID.String(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
