package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-sessions/internal/data/repository"
	"cinema-sessions/internal/dto/request"
	"cinema-sessions/internal/dto/response"
	"cinema-sessions/internal/usecase"
	"cinema-sessions/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) CreateSession(ctx context.Context, req *request.SessionRequest) (*response.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.SessionResponse), args.Error(1)
}

func (m *mockSessionService) UpdateSession(ctx context.Context, sessionID string, req *request.SessionRequest) (*response.SessionResponse, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.SessionResponse), args.Error(1)
}

func (m *mockSessionService) GetSessions(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.SessionResponse], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.PaginatedResponse[response.SessionResponse]), args.Error(1)
}

func (m *mockSessionService) GetSessionsByDate(ctx context.Context, date, sort string) ([]response.SessionAvailabilityResponse, error) {
	args := m.Called(ctx, date, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.SessionAvailabilityResponse), args.Error(1)
}

func (m *mockSessionService) GetSessionsToday(ctx context.Context, req *request.SessionsNowRequest) ([]response.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.SessionResponse), args.Error(1)
}

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) Book(ctx context.Context, userID, sessionID, date string, req *request.BookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, sessionID, date, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *mockBookingService) GetFreePlaces(ctx context.Context, sessionID, date string) (int, error) {
	args := m.Called(ctx, sessionID, date)
	return args.Int(0), args.Error(1)
}

func (m *mockBookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.UserBookingsResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.UserBookingsResponse), args.Error(1)
}

var _ usecase.SessionService = (*mockSessionService)(nil)
var _ usecase.BookingService = (*mockBookingService)(nil)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func sessionBody() *bytes.Buffer {
	body, _ := json.Marshal(map[string]any{
		"hall_id":    uuid.NewString(),
		"start_date": "2026-09-01",
		"end_date":   "2026-09-30",
		"start_time": "10:00",
		"end_time":   "12:00",
		"price":      250,
	})
	return bytes.NewBuffer(body)
}

func TestCreateSessionHandler_Created(t *testing.T) {
	service := new(mockSessionService)
	handler := NewSessionHandler(service, zap.NewNop())

	service.On("CreateSession", mock.Anything, mock.AnythingOfType("*request.SessionRequest")).
		Return(&response.SessionResponse{ID: uuid.NewString()}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/sessions", sessionBody())
	handler.CreateSession(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Status)
	assert.Equal(t, "Session was created", resp.Message)
}

func TestCreateSessionHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		serviceErr  error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "collision",
			serviceErr:  repository.ErrSessionsCollide,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Session collides with another one",
		},
		{
			name:        "incorrect date range",
			serviceErr:  repository.ErrIncorrectDateRange,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Incorrect date",
		},
		{
			name:        "hall missing",
			serviceErr:  repository.ErrNotFound,
			wantCode:    http.StatusNotFound,
			wantMessage: "Not found",
		},
		{
			name:        "booked sessions exist",
			serviceErr:  repository.ErrBookedSessionExists,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Booked sessions exist",
		},
		{
			name:        "transaction conflict",
			serviceErr:  repository.ErrTxConflict,
			wantCode:    http.StatusConflict,
			wantMessage: "Too many concurrent requests, please try again",
		},
		{
			name:        "unexpected failure",
			serviceErr:  assert.AnError,
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockSessionService)
			handler := NewSessionHandler(service, zap.NewNop())

			service.On("CreateSession", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/admin/sessions", sessionBody())
			handler.CreateSession(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Status)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestCreateSessionHandler_BadBody(t *testing.T) {
	service := new(mockSessionService)
	handler := NewSessionHandler(service, zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/sessions", bytes.NewBufferString("{"))
	handler.CreateSession(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func bookRequest(sessionID, date string, body *bytes.Buffer, withUser bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+sessionID+"/book/"+date, body)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", sessionID)
	routeCtx.URLParams.Add("date", date)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)

	if withUser {
		ctx = utils.SetUserContext(ctx, uuid.New(), "client")
	}

	return req.WithContext(ctx)
}

func TestBookHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		serviceErr  error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "date outside range",
			serviceErr:  repository.ErrIncorrectBookingDate,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Incorrect data",
		},
		{
			name:        "date expired",
			serviceErr:  repository.ErrDateExpired,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Date expired",
		},
		{
			name:        "hall full",
			serviceErr:  repository.ErrNoFreePlaces,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Not enough free places",
		},
		{
			name:        "wallet too small",
			serviceErr:  repository.ErrNotEnoughMoney,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Not enough money",
		},
		{
			name:        "session missing",
			serviceErr:  repository.ErrNotFound,
			wantCode:    http.StatusNotFound,
			wantMessage: "Not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockBookingService)
			handler := NewBookingHandler(service, zap.NewNop())

			service.On("Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.serviceErr)

			body, _ := json.Marshal(map[string]int{"places": 2})
			rec := httptest.NewRecorder()
			req := bookRequest(uuid.NewString(), "2026-09-10", bytes.NewBuffer(body), true)
			handler.Book(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			resp := decodeResponse(t, rec)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestBookHandler_Created(t *testing.T) {
	service := new(mockBookingService)
	handler := NewBookingHandler(service, zap.NewNop())

	service.On("Book", mock.Anything, mock.Anything, mock.Anything, "2026-09-10", mock.Anything).
		Return(&response.BookingResponse{Places: 2, TotalCost: 500}, nil)

	body, _ := json.Marshal(map[string]int{"places": 2})
	rec := httptest.NewRecorder()
	req := bookRequest(uuid.NewString(), "2026-09-10", bytes.NewBuffer(body), true)
	handler.Book(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Session was booked", resp.Message)
}

func TestBookHandler_RequiresAuth(t *testing.T) {
	service := new(mockBookingService)
	handler := NewBookingHandler(service, zap.NewNop())

	body, _ := json.Marshal(map[string]int{"places": 2})
	rec := httptest.NewRecorder()
	req := bookRequest(uuid.NewString(), "2026-09-10", bytes.NewBuffer(body), false)
	handler.Book(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	service.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetSessionsByDateHandler_PassesSort(t *testing.T) {
	service := new(mockSessionService)
	handler := NewSessionHandler(service, zap.NewNop())

	service.On("GetSessionsByDate", mock.Anything, "2026-09-10", "price").
		Return([]response.SessionAvailabilityResponse{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/2026-09-10?sort=price", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("date", "2026-09-10")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	handler.GetSessionsByDate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}
