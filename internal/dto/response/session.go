package response

import (
	"cinema-sessions/internal/data/entity"
)

type SessionResponse struct {
	ID        string `json:"id"`
	HallID    string `json:"hall_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Price     int64  `json:"price"`
}

// SessionAvailabilityResponse adds the free places left on the
// requested date.
type SessionAvailabilityResponse struct {
	SessionResponse
	FreePlaces int `json:"free_places"`
}

func SessionToResponse(session *entity.Session) SessionResponse {
	return SessionResponse{
		ID:        session.ID.String(),
		HallID:    session.HallID.String(),
		StartDate: session.StartDate.Format("2006-01-02"),
		EndDate:   session.EndDate.Format("2006-01-02"),
		StartTime: session.StartTime.String(),
		EndTime:   session.EndTime.String(),
		Price:     session.Price,
	}
}

func SessionAvailabilityToResponse(sa *entity.SessionAvailability) SessionAvailabilityResponse {
	return SessionAvailabilityResponse{
		SessionResponse: SessionToResponse(&sa.Session),
		FreePlaces:      sa.FreePlaces,
	}
}
