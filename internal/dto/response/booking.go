package response

import (
	"time"

	"cinema-sessions/internal/data/entity"
)

type BookingResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Date      string    `json:"date"`
	Places    int       `json:"places"`
	TotalCost int64     `json:"total_cost"`
	CreatedAt time.Time `json:"created_at"`
}

type UserBookingResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Date      string `json:"date"`
	Places    int    `json:"places"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Price     int64  `json:"price"`
}

// UserBookingsResponse is the user's booking history together with the
// total amount spent across all of their bookings.
type UserBookingsResponse struct {
	Bookings   []UserBookingResponse `json:"bookings"`
	TotalSpent int64                 `json:"total_spent"`
	Pagination PaginationMeta        `json:"pagination"`
}

func UserBookingToResponse(booking *entity.UserBooking) UserBookingResponse {
	return UserBookingResponse{
		ID:        booking.ID.String(),
		SessionID: booking.SessionID.String(),
		Date:      booking.Date.Format("2006-01-02"),
		Places:    booking.Places,
		StartTime: booking.StartTime.String(),
		EndTime:   booking.EndTime.String(),
		Price:     booking.Price,
	}
}
