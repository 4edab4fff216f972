package request

type SessionRequest struct {
	HallID    string `json:"hall_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Price     int64  `json:"price" validate:"gte=0"`
}

// SessionsNowRequest narrows the listing of sessions running today.
type SessionsNowRequest struct {
	HallID *string `json:"hall_id,omitempty" validate:"omitempty,uuid"`
	From   *string `json:"from,omitempty" validate:"omitempty,datetime=15:04"`
	To     *string `json:"to,omitempty" validate:"omitempty,datetime=15:04"`
}
