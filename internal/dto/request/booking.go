package request

type BookingRequest struct {
	Places int `json:"places" validate:"required,min=1"`
}
