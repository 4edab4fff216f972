package request

type HallRequest struct {
	Name string `json:"name" validate:"required,min=1,max=150"`
	Size int    `json:"size" validate:"gte=0"`
}
