package dto

// PlanRequest is the inbound planning request.
type PlanRequest struct {
	Start     string   `json:"start" validate:"required,min=1"`
	End       string   `json:"end" validate:"required,min=1"`
	City      string   `json:"city" validate:"required,min=1"`
	Interests []string `json:"interests" validate:"omitempty,max=10,dive,min=1"`
	Duration  string   `json:"duration" validate:"required,oneof=quick half_day full_day"`
}
