package models

// Note is the validated snapshot schema for the "note" resource.
type Note struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	UpdatedAtMs int64  `json:"updated_at_ms" validate:"gte=0"`
	Deleted     bool   `json:"deleted"`
}
