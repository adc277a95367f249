package models

// TodoItem is the validated snapshot schema for the "todo_item" resource.
// Rule carries the raw RRULE string; expansion into occurrences happens in
// the recurrence collaborator, outside this engine.
type TodoItem struct {
	ID          string `json:"id" validate:"required"`
	ListID      string `json:"list_id" validate:"required"`
	Title       string `json:"title"`
	Done        bool   `json:"done"`
	DueAtMs     int64  `json:"due_at_ms" validate:"gte=0"`
	Rule        string `json:"rule,omitempty"`
	UpdatedAtMs int64  `json:"updated_at_ms" validate:"gte=0"`
	Deleted     bool   `json:"deleted"`
}

// TodoList is the validated snapshot schema for the "todo_list" resource.
type TodoList struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name"`
	UpdatedAtMs int64  `json:"updated_at_ms" validate:"gte=0"`
	Deleted     bool   `json:"deleted"`
}
