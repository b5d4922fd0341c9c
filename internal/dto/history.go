package dto

import "time"

// ReadingProgressRequest marks a chapter as read. Completed defaults to true.
// @Description Request body for recording reading progress
type ReadingProgressRequest struct {
	Book      string `json:"book"`
	Chapter   int    `json:"chapter"`
	Completed *bool  `json:"completed,omitempty"`
}

// JournalEntryRequest creates or updates a journal entry.
// @Description Request body for a journal entry
type JournalEntryRequest struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Content string `json:"content"`
}

// StudySessionRequest records a study sitting.
// @Description Request body for recording a study session
type StudySessionRequest struct {
	DurationMinutes int        `json:"duration_minutes"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	Book            string     `json:"book,omitempty"`
	Chapter         *int       `json:"chapter,omitempty"`
	Score           *float64   `json:"score,omitempty"`
}

// ListResponse wraps a list payload.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}
