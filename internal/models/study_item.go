package models

import "time"

type StudyStatus string

const (
	StudyPending   StudyStatus = "pending"
	StudyCompleted StudyStatus = "completed"
)

type StudyItem struct {
	ID      string      `json:"id"`
	UserID  string      `json:"user_id"`
	Title   string      `json:"title"`
	Subject string      `json:"subject"`
	DueDate time.Time   `json:"due_date"`
	Status  StudyStatus `json:"status"`
}

// Toggled returns the opposite status; marking a completed item again
// flips it back to pending.
func (s StudyStatus) Toggled() StudyStatus {
	if s == StudyCompleted {
		return StudyPending
	}
	return StudyCompleted
}
