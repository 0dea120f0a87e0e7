package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChapterStatus struct {
	ChapterKey   string     `json:"chapter_key"`
	ChapterTitle string     `json:"chapter_title"`
	Ordinal      int        `json:"ordinal"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
	Completed    bool       `json:"completed"`
}

type ProgressSummaryResponse struct {
	CourseId       uuid.UUID        `json:"course_id"`
	Total          int              `json:"total"`
	CompletedCount int              `json:"completed_count"`
	Chapters       []*ChapterStatus `json:"chapters"`
}

// CourseCompletedMessage is published on the internal bus when marking a
// chapter complete tips the whole course over to done.
type CourseCompletedMessage struct {
	UserId    uuid.UUID `json:"user_id"`
	UserEmail string    `json:"user_email"`
	CourseId  uuid.UUID `json:"course_id"`
}
