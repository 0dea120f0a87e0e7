package dto

import (
	"time"

	"ai-learning-be/internal/entity"

	"github.com/google/uuid"
)

type ContinueCourseRequest struct {
	CourseId uuid.UUID `json:"course_id" validate:"required"`
}

type ContinueCourseResponse struct {
	ChapterKey   string    `json:"chapter_key"`
	ChapterTitle string    `json:"chapter_title"`
	SessionId    uuid.UUID `json:"session_id"`
	IsNewSession bool      `json:"is_new_session"`
}

type CreateSessionRequest struct {
	CourseId   uuid.UUID `json:"course_id" validate:"required"`
	ChapterKey string    `json:"chapter_key" validate:"required"`
	Title      string    `json:"title,omitempty"`
	ForceNew   bool      `json:"force_new"`
}

type SessionResponse struct {
	Id         uuid.UUID  `json:"id"`
	CourseId   uuid.UUID  `json:"course_id"`
	ChapterKey string     `json:"chapter_key"`
	Title      string     `json:"title"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// CreateSessionResponse returns the resolved or created session. When the
// caller forced a new session, Sessions carries the refreshed history list,
// most recent first.
type CreateSessionResponse struct {
	Session      *SessionResponse   `json:"session"`
	IsNewSession bool               `json:"is_new_session"`
	Sessions     []*SessionResponse `json:"sessions,omitempty"`
}

type PostMessageRequest struct {
	ChatSessionId uuid.UUID          `json:"chat_session_id" validate:"required"`
	Role          string             `json:"role" validate:"required,oneof=user model system"`
	Body          entity.MessageBody `json:"body"`
}

type MessageResponse struct {
	Id        uuid.UUID          `json:"id"`
	Role      string             `json:"role"`
	Body      entity.MessageBody `json:"body"`
	Position  int                `json:"position"`
	CreatedAt time.Time          `json:"created_at"`
}

type PostMessageResponse struct {
	Message          *MessageResponse `json:"message"`
	SessionUpdatedAt time.Time        `json:"session_updated_at"`
}

type RenameSessionRequest struct {
	Id    uuid.UUID `json:"-"`
	Title string    `json:"title" validate:"required,max=200"`
}
