package dto

import (
	"time"

	"github.com/google/uuid"
)

type CourseResponse struct {
	Id          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ChapterResponse struct {
	Id        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	Ordinal   int       `json:"ordinal"`
	IsVirtual bool      `json:"is_virtual"`
}
