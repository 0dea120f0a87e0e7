package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one continuous tutoring dialogue scoped to a user and a
// chapter. Several sessions may exist per (user, chapter); the continuity
// resolver decides which one is current.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	CourseId  uuid.UUID
	ChapterId uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
