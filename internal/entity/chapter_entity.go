package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chapter is a learning unit inside a course. Ordinal defines the syllabus
// order; the lowest ordinal is "the beginning" for continuation purposes.
// Virtual chapters are ad hoc units (not part of the syllabus) that can still
// host tutoring sessions.
type Chapter struct {
	Id        uuid.UUID
	CourseId  uuid.UUID
	Key       string
	Title     string
	Ordinal   int
	IsVirtual bool
	CreatedAt time.Time
}
