package entity

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id          uuid.UUID
	Slug        string
	Title       string
	Description string
	CreatedAt   time.Time
}
