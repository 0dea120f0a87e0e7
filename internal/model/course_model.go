package model

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Course) TableName() string {
	return "courses"
}
