package model

import (
	"time"

	"github.com/google/uuid"
)

type Chapter struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseId  uuid.UUID `gorm:"type:uuid;not null;index:idx_chapters_course_key,unique"`
	Key       string    `gorm:"type:varchar(100);not null;index:idx_chapters_course_key,unique"`
	Title     string    `gorm:"type:text;not null"`
	Ordinal   int       `gorm:"not null"`
	IsVirtual bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Chapter) TableName() string {
	return "chapters"
}
