package model

import (
	"time"

	"github.com/google/uuid"
)

// ChapterProgress has no surrogate key: (user_id, chapter_id) is the identity
// and the primary key is what the upsert conflicts on.
type ChapterProgress struct {
	UserId       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChapterId    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	LastViewedAt time.Time `gorm:"not null"`
	Completed    bool      `gorm:"not null;default:false"`
}

func (ChapterProgress) TableName() string {
	return "chapter_progress"
}
