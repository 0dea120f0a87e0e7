package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChapterProgress is the per (user, chapter) ledger row. Completed only ever
// moves false -> true; LastViewedAt never goes backwards.
type ChapterProgress struct {
	UserId       uuid.UUID
	ChapterId    uuid.UUID
	LastViewedAt time.Time
	Completed    bool
}
