package contract

import (
	"context"

	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChapterProgressRepository interface {
	// Upsert merges the given row into the ledger: last-write-wins on
	// LastViewedAt, and Completed can only be raised, never lowered.
	Upsert(ctx context.Context, progress *entity.ChapterProgress) error

	// LatestByCourse returns the row with the greatest LastViewedAt among the
	// user's progress on the course's chapters, or nil when the user has no
	// recorded progress there.
	LatestByCourse(ctx context.Context, userId, courseId uuid.UUID) (*entity.ChapterProgress, error)

	// AllByCourse returns every progress row the user has within the course.
	AllByCourse(ctx context.Context, userId, courseId uuid.UUID) ([]*entity.ChapterProgress, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChapterProgress, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
