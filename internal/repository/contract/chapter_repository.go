package contract

import (
	"context"

	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/repository/specification"
)

type ChapterRepository interface {
	Create(ctx context.Context, chapter *entity.Chapter) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chapter, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chapter, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
