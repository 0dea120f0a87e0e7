package contract

import (
	"context"

	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/repository/specification"
)

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
