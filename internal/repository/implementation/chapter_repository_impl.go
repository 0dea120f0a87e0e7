package implementation

import (
	"context"
	"errors"

	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/mapper"
	"ai-learning-be/internal/model"
	"ai-learning-be/internal/repository/contract"
	"ai-learning-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChapterRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseMapper
}

func NewChapterRepository(db *gorm.DB) contract.ChapterRepository {
	return &ChapterRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseMapper(),
	}
}

func (r *ChapterRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChapterRepositoryImpl) Create(ctx context.Context, chapter *entity.Chapter) error {
	m := r.mapper.ChapterToModel(chapter)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chapter = *r.mapper.ChapterToEntity(m)
	return nil
}

func (r *ChapterRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chapter, error) {
	var m model.Chapter
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChapterToEntity(&m), nil
}

func (r *ChapterRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chapter, error) {
	var models []*model.Chapter
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Chapter, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ChapterToEntity(m)
	}
	return entities, nil
}

func (r *ChapterRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Chapter{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
