package implementation

import (
	"context"
	"errors"

	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/mapper"
	"ai-learning-be/internal/model"
	"ai-learning-be/internal/repository/contract"
	"ai-learning-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChapterProgressRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProgressMapper
}

func NewChapterProgressRepository(db *gorm.DB) contract.ChapterProgressRepository {
	return &ChapterProgressRepositoryImpl{
		db:     db,
		mapper: mapper.NewProgressMapper(),
	}
}

func (r *ChapterProgressRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert is a single INSERT ... ON CONFLICT statement so racing writers
// converge without a read-modify-write window: the newest timestamp wins and
// completed can only be raised.
func (r *ChapterProgressRepositoryImpl) Upsert(ctx context.Context, progress *entity.ChapterProgress) error {
	m := r.mapper.ToModel(progress)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_viewed_at": gorm.Expr("GREATEST(chapter_progress.last_viewed_at, excluded.last_viewed_at)"),
			"completed":      gorm.Expr("chapter_progress.completed OR excluded.completed"),
		}),
	}).Create(m).Error
}

func (r *ChapterProgressRepositoryImpl) LatestByCourse(ctx context.Context, userId, courseId uuid.UUID) (*entity.ChapterProgress, error) {
	var m model.ChapterProgress
	err := r.db.WithContext(ctx).
		Joins("JOIN chapters ON chapters.id = chapter_progress.chapter_id").
		Where("chapter_progress.user_id = ? AND chapters.course_id = ?", userId, courseId).
		Order("chapter_progress.last_viewed_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChapterProgressRepositoryImpl) AllByCourse(ctx context.Context, userId, courseId uuid.UUID) ([]*entity.ChapterProgress, error) {
	var models []*model.ChapterProgress
	err := r.db.WithContext(ctx).
		Joins("JOIN chapters ON chapters.id = chapter_progress.chapter_id").
		Where("chapter_progress.user_id = ? AND chapters.course_id = ?", userId, courseId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.ChapterProgress, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ChapterProgressRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChapterProgress, error) {
	var m model.ChapterProgress
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChapterProgress{}), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChapterProgressRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChapterProgress{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
