package mapper

import (
	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/model"
)

type ProgressMapper struct{}

func NewProgressMapper() *ProgressMapper {
	return &ProgressMapper{}
}

func (m *ProgressMapper) ToEntity(p *model.ChapterProgress) *entity.ChapterProgress {
	if p == nil {
		return nil
	}
	return &entity.ChapterProgress{
		UserId:       p.UserId,
		ChapterId:    p.ChapterId,
		LastViewedAt: p.LastViewedAt,
		Completed:    p.Completed,
	}
}

func (m *ProgressMapper) ToModel(p *entity.ChapterProgress) *model.ChapterProgress {
	if p == nil {
		return nil
	}
	return &model.ChapterProgress{
		UserId:       p.UserId,
		ChapterId:    p.ChapterId,
		LastViewedAt: p.LastViewedAt,
		Completed:    p.Completed,
	}
}
