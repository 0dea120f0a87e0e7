package mapper

import (
	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/model"
)

type CourseMapper struct{}

func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func (m *CourseMapper) CourseToEntity(c *model.Course) *entity.Course {
	if c == nil {
		return nil
	}
	return &entity.Course{
		Id:          c.Id,
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *CourseMapper) CourseToModel(c *entity.Course) *model.Course {
	if c == nil {
		return nil
	}
	return &model.Course{
		Id:          c.Id,
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *CourseMapper) ChapterToEntity(c *model.Chapter) *entity.Chapter {
	if c == nil {
		return nil
	}
	return &entity.Chapter{
		Id:        c.Id,
		CourseId:  c.CourseId,
		Key:       c.Key,
		Title:     c.Title,
		Ordinal:   c.Ordinal,
		IsVirtual: c.IsVirtual,
		CreatedAt: c.CreatedAt,
	}
}

func (m *CourseMapper) ChapterToModel(c *entity.Chapter) *model.Chapter {
	if c == nil {
		return nil
	}
	return &model.Chapter{
		Id:        c.Id,
		CourseId:  c.CourseId,
		Key:       c.Key,
		Title:     c.Title,
		Ordinal:   c.Ordinal,
		IsVirtual: c.IsVirtual,
		CreatedAt: c.CreatedAt,
	}
}
