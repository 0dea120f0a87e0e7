package service

import (
	"context"

	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/pkg/serverutils"
	"ai-learning-be/internal/repository/memory"
	"ai-learning-be/internal/repository/specification"
	"ai-learning-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICourseService interface {
	GetCourses(ctx context.Context) ([]*dto.CourseResponse, error)
	GetChapters(ctx context.Context, courseId uuid.UUID) ([]*dto.ChapterResponse, error)
}

// courseService serves the read-only catalog. Authoring happens through the
// seeder, so chapter lists come from the shared in-process cache.
type courseService struct {
	uowFactory unitofwork.RepositoryFactory
	catalog    *chapterCatalog
}

func NewCourseService(uowFactory unitofwork.RepositoryFactory, catalogCache *memory.CatalogCache) ICourseService {
	return &courseService{
		uowFactory: uowFactory,
		catalog:    &chapterCatalog{uowFactory: uowFactory, cache: catalogCache},
	}
}

func (s *courseService) GetCourses(ctx context.Context) ([]*dto.CourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	courses, err := uow.CourseRepository().FindAll(ctx, specification.OrderBy{Field: "title"})
	if err != nil {
		return nil, err
	}

	response := make([]*dto.CourseResponse, len(courses))
	for i, course := range courses {
		response[i] = &dto.CourseResponse{
			Id:          course.Id,
			Slug:        course.Slug,
			Title:       course.Title,
			Description: course.Description,
			CreatedAt:   course.CreatedAt,
		}
	}
	return response, nil
}

func (s *courseService) GetChapters(ctx context.Context, courseId uuid.UUID) ([]*dto.ChapterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, serverutils.NotFound("course not found")
	}

	chapters, err := s.catalog.courseChapters(ctx, courseId)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ChapterResponse, len(chapters))
	for i, chapter := range chapters {
		response[i] = &dto.ChapterResponse{
			Id:        chapter.Id,
			Key:       chapter.Key,
			Title:     chapter.Title,
			Ordinal:   chapter.Ordinal,
			IsVirtual: chapter.IsVirtual,
		}
	}
	return response, nil
}
