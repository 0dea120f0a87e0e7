package service

import (
	"context"

	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/repository/memory"
	"ai-learning-be/internal/repository/specification"
	"ai-learning-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// progressLedger feeds the continuity resolver from the chapter_progress
// table.
type progressLedger struct {
	uowFactory unitofwork.RepositoryFactory
}

func (l *progressLedger) LatestChapterID(ctx context.Context, userId, courseId uuid.UUID) (uuid.UUID, bool, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)
	progress, err := uow.ChapterProgressRepository().LatestByCourse(ctx, userId, courseId)
	if err != nil {
		return uuid.Nil, false, err
	}
	if progress == nil {
		return uuid.Nil, false, nil
	}
	return progress.ChapterId, true, nil
}

// chapterCatalog answers syllabus questions, serving repeated course lookups
// from the in-process cache.
type chapterCatalog struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.CatalogCache
}

func (c *chapterCatalog) courseChapters(ctx context.Context, courseId uuid.UUID) ([]*entity.Chapter, error) {
	if chapters, ok := c.cache.GetChapters(courseId); ok {
		return chapters, nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	chapters, err := uow.ChapterRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "ordinal"},
	)
	if err != nil {
		return nil, err
	}

	c.cache.SetChapters(courseId, chapters)
	return chapters, nil
}

func (c *chapterCatalog) FirstChapter(ctx context.Context, courseId uuid.UUID) (*entity.Chapter, error) {
	chapters, err := c.courseChapters(ctx, courseId)
	if err != nil {
		return nil, err
	}
	for _, chapter := range chapters {
		if !chapter.IsVirtual {
			return chapter, nil
		}
	}
	return nil, nil
}

func (c *chapterCatalog) ChapterByID(ctx context.Context, chapterId uuid.UUID) (*entity.Chapter, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	return uow.ChapterRepository().FindOne(ctx, specification.ByID{ID: chapterId})
}

// sessionStore gives the resolver its find-and-create view over
// chat_sessions. Soft-deleted sessions never come back from FindAll, so the
// resolver cannot resume a discarded session.
type sessionStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func (s *sessionStore) FindByChapter(ctx context.Context, userId, chapterId uuid.UUID) ([]*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByChapterID{ChapterID: chapterId},
	)
}

func (s *sessionStore) Create(ctx context.Context, session *entity.ChatSession) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().Create(ctx, session)
}
