package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-learning-be/internal/constant"
	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/pkg/logger"
	"ai-learning-be/internal/pkg/serverutils"
	"ai-learning-be/internal/repository/memory"
	"ai-learning-be/internal/repository/specification"
	"ai-learning-be/internal/repository/unitofwork"
	"ai-learning-be/pkg/events"
	pktNats "ai-learning-be/pkg/nats"

	"github.com/google/uuid"
)

type IProgressService interface {
	RecordView(ctx context.Context, userId, chapterId uuid.UUID) error
	MarkComplete(ctx context.Context, userId uuid.UUID, userEmail string, chapterId uuid.UUID) error
	GetSummary(ctx context.Context, userId, courseId uuid.UUID) (*dto.ProgressSummaryResponse, error)
}

type progressService struct {
	uowFactory       unitofwork.RepositoryFactory
	catalog          *chapterCatalog
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewProgressService(
	uowFactory unitofwork.RepositoryFactory,
	catalogCache *memory.CatalogCache,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IProgressService {
	return &progressService{
		uowFactory:       uowFactory,
		catalog:          &chapterCatalog{uowFactory: uowFactory, cache: catalogCache},
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *progressService) RecordView(ctx context.Context, userId, chapterId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chapter, err := uow.ChapterRepository().FindOne(ctx, specification.ByID{ID: chapterId})
	if err != nil {
		return err
	}
	if chapter == nil {
		return serverutils.NotFound("chapter not found")
	}

	return uow.ChapterProgressRepository().Upsert(ctx, &entity.ChapterProgress{
		UserId:       userId,
		ChapterId:    chapterId,
		LastViewedAt: time.Now(),
	})
}

// MarkComplete raises the completed flag for one chapter. Repeat calls are
// no-ops: the upsert never lowers the flag, and completion events fire only
// on the call that actually flipped it.
func (s *progressService) MarkComplete(ctx context.Context, userId uuid.UUID, userEmail string, chapterId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chapter, err := uow.ChapterRepository().FindOne(ctx, specification.ByID{ID: chapterId})
	if err != nil {
		return err
	}
	if chapter == nil {
		return serverutils.NotFound("chapter not found")
	}

	existing, err := uow.ChapterProgressRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByChapterID{ChapterID: chapterId},
	)
	if err != nil {
		return err
	}
	alreadyCompleted := existing != nil && existing.Completed

	err = uow.ChapterProgressRepository().Upsert(ctx, &entity.ChapterProgress{
		UserId:       userId,
		ChapterId:    chapterId,
		LastViewedAt: time.Now(),
		Completed:    true,
	})
	if err != nil {
		return err
	}

	if alreadyCompleted {
		return nil
	}

	s.publishEvent(ctx, constant.EventChapterCompleted, map[string]interface{}{
		"title":       chapter.Title,
		"chapter_key": chapter.Key,
		"course_id":   chapter.CourseId,
		"user_id":     userId,
	})

	done, err := s.courseCompleted(ctx, uow, userId, chapter.CourseId)
	if err != nil {
		return err
	}
	if done {
		if err := s.announceCourseCompleted(ctx, userId, userEmail, chapter.CourseId); err != nil {
			return err
		}
	}
	return nil
}

func (s *progressService) GetSummary(ctx context.Context, userId, courseId uuid.UUID) (*dto.ProgressSummaryResponse, error) {
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

	progress, err := uow.ChapterProgressRepository().AllByCourse(ctx, userId, courseId)
	if err != nil {
		return nil, err
	}
	byChapter := make(map[uuid.UUID]*entity.ChapterProgress, len(progress))
	for _, p := range progress {
		byChapter[p.ChapterId] = p
	}

	summary := &dto.ProgressSummaryResponse{
		CourseId: courseId,
		Chapters: make([]*dto.ChapterStatus, 0, len(chapters)),
	}
	for _, chapter := range chapters {
		if chapter.IsVirtual {
			continue
		}
		status := &dto.ChapterStatus{
			ChapterKey:   chapter.Key,
			ChapterTitle: chapter.Title,
			Ordinal:      chapter.Ordinal,
		}
		if p, ok := byChapter[chapter.Id]; ok {
			t := p.LastViewedAt
			status.LastViewedAt = &t
			status.Completed = p.Completed
		}
		summary.Total++
		if status.Completed {
			summary.CompletedCount++
		}
		summary.Chapters = append(summary.Chapters, status)
	}
	return summary, nil
}

// courseCompleted reports whether every syllabus chapter of the course is
// completed for the user. Virtual chapters never gate completion.
func (s *progressService) courseCompleted(ctx context.Context, uow unitofwork.UnitOfWork, userId, courseId uuid.UUID) (bool, error) {
	chapters, err := s.catalog.courseChapters(ctx, courseId)
	if err != nil {
		return false, err
	}

	progress, err := uow.ChapterProgressRepository().AllByCourse(ctx, userId, courseId)
	if err != nil {
		return false, err
	}
	completed := make(map[uuid.UUID]bool, len(progress))
	for _, p := range progress {
		completed[p.ChapterId] = p.Completed
	}

	sawSyllabus := false
	for _, chapter := range chapters {
		if chapter.IsVirtual {
			continue
		}
		sawSyllabus = true
		if !completed[chapter.Id] {
			return false, nil
		}
	}
	return sawSyllabus, nil
}

func (s *progressService) announceCourseCompleted(ctx context.Context, userId uuid.UUID, userEmail string, courseId uuid.UUID) error {
	payload := dto.CourseCompletedMessage{
		UserId:    userId,
		UserEmail: userEmail,
		CourseId:  courseId,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payloadJson)
}

func (s *progressService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ProgressService", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
