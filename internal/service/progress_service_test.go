package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/pkg/serverutils"
	"ai-learning-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newProgressServiceForTest(uow *fakeUow, pub *fakePublisher) IProgressService {
	return NewProgressService(&fakeUowFactory{uow: uow}, memory.NewCatalogCache(), pub, nil, nopLogger{})
}

func TestRecordViewUnknownChapter(t *testing.T) {
	uow := newFakeUow()
	svc := newProgressServiceForTest(uow, &fakePublisher{})

	err := svc.RecordView(context.Background(), uuid.New(), uuid.New())
	assertKind(t, err, serverutils.KindNotFound)
}

func TestRecordViewAdvancesLastViewed(t *testing.T) {
	uow := newFakeUow()
	_, chapters := seedCourse(uow, "intro")
	svc := newProgressServiceForTest(uow, &fakePublisher{})
	userId := uuid.New()

	err := svc.RecordView(context.Background(), userId, chapters[0].Id)
	assert.NoError(t, err)

	first, _ := uow.progress.FindOne(context.Background())
	if assert.NotNil(t, first) {
		before := first.LastViewedAt

		err = svc.RecordView(context.Background(), userId, chapters[0].Id)
		assert.NoError(t, err)
		assert.False(t, first.LastViewedAt.Before(before))
	}
}

func TestMarkCompleteIsIdempotent(t *testing.T) {
	uow := newFakeUow()
	_, chapters := seedCourse(uow, "intro", "types")
	pub := &fakePublisher{}
	svc := newProgressServiceForTest(uow, pub)
	userId := uuid.New()

	err := svc.MarkComplete(context.Background(), userId, "learner@example.com", chapters[0].Id)
	assert.NoError(t, err)
	err = svc.MarkComplete(context.Background(), userId, "learner@example.com", chapters[0].Id)
	assert.NoError(t, err)

	p, _ := uow.progress.FindOne(context.Background())
	if assert.NotNil(t, p) {
		assert.True(t, p.Completed)
	}
	// Course is not done yet, so nothing crossed the bus.
	assert.Empty(t, pub.published)
}

func TestMarkCompleteAnnouncesCourseCompletionOnce(t *testing.T) {
	uow := newFakeUow()
	course, chapters := seedCourse(uow, "intro", "types")
	// Virtual chapters never gate completion.
	uow.chapters.chapters = append(uow.chapters.chapters, &entity.Chapter{
		Id: uuid.New(), CourseId: course.Id, Key: "scratchpad", Title: "Scratchpad",
		Ordinal: 99, IsVirtual: true,
	})
	pub := &fakePublisher{}
	svc := newProgressServiceForTest(uow, pub)
	userId := uuid.New()

	assert.NoError(t, svc.MarkComplete(context.Background(), userId, "learner@example.com", chapters[0].Id))
	assert.Empty(t, pub.published)

	assert.NoError(t, svc.MarkComplete(context.Background(), userId, "learner@example.com", chapters[1].Id))
	if assert.Len(t, pub.published, 1) {
		var msg dto.CourseCompletedMessage
		assert.NoError(t, json.Unmarshal(pub.published[0], &msg))
		assert.Equal(t, userId, msg.UserId)
		assert.Equal(t, "learner@example.com", msg.UserEmail)
		assert.Equal(t, course.Id, msg.CourseId)
	}

	// Re-completing a chapter must not replay the announcement.
	assert.NoError(t, svc.MarkComplete(context.Background(), userId, "learner@example.com", chapters[1].Id))
	assert.Len(t, pub.published, 1)
}

func TestGetSummaryUnknownCourse(t *testing.T) {
	uow := newFakeUow()
	svc := newProgressServiceForTest(uow, &fakePublisher{})

	_, err := svc.GetSummary(context.Background(), uuid.New(), uuid.New())
	assertKind(t, err, serverutils.KindNotFound)
}

func TestGetSummarySkipsVirtualChapters(t *testing.T) {
	uow := newFakeUow()
	course, chapters := seedCourse(uow, "intro", "types", "interfaces")
	uow.chapters.chapters = append(uow.chapters.chapters, &entity.Chapter{
		Id: uuid.New(), CourseId: course.Id, Key: "scratchpad", Title: "Scratchpad",
		Ordinal: 99, IsVirtual: true,
	})
	svc := newProgressServiceForTest(uow, &fakePublisher{})
	userId := uuid.New()

	viewed := time.Now().Add(-time.Minute)
	uow.progress.Upsert(context.Background(), &entity.ChapterProgress{
		UserId: userId, ChapterId: chapters[0].Id, LastViewedAt: viewed, Completed: true,
	})
	uow.progress.Upsert(context.Background(), &entity.ChapterProgress{
		UserId: userId, ChapterId: chapters[1].Id, LastViewedAt: time.Now(),
	})

	summary, err := svc.GetSummary(context.Background(), userId, course.Id)
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.CompletedCount)
	if assert.Len(t, summary.Chapters, 3) {
		assert.Equal(t, "intro", summary.Chapters[0].ChapterKey)
		assert.True(t, summary.Chapters[0].Completed)
		if assert.NotNil(t, summary.Chapters[0].LastViewedAt) {
			assert.WithinDuration(t, viewed, *summary.Chapters[0].LastViewedAt, time.Second)
		}
		assert.False(t, summary.Chapters[1].Completed)
		assert.NotNil(t, summary.Chapters[1].LastViewedAt)
		assert.Nil(t, summary.Chapters[2].LastViewedAt)
	}
}
