package continuity

import (
	"context"
	"testing"
	"time"

	"ai-learning-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLedger struct {
	latest map[uuid.UUID]uuid.UUID // courseId -> chapterId
}

func (f *fakeLedger) LatestChapterID(_ context.Context, _, courseId uuid.UUID) (uuid.UUID, bool, error) {
	id, ok := f.latest[courseId]
	return id, ok, nil
}

type fakeCatalog struct {
	chapters []*entity.Chapter
}

func (f *fakeCatalog) FirstChapter(_ context.Context, courseId uuid.UUID) (*entity.Chapter, error) {
	var first *entity.Chapter
	for _, c := range f.chapters {
		if c.CourseId != courseId || c.IsVirtual {
			continue
		}
		if first == nil || c.Ordinal < first.Ordinal {
			first = c
		}
	}
	return first, nil
}

func (f *fakeCatalog) ChapterByID(_ context.Context, chapterId uuid.UUID) (*entity.Chapter, error) {
	for _, c := range f.chapters {
		if c.Id == chapterId {
			return c, nil
		}
	}
	return nil, nil
}

type fakeStore struct {
	sessions []*entity.ChatSession
	created  int
}

func (f *fakeStore) FindByChapter(_ context.Context, userId, chapterId uuid.UUID) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, s := range f.sessions {
		if s.UserId == userId && s.ChapterId == chapterId {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, session *entity.ChatSession) error {
	f.sessions = append(f.sessions, session)
	f.created++
	return nil
}

func chapter(courseId uuid.UUID, key string, ordinal int) *entity.Chapter {
	return &entity.Chapter{
		Id:       uuid.New(),
		CourseId: courseId,
		Key:      key,
		Title:    key,
		Ordinal:  ordinal,
	}
}

func TestResolveCourseNoProgressStartsAtFirstChapter(t *testing.T) {
	userId := uuid.New()
	courseId := uuid.New()
	ch1 := chapter(courseId, "ch-1", 1)
	ch2 := chapter(courseId, "ch-2", 2)

	r := NewResolver(
		&fakeLedger{latest: map[uuid.UUID]uuid.UUID{}},
		&fakeCatalog{chapters: []*entity.Chapter{ch2, ch1}},
		&fakeStore{},
	)

	res, err := r.ResolveCourse(context.Background(), userId, courseId, false)
	assert.NoError(t, err)
	assert.Equal(t, "ch-1", res.Chapter.Key)
	assert.True(t, res.IsNewSession)
	assert.NotEqual(t, uuid.Nil, res.Session.Id)
}

func TestResolveCourseResumesLatestChapter(t *testing.T) {
	userId := uuid.New()
	courseId := uuid.New()
	ch1 := chapter(courseId, "ch-1", 1)
	ch5 := chapter(courseId, "ch-5", 5)

	existing := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		CourseId:  courseId,
		ChapterId: ch5.Id,
		CreatedAt: time.Now().Add(-time.Hour),
	}

	r := NewResolver(
		&fakeLedger{latest: map[uuid.UUID]uuid.UUID{courseId: ch5.Id}},
		&fakeCatalog{chapters: []*entity.Chapter{ch1, ch5}},
		&fakeStore{sessions: []*entity.ChatSession{existing}},
	)

	res, err := r.ResolveCourse(context.Background(), userId, courseId, false)
	assert.NoError(t, err)
	assert.Equal(t, "ch-5", res.Chapter.Key)
	assert.False(t, res.IsNewSession)
	assert.Equal(t, existing.Id, res.Session.Id)

	// A second continue lands on the same session.
	res2, err := r.ResolveCourse(context.Background(), userId, courseId, false)
	assert.NoError(t, err)
	assert.Equal(t, existing.Id, res2.Session.Id)
}

func TestResolveChapterForceNewSkipsLookup(t *testing.T) {
	userId := uuid.New()
	courseId := uuid.New()
	ch1 := chapter(courseId, "ch-1", 1)

	existing := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		ChapterId: ch1.Id,
		CreatedAt: time.Now(),
	}
	store := &fakeStore{sessions: []*entity.ChatSession{existing}}

	r := NewResolver(&fakeLedger{}, &fakeCatalog{chapters: []*entity.Chapter{ch1}}, store)

	res, err := r.ResolveChapter(context.Background(), userId, ch1, true)
	assert.NoError(t, err)
	assert.True(t, res.IsNewSession)
	assert.NotEqual(t, existing.Id, res.Session.Id)
	assert.Equal(t, 1, store.created)

	// Forcing again produces yet another distinct session.
	res2, err := r.ResolveChapter(context.Background(), userId, ch1, true)
	assert.NoError(t, err)
	assert.NotEqual(t, res.Session.Id, res2.Session.Id)
	assert.Equal(t, 2, store.created)
}

func TestResolveCourseEmptyCourse(t *testing.T) {
	r := NewResolver(&fakeLedger{}, &fakeCatalog{}, &fakeStore{})

	_, err := r.ResolveCourse(context.Background(), uuid.New(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrNoChapters{})
}

func TestResolveCourseDanglingProgressFallsBack(t *testing.T) {
	userId := uuid.New()
	courseId := uuid.New()
	ch1 := chapter(courseId, "ch-1", 1)
	deleted := uuid.New() // progress references a chapter the catalog no longer has

	r := NewResolver(
		&fakeLedger{latest: map[uuid.UUID]uuid.UUID{courseId: deleted}},
		&fakeCatalog{chapters: []*entity.Chapter{ch1}},
		&fakeStore{},
	)

	res, err := r.ResolveCourse(context.Background(), userId, courseId, false)
	assert.NoError(t, err)
	assert.Equal(t, "ch-1", res.Chapter.Key)
}

func TestMostRecentTieBreak(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	lo := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	hi := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	tests := []struct {
		name     string
		sessions []*entity.ChatSession
		want     uuid.UUID
	}{
		{
			name: "newest creation wins",
			sessions: []*entity.ChatSession{
				{Id: lo, CreatedAt: ts.Add(time.Minute)},
				{Id: hi, CreatedAt: ts},
			},
			want: lo,
		},
		{
			name: "equal timestamps fall back to greater id",
			sessions: []*entity.ChatSession{
				{Id: lo, CreatedAt: ts},
				{Id: hi, CreatedAt: ts},
			},
			want: hi,
		},
		{
			name: "order of input does not matter",
			sessions: []*entity.ChatSession{
				{Id: hi, CreatedAt: ts},
				{Id: lo, CreatedAt: ts},
			},
			want: hi,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MostRecent(tt.sessions)
			if got.Id != tt.want {
				t.Errorf("MostRecent() = %s, want %s", got.Id, tt.want)
			}
		})
	}
}

func TestSortMostRecentFirst(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a := &entity.ChatSession{Id: uuid.New(), CreatedAt: ts.Add(-time.Hour)}
	b := &entity.ChatSession{Id: uuid.New(), CreatedAt: ts}
	c := &entity.ChatSession{Id: uuid.New(), CreatedAt: ts.Add(time.Hour)}

	sessions := []*entity.ChatSession{a, c, b}
	SortMostRecentFirst(sessions)

	assert.Equal(t, []*entity.ChatSession{c, b, a}, sessions)
}
