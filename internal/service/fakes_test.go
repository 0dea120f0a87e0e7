package service

import (
	"context"
	"sort"

	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/pkg/logger"
	"ai-learning-be/internal/repository/contract"
	"ai-learning-be/internal/repository/specification"
	"ai-learning-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repositories interpreting the specifications the services use.

type fakeCourseRepo struct {
	courses []*entity.Course
}

func matchCourse(c *entity.Course, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.BySlug:
			if c.Slug != s.Slug {
				return false
			}
		}
	}
	return true
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *entity.Course) error {
	r.courses = append(r.courses, course)
	return nil
}

func (r *fakeCourseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	for _, c := range r.courses {
		if matchCourse(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCourseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error) {
	var out []*entity.Course
	for _, c := range r.courses {
		if matchCourse(c, specs) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeChapterRepo struct {
	chapters []*entity.Chapter
}

func matchChapter(c *entity.Chapter, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.ByCourseID:
			if c.CourseId != s.CourseID {
				return false
			}
		case specification.ByChapterKey:
			if c.Key != s.Key {
				return false
			}
		case specification.SyllabusOnly:
			if c.IsVirtual {
				return false
			}
		}
	}
	return true
}

func (r *fakeChapterRepo) Create(ctx context.Context, chapter *entity.Chapter) error {
	r.chapters = append(r.chapters, chapter)
	return nil
}

func (r *fakeChapterRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chapter, error) {
	for _, c := range r.chapters {
		if matchChapter(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeChapterRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chapter, error) {
	var out []*entity.Chapter
	for _, c := range r.chapters {
		if matchChapter(c, specs) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out, nil
}

func (r *fakeChapterRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type progressKey struct {
	userId    uuid.UUID
	chapterId uuid.UUID
}

type fakeProgressRepo struct {
	rows     map[progressKey]*entity.ChapterProgress
	chapters *fakeChapterRepo
}

func newFakeProgressRepo(chapters *fakeChapterRepo) *fakeProgressRepo {
	return &fakeProgressRepo{
		rows:     make(map[progressKey]*entity.ChapterProgress),
		chapters: chapters,
	}
}

func (r *fakeProgressRepo) Upsert(ctx context.Context, progress *entity.ChapterProgress) error {
	key := progressKey{userId: progress.UserId, chapterId: progress.ChapterId}
	existing, ok := r.rows[key]
	if !ok {
		cp := *progress
		r.rows[key] = &cp
		return nil
	}
	if progress.LastViewedAt.After(existing.LastViewedAt) {
		existing.LastViewedAt = progress.LastViewedAt
	}
	existing.Completed = existing.Completed || progress.Completed
	return nil
}

func (r *fakeProgressRepo) courseOf(chapterId uuid.UUID) (uuid.UUID, bool) {
	for _, c := range r.chapters.chapters {
		if c.Id == chapterId {
			return c.CourseId, true
		}
	}
	return uuid.Nil, false
}

func (r *fakeProgressRepo) LatestByCourse(ctx context.Context, userId, courseId uuid.UUID) (*entity.ChapterProgress, error) {
	var latest *entity.ChapterProgress
	for _, p := range r.rows {
		if p.UserId != userId {
			continue
		}
		cid, ok := r.courseOf(p.ChapterId)
		if !ok || cid != courseId {
			continue
		}
		if latest == nil || p.LastViewedAt.After(latest.LastViewedAt) {
			latest = p
		}
	}
	return latest, nil
}

func (r *fakeProgressRepo) AllByCourse(ctx context.Context, userId, courseId uuid.UUID) ([]*entity.ChapterProgress, error) {
	var out []*entity.ChapterProgress
	for _, p := range r.rows {
		if p.UserId != userId {
			continue
		}
		if cid, ok := r.courseOf(p.ChapterId); ok && cid == courseId {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChapterProgress, error) {
	for _, p := range r.rows {
		if matchProgress(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func matchProgress(p *entity.ChapterProgress, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			if p.UserId != s.UserID {
				return false
			}
		case specification.ByChapterID:
			if p.ChapterId != s.ChapterID {
				return false
			}
		}
	}
	return true
}

func (r *fakeProgressRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, p := range r.rows {
		if matchProgress(p, specs) {
			n++
		}
	}
	return n, nil
}

type fakeSessionRepo struct {
	sessions []*entity.ChatSession
}

func matchSession(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != sp.UserID {
				return false
			}
		case specification.ByChapterID:
			if s.ChapterId != sp.ChapterID {
				return false
			}
		case specification.ByCourseID:
			if s.CourseId != sp.CourseID {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	for i, s := range r.sessions {
		if s.Id == session.Id {
			r.sessions[i] = session
			return nil
		}
	}
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, s := range r.sessions {
		if s.Id == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, s := range r.sessions {
		if matchSession(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, s := range r.sessions {
		if matchSession(s, specs) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeMessageRepo struct {
	messages []*entity.ChatMessage
}

func matchMessage(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.ByChatSessionID:
			if m.ChatSessionId != s.ChatSessionID {
				return false
			}
		}
	}
	return true
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) NextPosition(ctx context.Context, sessionId uuid.UUID) (int, error) {
	next := 0
	for _, m := range r.messages {
		if m.ChatSessionId == sessionId && m.Position >= next {
			next = m.Position + 1
		}
	}
	return next, nil
}

func (r *fakeMessageRepo) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ChatSessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	for _, m := range r.messages {
		if matchMessage(m, specs) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, m := range r.messages {
		if matchMessage(m, specs) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeUow struct {
	courses  *fakeCourseRepo
	chapters *fakeChapterRepo
	progress *fakeProgressRepo
	sessions *fakeSessionRepo
	messages *fakeMessageRepo

	begins  int
	commits int
}

func newFakeUow() *fakeUow {
	chapters := &fakeChapterRepo{}
	return &fakeUow{
		courses:  &fakeCourseRepo{},
		chapters: chapters,
		progress: newFakeProgressRepo(chapters),
		sessions: &fakeSessionRepo{},
		messages: &fakeMessageRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { u.begins++; return nil }
func (u *fakeUow) Commit() error                   { u.commits++; return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) CourseRepository() contract.CourseRepository { return u.courses }
func (u *fakeUow) ChapterRepository() contract.ChapterRepository {
	return u.chapters
}
func (u *fakeUow) ChapterProgressRepository() contract.ChapterProgressRepository {
	return u.progress
}
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessions
}
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return u.messages
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakePublisher struct {
	published [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.published = append(p.published, payload)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }
