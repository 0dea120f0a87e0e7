// Package continuity decides which chapter and tutoring session a learner
// resumes when they come back to a course.
package continuity

import (
	"context"
	"sort"
	"time"

	"ai-learning-be/internal/constant"
	"ai-learning-be/internal/entity"

	"github.com/google/uuid"
)

// Ledger reads the per-chapter progress history.
type Ledger interface {
	LatestChapterID(ctx context.Context, userId, courseId uuid.UUID) (uuid.UUID, bool, error)
}

// Catalog reads the course syllabus.
type Catalog interface {
	FirstChapter(ctx context.Context, courseId uuid.UUID) (*entity.Chapter, error)
	ChapterByID(ctx context.Context, chapterId uuid.UUID) (*entity.Chapter, error)
}

// SessionStore finds and creates tutoring sessions for one (user, chapter).
type SessionStore interface {
	FindByChapter(ctx context.Context, userId, chapterId uuid.UUID) ([]*entity.ChatSession, error)
	Create(ctx context.Context, session *entity.ChatSession) error
}

// Resolution is the outcome of a continue-course request.
type Resolution struct {
	Chapter      *entity.Chapter
	Session      *entity.ChatSession
	IsNewSession bool
}

// Resolver is the single place that knows when to resume an existing session
// and when to start over. Endpoints delegate here instead of each growing
// their own find-or-create variant.
type Resolver struct {
	ledger  Ledger
	catalog Catalog
	store   SessionStore
	now     func() time.Time
}

func NewResolver(ledger Ledger, catalog Catalog, store SessionStore) *Resolver {
	return &Resolver{
		ledger:  ledger,
		catalog: catalog,
		store:   store,
		now:     time.Now,
	}
}

// ErrNoChapters is reported when the course has no syllabus chapters to fall
// back to.
type ErrNoChapters struct{}

func (ErrNoChapters) Error() string {
	return "course has no chapters"
}

// ResolveCourse continues a course: the last-touched chapter wins, otherwise
// the syllabus start, then the chapter's sessions are resolved via
// ResolveChapter.
func (r *Resolver) ResolveCourse(ctx context.Context, userId, courseId uuid.UUID, forceNew bool) (*Resolution, error) {
	chapter, err := r.targetChapter(ctx, userId, courseId)
	if err != nil {
		return nil, err
	}
	return r.ResolveChapter(ctx, userId, chapter, forceNew)
}

// ResolveChapter reuses the most recent session on the chapter, or creates a
// fresh one when none exists or the caller forced it.
func (r *Resolver) ResolveChapter(ctx context.Context, userId uuid.UUID, chapter *entity.Chapter, forceNew bool) (*Resolution, error) {
	if !forceNew {
		sessions, err := r.store.FindByChapter(ctx, userId, chapter.Id)
		if err != nil {
			return nil, err
		}
		if current := MostRecent(sessions); current != nil {
			return &Resolution{Chapter: chapter, Session: current, IsNewSession: false}, nil
		}
	}

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		CourseId:  chapter.CourseId,
		ChapterId: chapter.Id,
		Title:     constant.DefaultSessionTitle,
		CreatedAt: r.now(),
	}
	if err := r.store.Create(ctx, session); err != nil {
		return nil, err
	}
	return &Resolution{Chapter: chapter, Session: session, IsNewSession: true}, nil
}

func (r *Resolver) targetChapter(ctx context.Context, userId, courseId uuid.UUID) (*entity.Chapter, error) {
	chapterId, ok, err := r.ledger.LatestChapterID(ctx, userId, courseId)
	if err != nil {
		return nil, err
	}
	if ok {
		chapter, err := r.catalog.ChapterByID(ctx, chapterId)
		if err != nil {
			return nil, err
		}
		if chapter != nil {
			return chapter, nil
		}
		// Progress points at a chapter that no longer exists; start over.
	}

	first, err := r.catalog.FirstChapter(ctx, courseId)
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, ErrNoChapters{}
	}
	return first, nil
}

// MostRecent picks the session a learner means by "where I left off":
// newest CreatedAt first, ties broken by the lexicographically greater id so
// the choice stays deterministic under coarse clocks.
func MostRecent(sessions []*entity.ChatSession) *entity.ChatSession {
	if len(sessions) == 0 {
		return nil
	}
	best := sessions[0]
	for _, s := range sessions[1:] {
		if Less(best, s) {
			best = s
		}
	}
	return best
}

// Less reports whether a ranks below b in recency order.
func Less(a, b *entity.ChatSession) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.Id.String() < b.Id.String()
}

// SortMostRecentFirst orders a session list for display, newest first, with
// the same tie-break as MostRecent.
func SortMostRecentFirst(sessions []*entity.ChatSession) {
	sort.Slice(sessions, func(i, j int) bool {
		return Less(sessions[j], sessions[i])
	})
}
