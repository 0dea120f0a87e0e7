package unitofwork

import (
	"context"

	"ai-learning-be/internal/repository/contract"
)

// UnitOfWork bundles the repositories over one database handle. After Begin,
// every repository accessor returns a transaction-bound repository until
// Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CourseRepository() contract.CourseRepository
	ChapterRepository() contract.ChapterRepository
	ChapterProgressRepository() contract.ChapterProgressRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
