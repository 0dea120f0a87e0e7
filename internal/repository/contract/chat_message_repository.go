package contract

import (
	"context"

	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error

	// NextPosition returns the position the next appended message should take.
	// Callers must hold the session row lock so two appends cannot observe the
	// same value.
	NextPosition(ctx context.Context, sessionId uuid.UUID) (int, error)

	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
