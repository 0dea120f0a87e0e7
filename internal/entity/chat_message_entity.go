package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is immutable once written. Position is assigned by the store,
// gapless per session.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Body          MessageBody
	Position      int
	CreatedAt     time.Time
}
