package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatMessage rows are append-only. The unique (session, position) index is
// the backstop for the serialized append path: a racing writer that slips
// past the session row lock hits a constraint violation, never a duplicate
// position.
type ChatMessage struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index:idx_chat_messages_session_position,unique"`
	Role          string         `gorm:"type:varchar(50);not null"`
	Body          datatypes.JSON `gorm:"type:jsonb;not null"`
	Position      int            `gorm:"not null;index:idx_chat_messages_session_position,unique"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
