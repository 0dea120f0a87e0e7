package entity

import (
	"encoding/json"
	"fmt"
)

// MessageKind discriminates the finite set of message payloads. Each kind has
// its own payload struct so malformed bodies are rejected at the boundary
// instead of living in the database as loose JSON.
type MessageKind string

const (
	MessageKindText    MessageKind = "text"
	MessageKindCode    MessageKind = "code"
	MessageKindDiagram MessageKind = "diagram"
	MessageKindTable   MessageKind = "table"
	MessageKindImage   MessageKind = "image"
	MessageKindError   MessageKind = "error"
)

type TextPayload struct {
	Text string `json:"text"`
}

type CodePayload struct {
	Language string `json:"language"`
	Source   string `json:"source"`
}

type DiagramPayload struct {
	Format string `json:"format"` // e.g. "mermaid"
	Source string `json:"source"`
}

type TablePayload struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type ImagePayload struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageBody is a tagged union. Exactly the payload matching Kind is set.
type MessageBody struct {
	Kind    MessageKind     `json:"kind"`
	Text    *TextPayload    `json:"text,omitempty"`
	Code    *CodePayload    `json:"code,omitempty"`
	Diagram *DiagramPayload `json:"diagram,omitempty"`
	Table   *TablePayload   `json:"table,omitempty"`
	Image   *ImagePayload   `json:"image,omitempty"`
	Error   *ErrorPayload   `json:"error,omitempty"`
}

func TextBody(text string) MessageBody {
	return MessageBody{Kind: MessageKindText, Text: &TextPayload{Text: text}}
}

// Validate checks that the tag and payload agree: the tagged payload must be
// present and structurally complete, and no other payload may be set.
func (b MessageBody) Validate() error {
	set := 0
	if b.Text != nil {
		set++
	}
	if b.Code != nil {
		set++
	}
	if b.Diagram != nil {
		set++
	}
	if b.Table != nil {
		set++
	}
	if b.Image != nil {
		set++
	}
	if b.Error != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("message body must carry exactly one payload, got %d", set)
	}

	switch b.Kind {
	case MessageKindText:
		if b.Text == nil {
			return fmt.Errorf("kind %q without text payload", b.Kind)
		}
		if b.Text.Text == "" {
			return fmt.Errorf("text payload is empty")
		}
	case MessageKindCode:
		if b.Code == nil {
			return fmt.Errorf("kind %q without code payload", b.Kind)
		}
		if b.Code.Source == "" {
			return fmt.Errorf("code payload has no source")
		}
	case MessageKindDiagram:
		if b.Diagram == nil {
			return fmt.Errorf("kind %q without diagram payload", b.Kind)
		}
		if b.Diagram.Source == "" {
			return fmt.Errorf("diagram payload has no source")
		}
	case MessageKindTable:
		if b.Table == nil {
			return fmt.Errorf("kind %q without table payload", b.Kind)
		}
		if len(b.Table.Headers) == 0 {
			return fmt.Errorf("table payload has no headers")
		}
		for i, row := range b.Table.Rows {
			if len(row) != len(b.Table.Headers) {
				return fmt.Errorf("table row %d has %d cells, want %d", i, len(row), len(b.Table.Headers))
			}
		}
	case MessageKindImage:
		if b.Image == nil {
			return fmt.Errorf("kind %q without image payload", b.Kind)
		}
		if b.Image.URL == "" {
			return fmt.Errorf("image payload has no url")
		}
	case MessageKindError:
		if b.Error == nil {
			return fmt.Errorf("kind %q without error payload", b.Kind)
		}
		if b.Error.Message == "" {
			return fmt.Errorf("error payload has no message")
		}
	default:
		return fmt.Errorf("unknown message kind %q", b.Kind)
	}
	return nil
}

// ParseMessageBody decodes and validates a body coming off the wire or out of
// the jsonb column.
func ParseMessageBody(raw []byte) (MessageBody, error) {
	var b MessageBody
	if err := json.Unmarshal(raw, &b); err != nil {
		return MessageBody{}, fmt.Errorf("decode message body: %w", err)
	}
	if err := b.Validate(); err != nil {
		return MessageBody{}, err
	}
	return b, nil
}
