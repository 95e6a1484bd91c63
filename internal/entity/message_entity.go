package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

// Message is one turn in a discussion. Rating and Feedback are mutable
// post-creation; everything else is written once.
type Message struct {
	Id           uuid.UUID
	DiscussionId uuid.UUID
	Role         string
	Content      string
	ToolCalls    []byte // raw JSON array of tool invocations, nil for plain turns
	Date         time.Time
	Rating       *int
	Feedback     *string
}
