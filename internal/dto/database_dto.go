package dto

import (
	"time"

	"github.com/google/uuid"

	"ide-assistant-be/pkg/llm"
)

type UserDTO struct {
	Id    uuid.UUID `json:"id"`
	Login string    `json:"login"`
	Role  string    `json:"role"`
}

type ProjectDTO struct {
	Id           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	ProjectLeads []uuid.UUID `json:"projectLeads"`
}

type DiscussionDTO struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"userId"`
	ProjectId uuid.UUID `json:"projectId"`
}

type MessageRecordDTO struct {
	Id           uuid.UUID      `json:"id"`
	DiscussionId uuid.UUID      `json:"discussionId"`
	Role         string         `json:"role"`
	Content      string         `json:"content"`
	ToolCalls    []llm.ToolCall `json:"tool_calls,omitempty"`
	Date         time.Time      `json:"date"`
	Rating       *int           `json:"rating,omitempty"`
	Feedback     *string        `json:"feedback,omitempty"`
}

// RateMessageRequest mutates the only post-creation mutable message fields.
// The requester must own the underlying discussion.
type RateMessageRequest struct {
	MessageId uuid.UUID `json:"messageId" validate:"required"`
	Rating    *int      `json:"rating" validate:"omitempty,min=0,max=5"`
	Feedback  *string   `json:"feedback"`
}
