package dto

import (
	"github.com/google/uuid"

	"ide-assistant-be/pkg/llm"
)

// MessageDTO mirrors the wire shape the editor extension sends and receives.
// ToolCalls is only ever present on assistant replies.
type MessageDTO struct {
	Role      string         `json:"role" validate:"required,oneof=user assistant"`
	Content   string         `json:"content"`
	ToolCalls []llm.ToolCall `json:"tool_calls,omitempty"`
}

type MessageRequest struct {
	Messages       []MessageDTO `json:"messages" validate:"required,min=1,dive"`
	AccessToken    string       `json:"access_token" validate:"required"`
	ProjectName    string       `json:"project_name" validate:"required"`
	ProjectContext string       `json:"projectContext,omitempty"`
	UserContext    string       `json:"userContext,omitempty"`
}

type MessageResponse struct {
	Content   MessageDTO `json:"content"`
	MessageId uuid.UUID  `json:"messageId"`
}

// SummaryEntry is one half of a summarized question/answer pair.
type SummaryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GenerateReadmeRequest struct {
	Readme             string `json:"readme" validate:"required"`
	UseConflictMarkers bool   `json:"useConflictMarkers"`
}

type GenerateReadmeResponse struct {
	Content string `json:"content"`
}
