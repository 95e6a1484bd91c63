package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// ReplyKind discriminates the two shapes an assistant reply can take.
type ReplyKind string

const (
	ReplyKindText  ReplyKind = "text"
	ReplyKindTools ReplyKind = "tools"
)

// ToolCall is a structured function invocation returned by the model. The
// backend never executes these; they are returned verbatim for the editor
// client to act on.
type ToolCall struct {
	Id        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // raw JSON object
}

// Reply is the tagged union of the two assistant reply shapes. Callers must
// switch on Kind; a text reply never carries tool calls and vice versa.
type Reply struct {
	Kind      ReplyKind
	Content   string
	ToolCalls []ToolCall
}

func NewTextReply(content string) *Reply {
	return &Reply{Kind: ReplyKindText, Content: content}
}

func NewToolReply(calls []ToolCall) *Reply {
	return &Reply{Kind: ReplyKindTools, ToolCalls: calls}
}

// Tool describes a function the model may invoke.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{} // JSON schema
}

// Option allows for optional parameters like Temperature, Tools, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	Tools       []Tool
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithTools(tools []Tool) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the reply
	Chat(ctx context.Context, history []Message, options ...Option) (*Reply, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (*Reply, error)
}
