package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ide-assistant-be/internal/constant"
	"ide-assistant-be/internal/dto"
	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/pkg/logger"
	"ide-assistant-be/internal/pkg/serverutils"
	"ide-assistant-be/internal/repository/specification"
	"ide-assistant-be/internal/repository/unitofwork"
	"ide-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

// IAssistantService handles one chat turn end-to-end, plus the project-lead
// flows: the summarization digest and the README rewrite built on top of it.
type IAssistantService interface {
	Answer(ctx context.Context, request *dto.MessageRequest) (*dto.MessageResponse, error)
	Summarize(ctx context.Context, projectName, accessToken string) ([]*dto.SummaryEntry, error)
	GenerateReadme(ctx context.Context, projectName, accessToken string, request *dto.GenerateReadmeRequest) (*dto.GenerateReadmeResponse, error)
}

type assistantService struct {
	uowFactory  unitofwork.RepositoryFactory
	resolver    IResolverService
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	resolver IResolverService,
	llmProvider llm.LLMProvider,
	sysLogger logger.ILogger,
) IAssistantService {
	return &assistantService{
		uowFactory:  uowFactory,
		resolver:    resolver,
		llmProvider: llmProvider,
		logger:      sysLogger,
	}
}

// Answer resolves identity and conversation context, persists the inbound
// user message, invokes the model and persists its reply. Ordering: the user
// message is stored before the model call, the assistant message before the
// response is returned. No step is retried.
func (s *assistantService) Answer(ctx context.Context, request *dto.MessageRequest) (*dto.MessageResponse, error) {
	if len(request.Messages) == 0 {
		return nil, serverutils.NewValidationError("messages must not be empty")
	}

	user, err := s.resolver.GetUser(ctx, request.AccessToken)
	if err != nil {
		return nil, err
	}

	project, err := s.resolver.GetOrCreateProject(ctx, request.ProjectName)
	if err != nil {
		return nil, err
	}

	discussion, err := s.resolver.GetOrCreateDiscussion(ctx, user, project)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages := uow.MessageRepository()

	// Best effort: a failed user-message write must not block the answer.
	lastMessage := request.Messages[len(request.Messages)-1]
	userMessage := &entity.Message{
		Id:           uuid.New(),
		DiscussionId: discussion.Id,
		Role:         entity.MessageRoleUser,
		Content:      lastMessage.Content,
		Date:         time.Now(),
	}
	if err := messages.Create(ctx, userMessage); err != nil {
		s.logger.Warn("assistant", "failed to persist user message", map[string]interface{}{
			"discussion_id": discussion.Id.String(),
			"error":         err.Error(),
		})
	}

	reply, err := s.llmProvider.Chat(ctx, s.buildPrompt(request), llm.WithTools(constant.AssistantTools()))
	if err != nil {
		return nil, wrapLLMError(err)
	}

	if reply.Kind == llm.ReplyKindText && reply.Content == "" {
		return nil, serverutils.NewMalformedUpstreamError("assistant returned no content")
	}

	assistantMessage := &entity.Message{
		Id:           uuid.New(),
		DiscussionId: discussion.Id,
		Role:         entity.MessageRoleAssistant,
		Content:      reply.Content,
		Date:         time.Now(),
	}
	responseDTO := dto.MessageDTO{
		Role:    entity.MessageRoleAssistant,
		Content: reply.Content,
	}
	if reply.Kind == llm.ReplyKindTools {
		raw, err := json.Marshal(reply.ToolCalls)
		if err != nil {
			return nil, fmt.Errorf("marshal tool calls: %w", err)
		}
		assistantMessage.ToolCalls = raw
		responseDTO.ToolCalls = reply.ToolCalls
	}

	if err := messages.Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	return &dto.MessageResponse{
		Content:   responseDTO,
		MessageId: assistantMessage.Id,
	}, nil
}

// buildPrompt prepends the default instruction message to the request's
// history. Optional project/user context is appended into that same
// instruction message rather than sent as separate turns.
func (s *assistantService) buildPrompt(request *dto.MessageRequest) []llm.Message {
	instruction := constant.DefaultInstructionMessage
	if request.ProjectContext != "" {
		instruction += "\n" + request.ProjectContext
	}
	if request.UserContext != "" {
		instruction += "\n" + request.UserContext
	}

	prompt := make([]llm.Message, 0, len(request.Messages)+1)
	prompt = append(prompt, llm.Message{Role: entity.MessageRoleSystem, Content: instruction})
	for _, m := range request.Messages {
		prompt = append(prompt, llm.Message{Role: m.Role, Content: m.Content})
	}
	return prompt
}

// Summarize compresses a project's full message history into a reviewable
// question/answer digest. Only project leads may request it.
func (s *assistantService) Summarize(ctx context.Context, projectName, accessToken string) ([]*dto.SummaryEntry, error) {
	user, err := s.resolver.GetUser(ctx, accessToken)
	if err != nil {
		var appErr *serverutils.AppError
		if errors.As(err, &appErr) && appErr.Type == serverutils.TypeNotFound {
			return nil, serverutils.NewAuthorizationError("requester is not a known user")
		}
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByProjectName{Name: projectName})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, serverutils.NewNotFoundError(fmt.Sprintf("no project found with name %q", projectName))
	}
	if !project.HasLead(user.Id) {
		return nil, serverutils.NewAuthorizationError("requester is not a project lead")
	}

	history, err := s.collectProjectHistory(ctx, uow, project)
	if err != nil {
		return nil, err
	}

	serialized, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("serialize history: %w", err)
	}

	prompt := []llm.Message{
		{Role: entity.MessageRoleSystem, Content: constant.SummarizeInstructionMessage(projectName)},
		{Role: entity.MessageRoleUser, Content: string(serialized)},
	}

	reply, err := s.llmProvider.Chat(ctx, prompt)
	if err != nil {
		return nil, wrapLLMError(err)
	}
	if reply.Kind != llm.ReplyKindText {
		return nil, serverutils.NewMalformedUpstreamError("summarization returned tool calls instead of content")
	}

	entries, err := parseSummaryReply(reply.Content)
	if err != nil {
		return nil, serverutils.NewMalformedUpstreamError(err.Error())
	}
	return entries, nil
}

// GenerateReadme rewrites a project README around the summarized digest. The
// same lead-only gate as Summarize applies; with UseConflictMarkers set the
// rewrite is returned as a reviewable merge instead of a flat replacement.
func (s *assistantService) GenerateReadme(ctx context.Context, projectName, accessToken string, request *dto.GenerateReadmeRequest) (*dto.GenerateReadmeResponse, error) {
	entries, err := s.Summarize(ctx, projectName, accessToken)
	if err != nil {
		return nil, err
	}

	instruction := constant.GenerateReadMEInstructionMessage
	if request.UseConflictMarkers {
		instruction = constant.GenerateReadMEUsingConflictsInstructionMessage
	}

	prompt := make([]llm.Message, 0, len(entries)+2)
	prompt = append(prompt, llm.Message{Role: entity.MessageRoleSystem, Content: instruction})
	prompt = append(prompt, llm.Message{Role: entity.MessageRoleUser, Content: request.Readme})
	for _, entry := range entries {
		role := entry.Role
		if role == "" {
			role = entity.MessageRoleUser
		}
		prompt = append(prompt, llm.Message{Role: role, Content: entry.Content})
	}

	reply, err := s.llmProvider.Chat(ctx, prompt)
	if err != nil {
		return nil, wrapLLMError(err)
	}
	if reply.Kind != llm.ReplyKindText || reply.Content == "" {
		return nil, serverutils.NewMalformedUpstreamError("readme generation returned no content")
	}

	return &dto.GenerateReadmeResponse{Content: reply.Content}, nil
}

// collectProjectHistory gathers every message reachable from the project's
// discussions, chronological within each discussion.
func (s *assistantService) collectProjectHistory(ctx context.Context, uow unitofwork.UnitOfWork, project *entity.Project) ([]dto.SummaryEntry, error) {
	discussions, err := uow.DiscussionRepository().FindAll(ctx, specification.ByProjectID{ProjectID: project.Id})
	if err != nil {
		return nil, err
	}

	history := make([]dto.SummaryEntry, 0)
	for _, discussion := range discussions {
		messages, err := uow.MessageRepository().FindAll(ctx,
			specification.ByDiscussionID{DiscussionID: discussion.Id},
			specification.OrderBy{Field: "date", Desc: false},
		)
		if err != nil {
			return nil, err
		}
		for _, m := range messages {
			history = append(history, dto.SummaryEntry{Role: m.Role, Content: m.Content})
		}
	}
	return history, nil
}

// parseSummaryReply strips markdown code fences and decodes the model output
// as an array of objects each carrying a content field. Pairing and role
// alternation are not enforced.
func parseSummaryReply(content string) ([]*dto.SummaryEntry, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		if idx := strings.Index(trimmed, "\n"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		} else {
			trimmed = strings.TrimPrefix(trimmed, "```")
		}
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	// json.Unmarshal accepts a literal null into a slice, so the array
	// shape has to be checked up front.
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("summarization output is not a JSON array of objects")
	}

	var rawEntries []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &rawEntries); err != nil {
		return nil, fmt.Errorf("summarization output is not a JSON array of objects: %v", err)
	}

	entries := make([]*dto.SummaryEntry, 0, len(rawEntries))
	for i, raw := range rawEntries {
		rawContent, ok := raw["content"]
		if !ok {
			return nil, fmt.Errorf("summarization entry %d is missing a content field", i)
		}
		entry := &dto.SummaryEntry{}
		if err := json.Unmarshal(rawContent, &entry.Content); err != nil {
			return nil, fmt.Errorf("summarization entry %d has a non-string content field", i)
		}
		if rawRole, ok := raw["role"]; ok {
			_ = json.Unmarshal(rawRole, &entry.Role)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// wrapLLMError converts provider failures into the upstream error kind,
// keeping the upstream status code where the provider exposed one.
func wrapLLMError(err error) error {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return serverutils.NewUpstreamError(apiErr.StatusCode, apiErr.Message)
	}
	return serverutils.NewUpstreamError(0, err.Error())
}
