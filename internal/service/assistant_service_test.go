package service

import (
	"context"
	"testing"
	"time"

	"ide-assistant-be/internal/dto"
	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/pkg/serverutils"
	"ide-assistant-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type assistantFixture struct {
	store     *fakeStore
	oauth     *stubOAuthClient
	provider  *stubLLMProvider
	assistant IAssistantService
}

func newAssistantFixture() *assistantFixture {
	store := newFakeStore()
	oauth := &stubOAuthClient{tokens: map[string]string{"tok-alice": "alice"}}
	provider := &stubLLMProvider{reply: llm.NewTextReply("hello from the assistant")}
	resolver := NewResolverService(store, oauth, newStubTokenCache())
	return &assistantFixture{
		store:     store,
		oauth:     oauth,
		provider:  provider,
		assistant: NewAssistantService(store, resolver, provider, nopLogger{}),
	}
}

func (f *assistantFixture) registerUser(login string) *entity.User {
	user := &entity.User{Id: uuid.New(), Login: login, Role: entity.UserRoleUser, CreatedAt: time.Now()}
	f.store.users[user.Id] = user
	return user
}

func chatRequest(content string) *dto.MessageRequest {
	return &dto.MessageRequest{
		Messages:    []dto.MessageDTO{{Role: "user", Content: content}},
		AccessToken: "tok-alice",
		ProjectName: "acme",
	}
}

func TestAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("stores both sides of the turn and returns the reply", func(t *testing.T) {
		f := newAssistantFixture()
		f.registerUser("alice")

		res, err := f.assistant.Answer(ctx, chatRequest("how do I run the tests?"))
		require.NoError(t, err)
		assert.Equal(t, "assistant", res.Content.Role)
		assert.Equal(t, "hello from the assistant", res.Content.Content)
		assert.NotEqual(t, uuid.Nil, res.MessageId)

		// One project, one discussion, two messages in order.
		assert.Len(t, f.store.projects, 1)
		assert.Len(t, f.store.discussions, 1)
		require.Len(t, f.store.messageSeq, 2)
		first := f.store.messages[f.store.messageSeq[0]]
		second := f.store.messages[f.store.messageSeq[1]]
		assert.Equal(t, "user", first.Role)
		assert.Equal(t, "how do I run the tests?", first.Content)
		assert.Equal(t, "assistant", second.Role)
		assert.Equal(t, res.MessageId, second.Id)
	})

	t.Run("reuses the discussion on a second turn", func(t *testing.T) {
		f := newAssistantFixture()
		f.registerUser("alice")

		_, err := f.assistant.Answer(ctx, chatRequest("first question"))
		require.NoError(t, err)
		_, err = f.assistant.Answer(ctx, chatRequest("second question"))
		require.NoError(t, err)

		assert.Len(t, f.store.projects, 1)
		assert.Len(t, f.store.discussions, 1)
		assert.Len(t, f.store.messageSeq, 4)
	})

	t.Run("prepends the instruction message and context blocks", func(t *testing.T) {
		f := newAssistantFixture()
		f.registerUser("alice")

		req := chatRequest("question")
		req.ProjectContext = "repo layout: monorepo"
		req.UserContext = "prefers short answers"
		_, err := f.assistant.Answer(ctx, req)
		require.NoError(t, err)

		require.Len(t, f.provider.prompts, 1)
		prompt := f.provider.prompts[0]
		require.Len(t, prompt, 2)
		assert.Equal(t, "system", prompt[0].Role)
		assert.Contains(t, prompt[0].Content, "repo layout: monorepo")
		assert.Contains(t, prompt[0].Content, "prefers short answers")
		assert.Equal(t, "question", prompt[1].Content)
	})

	t.Run("unknown token surfaces as not found and skips the model", func(t *testing.T) {
		f := newAssistantFixture()
		// no user registered

		_, err := f.assistant.Answer(ctx, chatRequest("question"))
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.TypeNotFound, appErr.Type)
		assert.Empty(t, f.provider.prompts)
		assert.Empty(t, f.store.messageSeq)
	})

	t.Run("provider failure maps to upstream error, user message kept", func(t *testing.T) {
		f := newAssistantFixture()
		f.registerUser("alice")
		f.provider.err = &llm.APIError{StatusCode: 429, Message: "rate limited"}

		_, err := f.assistant.Answer(ctx, chatRequest("question"))
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.TypeUpstream, appErr.Type)
		assert.Equal(t, 429, appErr.StatusCode)

		// The inbound user message stays; no assistant message is stored.
		require.Len(t, f.store.messageSeq, 1)
		assert.Equal(t, "user", f.store.messages[f.store.messageSeq[0]].Role)
	})

	t.Run("empty model content is a malformed upstream response", func(t *testing.T) {
		f := newAssistantFixture()
		f.registerUser("alice")
		f.provider.reply = &llm.Reply{Kind: llm.ReplyKindText}

		_, err := f.assistant.Answer(ctx, chatRequest("question"))
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.TypeMalformedUpstream, appErr.Type)
		assert.Len(t, f.store.messageSeq, 1)
	})

	t.Run("tool calls are returned verbatim and persisted", func(t *testing.T) {
		f := newAssistantFixture()
		f.registerUser("alice")
		f.provider.reply = llm.NewToolReply([]llm.ToolCall{
			{Id: "call_1", Name: "openFile", Arguments: `{"path":"main.go"}`},
		})

		res, err := f.assistant.Answer(ctx, chatRequest("open the entrypoint"))
		require.NoError(t, err)
		require.Len(t, res.Content.ToolCalls, 1)
		assert.Equal(t, "openFile", res.Content.ToolCalls[0].Name)
		assert.Equal(t, `{"path":"main.go"}`, res.Content.ToolCalls[0].Arguments)

		stored := f.store.messages[res.MessageId]
		require.NotNil(t, stored)
		assert.JSONEq(t, `[{"id":"call_1","name":"openFile","arguments":"{\"path\":\"main.go\"}"}]`, string(stored.ToolCalls))
	})

	t.Run("failed user-message write does not block the answer", func(t *testing.T) {
		f := newAssistantFixture()
		f.registerUser("alice")
		f.store.failMessageCreate = true

		// The assistant write also fails here, which does propagate.
		_, err := f.assistant.Answer(ctx, chatRequest("question"))
		assert.Error(t, err)
		// But the model was still consulted after the failed user write.
		assert.Len(t, f.provider.prompts, 1)
	})
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()

	seed := func(f *assistantFixture) (*entity.User, *entity.Project) {
		lead := f.registerUser("alice")
		project := &entity.Project{
			Id:           uuid.New(),
			Name:         "acme",
			ProjectLeads: []uuid.UUID{lead.Id},
			CreatedAt:    time.Now(),
		}
		f.store.projects[project.Id] = project

		discussion := &entity.Discussion{Id: uuid.New(), UserId: lead.Id, ProjectId: project.Id}
		f.store.discussions[discussion.Id] = discussion
		for i, content := range []string{"how do I deploy?", "use the release script"} {
			role := entity.MessageRoleUser
			if i%2 == 1 {
				role = entity.MessageRoleAssistant
			}
			m := &entity.Message{
				Id:           uuid.New(),
				DiscussionId: discussion.Id,
				Role:         role,
				Content:      content,
				Date:         time.Now().Add(time.Duration(i) * time.Second),
			}
			f.store.messages[m.Id] = m
			f.store.messageSeq = append(f.store.messageSeq, m.Id)
		}
		return lead, project
	}

	t.Run("returns the parsed digest for a project lead", func(t *testing.T) {
		f := newAssistantFixture()
		seed(f)
		f.provider.reply = llm.NewTextReply(`[{"role":"user","content":"How to deploy?"},{"role":"assistant","content":"Release script."}]`)

		entries, err := f.assistant.Summarize(ctx, "acme", "tok-alice")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "How to deploy?", entries[0].Content)
		assert.Equal(t, "assistant", entries[1].Role)

		// The model saw the serialized history, not the raw rows.
		require.Len(t, f.provider.prompts, 1)
		assert.Contains(t, f.provider.prompts[0][1].Content, "use the release script")
	})

	t.Run("tolerates markdown code fences around the JSON", func(t *testing.T) {
		f := newAssistantFixture()
		seed(f)
		f.provider.reply = llm.NewTextReply("```json\n[{\"role\":\"user\",\"content\":\"Q\"}]\n```")

		entries, err := f.assistant.Summarize(ctx, "acme", "tok-alice")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Q", entries[0].Content)
	})

	t.Run("non-lead requester is rejected before the model is called", func(t *testing.T) {
		f := newAssistantFixture()
		_, project := seed(f)
		project.ProjectLeads = nil

		_, err := f.assistant.Summarize(ctx, "acme", "tok-alice")
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.TypeAuthorization, appErr.Type)
		assert.Empty(t, f.provider.prompts)
	})

	t.Run("unknown token is an authorization failure", func(t *testing.T) {
		f := newAssistantFixture()
		// token resolves to a login but no user row exists
		_, err := f.assistant.Summarize(ctx, "acme", "tok-alice")
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.TypeAuthorization, appErr.Type)
	})

	t.Run("unknown project is not found", func(t *testing.T) {
		f := newAssistantFixture()
		f.registerUser("alice")

		_, err := f.assistant.Summarize(ctx, "ghost", "tok-alice")
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.TypeNotFound, appErr.Type)
	})

	t.Run("unparseable model output is a malformed upstream response", func(t *testing.T) {
		f := newAssistantFixture()
		seed(f)
		f.provider.reply = llm.NewTextReply("here is your summary: everything is fine")

		_, err := f.assistant.Summarize(ctx, "acme", "tok-alice")
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.TypeMalformedUpstream, appErr.Type)
	})

	t.Run("valid JSON that is not an array is a malformed upstream response", func(t *testing.T) {
		for _, payload := range []string{"null", `{"content":"hi"}`, `"digest"`} {
			f := newAssistantFixture()
			seed(f)
			f.provider.reply = llm.NewTextReply(payload)

			_, err := f.assistant.Summarize(ctx, "acme", "tok-alice")
			var appErr *serverutils.AppError
			require.ErrorAs(t, err, &appErr, "payload %q", payload)
			assert.Equal(t, serverutils.TypeMalformedUpstream, appErr.Type)
		}
	})

	t.Run("entries without a content key are rejected", func(t *testing.T) {
		f := newAssistantFixture()
		seed(f)
		f.provider.reply = llm.NewTextReply(`[{"role":"user"}]`)

		_, err := f.assistant.Summarize(ctx, "acme", "tok-alice")
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.TypeMalformedUpstream, appErr.Type)
	})

	t.Run("readme rewrite feeds the digest and old readme to the model", func(t *testing.T) {
		f := newAssistantFixture()
		seed(f)

		// The stub replays one reply for both calls; valid digest JSON also
		// serves as the rewrite output.
		f.provider.reply = llm.NewTextReply(`[{"role":"user","content":"How to deploy?"}]`)

		res, err := f.assistant.GenerateReadme(ctx, "acme", "tok-alice", &dto.GenerateReadmeRequest{Readme: "# Old README"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Content)

		require.Len(t, f.provider.prompts, 2)
		rewrite := f.provider.prompts[1]
		assert.Contains(t, rewrite[0].Content, "generate a new README")
		assert.Equal(t, "# Old README", rewrite[1].Content)
		assert.Equal(t, "How to deploy?", rewrite[2].Content)
	})

	t.Run("readme rewrite with conflict markers picks the merge prompt", func(t *testing.T) {
		f := newAssistantFixture()
		seed(f)
		f.provider.reply = llm.NewTextReply(`[{"role":"user","content":"Q"}]`)

		_, err := f.assistant.GenerateReadme(ctx, "acme", "tok-alice", &dto.GenerateReadmeRequest{
			Readme:             "# Old README",
			UseConflictMarkers: true,
		})
		require.NoError(t, err)
		require.Len(t, f.provider.prompts, 2)
		assert.Contains(t, f.provider.prompts[1][0].Content, "conflict markers")
	})

	t.Run("readme rewrite is lead-only", func(t *testing.T) {
		f := newAssistantFixture()
		_, project := seed(f)
		project.ProjectLeads = nil

		_, err := f.assistant.GenerateReadme(ctx, "acme", "tok-alice", &dto.GenerateReadmeRequest{Readme: "# Old README"})
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, serverutils.TypeAuthorization, appErr.Type)
	})
}
