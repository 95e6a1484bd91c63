package service

import (
	"context"
	"sort"
	"sync"

	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/repository/contract"
	"ide-assistant-be/internal/repository/specification"
	"ide-assistant-be/internal/repository/unitofwork"
	"ide-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

// fakeStore is a process-local stand-in for the persistence layer. The
// repositories it hands out interpret the same specification types the gorm
// implementations do.
type fakeStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*entity.User
	projects    map[uuid.UUID]*entity.Project
	discussions map[uuid.UUID]*entity.Discussion
	messages    map[uuid.UUID]*entity.Message
	messageSeq  []uuid.UUID

	failMessageCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uuid.UUID]*entity.User),
		projects:    make(map[uuid.UUID]*entity.Project),
		discussions: make(map[uuid.UUID]*entity.Discussion),
		messages:    make(map[uuid.UUID]*entity.Message),
	}
}

func (s *fakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: s}
}

type fakeUnitOfWork struct {
	store *fakeStore
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepository{store: u.store}
}

func (u *fakeUnitOfWork) ProjectRepository() contract.ProjectRepository {
	return &fakeProjectRepository{store: u.store}
}

func (u *fakeUnitOfWork) DiscussionRepository() contract.DiscussionRepository {
	return &fakeDiscussionRepository{store: u.store}
}

func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository {
	return &fakeMessageRepository{store: u.store}
}

type fakeUserRepository struct{ store *fakeStore }

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *user
	r.store.users[user.Id] = &copied
	return nil
}

func (r *fakeUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if u, ok := r.store.users[id]; ok {
		u.Role = role
	}
	return nil
}

func (r *fakeUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.users, id)
	return nil
}

func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeUserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.User, 0)
	for _, u := range r.store.users {
		if userMatches(u, specs) {
			copied := *u
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeUserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByLogin:
			if u.Login != s.Login {
				return false
			}
		}
	}
	return true
}

type fakeProjectRepository struct{ store *fakeStore }

func (r *fakeProjectRepository) CreateIfAbsent(ctx context.Context, project *entity.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.projects {
		if existing.Name == project.Name {
			return nil
		}
	}
	copied := *project
	r.store.projects[project.Id] = &copied
	return nil
}

func (r *fakeProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.projects, id)
	return nil
}

func (r *fakeProjectRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeProjectRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.Project, 0)
	for _, p := range r.store.projects {
		if projectMatches(p, specs) {
			copied := *p
			copied.ProjectLeads = append([]uuid.UUID(nil), p.ProjectLeads...)
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeProjectRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeProjectRepository) AddLead(ctx context.Context, projectId, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.projects[projectId]
	if !ok {
		return nil
	}
	for _, lead := range p.ProjectLeads {
		if lead == userId {
			return nil
		}
	}
	p.ProjectLeads = append(p.ProjectLeads, userId)
	return nil
}

func (r *fakeProjectRepository) RemoveLead(ctx context.Context, projectId, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.projects[projectId]
	if !ok {
		return nil
	}
	kept := p.ProjectLeads[:0]
	for _, lead := range p.ProjectLeads {
		if lead != userId {
			kept = append(kept, lead)
		}
	}
	p.ProjectLeads = kept
	return nil
}

func projectMatches(p *entity.Project, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.ByProjectName:
			if p.Name != s.Name {
				return false
			}
		}
	}
	return true
}

type fakeDiscussionRepository struct{ store *fakeStore }

func (r *fakeDiscussionRepository) CreateIfAbsent(ctx context.Context, discussion *entity.Discussion) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.discussions {
		if existing.UserId == discussion.UserId && existing.ProjectId == discussion.ProjectId {
			return nil
		}
	}
	copied := *discussion
	r.store.discussions[discussion.Id] = &copied
	return nil
}

func (r *fakeDiscussionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.discussions, id)
	return nil
}

func (r *fakeDiscussionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Discussion, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeDiscussionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Discussion, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.Discussion, 0)
	for _, d := range r.store.discussions {
		if discussionMatches(d, specs) {
			copied := *d
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeDiscussionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func discussionMatches(d *entity.Discussion, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if d.Id != s.ID {
				return false
			}
		case specification.ByProjectID:
			if d.ProjectId != s.ProjectID {
				return false
			}
		case specification.ByUserAndProject:
			if d.UserId != s.UserID || d.ProjectId != s.ProjectID {
				return false
			}
		}
	}
	return true
}

type fakeMessageRepository struct{ store *fakeStore }

func (r *fakeMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failMessageCreate {
		return errStoreUnavailable
	}
	copied := *message
	r.store.messages[message.Id] = &copied
	r.store.messageSeq = append(r.store.messageSeq, message.Id)
	return nil
}

func (r *fakeMessageRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating *int, feedback *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if m, ok := r.store.messages[id]; ok {
		m.Rating = rating
		m.Feedback = feedback
	}
	return nil
}

func (r *fakeMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.messages, id)
	return nil
}

func (r *fakeMessageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.Message, 0)
	for _, id := range r.store.messageSeq {
		m := r.store.messages[id]
		if m == nil {
			continue
		}
		if messageMatches(m, specs) {
			copied := *m
			result = append(result, &copied)
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "date" {
			sort.SliceStable(result, func(i, j int) bool {
				if s.Desc {
					return result[i].Date.After(result[j].Date)
				}
				return result[i].Date.Before(result[j].Date)
			})
		}
	}
	return result, nil
}

func (r *fakeMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func messageMatches(m *entity.Message, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if m.Id != s.ID {
				return false
			}
		case specification.ByDiscussionID:
			if m.DiscussionId != s.DiscussionID {
				return false
			}
		}
	}
	return true
}

// stubOAuthClient resolves tokens from a fixed table.
type stubOAuthClient struct {
	tokens    map[string]string // access token -> login
	exchanges map[string]string // code -> access token
	loginErr  error
}

func (c *stubOAuthClient) GetAccessToken(ctx context.Context, code string) (string, error) {
	if token, ok := c.exchanges[code]; ok {
		return token, nil
	}
	return "", errStoreUnavailable
}

func (c *stubOAuthClient) GetUserLogin(ctx context.Context, accessToken string) (string, error) {
	if c.loginErr != nil {
		return "", c.loginErr
	}
	if login, ok := c.tokens[accessToken]; ok {
		return login, nil
	}
	return "", errStoreUnavailable
}

// stubTokenCache is a plain map; TTL behavior is covered by the memory
// package's own tests.
type stubTokenCache struct {
	mu     sync.Mutex
	logins map[string]string
}

func newStubTokenCache() *stubTokenCache {
	return &stubTokenCache{logins: make(map[string]string)}
}

func (c *stubTokenCache) Get(ctx context.Context, accessToken string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	login, ok := c.logins[accessToken]
	return login, ok
}

func (c *stubTokenCache) Save(ctx context.Context, accessToken, login string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logins[accessToken] = login
}

func (c *stubTokenCache) Delete(ctx context.Context, accessToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.logins, accessToken)
}

// stubLLMProvider replays canned replies and records the prompts it saw.
type stubLLMProvider struct {
	mu      sync.Mutex
	reply   *llm.Reply
	err     error
	prompts [][]llm.Message
	options []llm.Option
}

func (p *stubLLMProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Reply, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	copied := append([]llm.Message(nil), messages...)
	p.prompts = append(p.prompts, copied)
	p.options = opts
	if p.err != nil {
		return nil, p.err
	}
	return p.reply, nil
}

func (p *stubLLMProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Reply, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

var errStoreUnavailable = &storeError{"store unavailable"}

type storeError struct{ msg string }

func (e *storeError) Error() string { return e.msg }
