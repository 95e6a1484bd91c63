package bootstrap

import (
	"context"
	"log"

	"ide-assistant-be/internal/config"
	"ide-assistant-be/internal/controller"
	"ide-assistant-be/internal/pkg/logger"
	"ide-assistant-be/internal/repository/memory"
	"ide-assistant-be/internal/repository/unitofwork"
	"ide-assistant-be/internal/service"
	"ide-assistant-be/pkg/github"
	"ide-assistant-be/pkg/llm/factory"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	OAuthController     controller.IOAuthController
	DatabaseController  controller.IDatabaseController
	GithubController    controller.IGithubController

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	githubClient := github.NewClient(cfg.Github.ClientID, cfg.Github.ClientSecret)

	llmBaseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	tokenCache := newTokenCache(cfg.App.RedisURL)

	// 3. Services
	resolverService := service.NewResolverService(uowFactory, githubClient, tokenCache)
	assistantService := service.NewAssistantService(uowFactory, resolverService, llmProvider, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, githubClient, tokenCache)
	databaseService := service.NewDatabaseService(uowFactory, resolverService)
	githubService := service.NewGithubService(githubClient)

	// 4. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		OAuthController:     controller.NewOAuthController(oauthService),
		DatabaseController:  controller.NewDatabaseController(databaseService),
		GithubController:    controller.NewGithubController(githubService),
		Logger:              sysLogger,
	}
}

// newTokenCache prefers Redis when configured and reachable, the in-process
// cache otherwise. Both enforce the same TTL.
func newTokenCache(redisURL string) memory.TokenCache {
	if redisURL == "" {
		return memory.NewInMemoryTokenCache()
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using in-memory token cache", err)
		return memory.NewInMemoryTokenCache()
	}

	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory token cache", err)
		return memory.NewInMemoryTokenCache()
	}
	return memory.NewRedisTokenCache(rdb)
}
