package bootstrap

import (
	"context"
	"log"
	"time"

	"email-responder-be/internal/config"
	"email-responder-be/internal/controller"
	"email-responder-be/internal/handler"
	"email-responder-be/internal/pkg/logger"
	"email-responder-be/internal/repository/memory"
	"email-responder-be/internal/repository/unitofwork"
	"email-responder-be/internal/service"
	"email-responder-be/internal/websocket"
	"email-responder-be/pkg/draftstore"
	"email-responder-be/pkg/embedding"
	"email-responder-be/pkg/generation"
	"email-responder-be/pkg/generation/llmgen"
	"email-responder-be/pkg/generation/raggen"
	"email-responder-be/pkg/generation/template"
	"email-responder-be/pkg/llm"
	"email-responder-be/pkg/llm/factory"

	pktNats "email-responder-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	TriageController    controller.ITriageController
	DraftController     controller.IDraftController
	KnowledgeController controller.IKnowledgeController
	ApprovalController  controller.IApprovalController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Approval Chat
	ApprovalHandler *handler.ApprovalHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config. The pipeline degrades to
	// templates when no LLM is available, so a nil provider is fine.
	var llmProvider llm.LLMProvider
	if cfg.Ai.LLMEnabled {
		var err error
		llmProvider, err = factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.HuggingFaceAPIKey,
		)
		if err != nil {
			log.Printf("[WARN] Failed to initialize LLM Provider: %v. Falling back to templates", err)
			llmProvider = nil
		} else {
			log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
		}
	} else {
		log.Printf("[INFO] LLM disabled, drafting with templates only")
	}

	// Initialize In-Memory Session Storage for approval conversations
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Responder.SessionTTLMinute) * time.Minute)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/approval.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Draft queue
	draftStore := draftstore.NewStore(cfg.Responder.DraftStorePath)

	// 4. Generation chain: grounded first, plain LLM next, templates as
	// the authoritative floor.
	snippetRetriever := service.NewSnippetRetriever(uowFactory, embeddingProvider)
	llmStrategy := llmgen.NewStrategy(llmProvider, cfg.Responder.UserName)
	orchestrator := generation.NewOrchestrator(
		[]generation.StrategyEntry{
			{Strategy: raggen.NewStrategy(snippetRetriever, llmStrategy, cfg.Responder.SnippetLimit), AcceptThreshold: cfg.Responder.RAGThreshold},
			{Strategy: llmStrategy, AcceptThreshold: cfg.Responder.LLMThreshold},
			{Strategy: template.NewStrategy(cfg.Responder.UserName)},
		},
		cfg.Responder.UserName,
		sysLogger,
	)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Responder.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Responder.EmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	triageService := service.NewTriageService(orchestrator, draftStore, natsPub, sysLogger)
	draftService := service.NewDraftService(draftStore, natsPub)
	knowledgeService := service.NewKnowledgeService(uowFactory, publisherService)
	approvalService := service.NewApprovalService(sessionRepo, draftStore, natsPub, sysLogger)

	// Approval chat surface + event bridge
	approvalHandler := handler.NewApprovalHandler(approvalService, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		approvalHandler.StartEventBridge()
	}

	// 6. Controllers
	return &Container{
		ApprovalHandler: approvalHandler,
		WebSocketHub:    wsHub,

		TriageController:    controller.NewTriageController(triageService),
		DraftController:     controller.NewDraftController(draftService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		ApprovalController:  controller.NewApprovalController(approvalService),

		ConsumerService: consumerService,
	}
}
