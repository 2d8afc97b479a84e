package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-chat-be/internal/config"
	"ai-chat-be/internal/controller"
	"ai-chat-be/internal/pkg/limiter"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/implementation"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/internal/service"
	"ai-chat-be/internal/websocket"
	genaiFactory "ai-chat-be/pkg/genai/factory"
	pktNats "ai-chat-be/pkg/nats"
	"ai-chat-be/pkg/sentiment"
	"ai-chat-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	MediaController     controller.IMediaController
	SentimentController controller.ISentimentController
	PubSubController    controller.IPubSubController

	// Realtime chat
	ChatWSHandler *websocket.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
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

	// 2.5 Infrastructure
	// NATS (optional)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// Redis (optional, presence + rate limits fall back to memory without it)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// Presence store and rate limiters
	var presenceRepo contract.PresenceRepository
	var chatLimiter limiter.Limiter
	var nlpLimiter limiter.Limiter
	chatWindow := time.Duration(cfg.Limiter.ChatWindowHrs) * time.Hour
	nlpWindow := time.Duration(cfg.Limiter.NlpWindowHrs) * time.Hour
	if rdb != nil {
		presenceRepo = implementation.NewRedisPresenceRepository(rdb)
		chatLimiter = limiter.NewRedisLimiter(rdb, "ratelimit:chat", int64(cfg.Limiter.ChatLimit), chatWindow)
		nlpLimiter = limiter.NewRedisLimiter(rdb, "ratelimit:nlp", int64(cfg.Limiter.NlpLimit), nlpWindow)
	} else {
		presenceRepo = memory.NewPresenceRepository()
		chatLimiter = limiter.NewMemoryLimiter(int64(cfg.Limiter.ChatLimit), chatWindow)
		nlpLimiter = limiter.NewMemoryLimiter(int64(cfg.Limiter.NlpLimit), nlpWindow)
	}

	// Generation client
	genClient, err := genaiFactory.NewClient(
		cfg.Ai.Provider,
		cfg.Ai.OpenAIKey,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.OpenAIModel,
		cfg.Ai.GeminiKey,
		cfg.Ai.GeminiModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize generation client: %v", err)
	}
	log.Printf("[INFO] Using chat provider: %s", cfg.Ai.Provider)

	// Media storage
	store, err := storage.NewStorage(context.Background(), storage.Config{
		Backend:        cfg.Storage.Backend,
		LocalMediaPath: cfg.Storage.LocalMediaPath,
		LocalPublicURL: cfg.Storage.LocalPublicURL,
		S3: storage.S3Config{
			Endpoint:        cfg.Storage.S3Endpoint,
			Region:          cfg.Storage.S3Region,
			Bucket:          cfg.Storage.S3Bucket,
			AccessKeyID:     cfg.Storage.S3AccessKeyID,
			SecretAccessKey: cfg.Storage.S3SecretAccessKey,
			UsePathStyle:    cfg.Storage.S3UsePathStyle,
			PublicURL:       cfg.Storage.S3PublicURL,
		},
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize media storage: %v", err)
	}

	// Sentiment model client
	sentimentClient := sentiment.NewClient(cfg.Sentiment.ModelServerURL)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.SentimentTopic, pubSub)
	sentimentService := service.NewSentimentService(uowFactory, sentimentClient, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.SentimentTopic,
		sentimentService,
		sysLogger,
	)

	chatService := service.NewChatService(uowFactory, genClient, natsPub, sysLogger)
	mediaService := service.NewMediaService(uowFactory, store, sysLogger)

	// Realtime chat handler with its own log file
	wsLogger := logger.NewIsolatedLogger("logs/chat_ws.log")
	wsHandler := websocket.NewHandler(chatService, uowFactory, presenceRepo, chatLimiter, wsLogger)

	// 4. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		MediaController:     controller.NewMediaController(mediaService),
		SentimentController: controller.NewSentimentController(sentimentService, nlpLimiter),
		PubSubController:    controller.NewPubSubController(publisherService),

		ChatWSHandler: wsHandler,

		ConsumerService: consumerService,
	}
}
