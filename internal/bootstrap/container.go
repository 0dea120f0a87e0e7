package bootstrap

import (
	"context"
	"log"

	"ai-learning-be/internal/config"
	"ai-learning-be/internal/controller"
	"ai-learning-be/internal/handler"
	"ai-learning-be/internal/pkg/logger"
	"ai-learning-be/internal/pkg/mailer"
	"ai-learning-be/internal/repository/implementation"
	"ai-learning-be/internal/repository/memory"
	"ai-learning-be/internal/repository/unitofwork"
	"ai-learning-be/internal/service"
	"ai-learning-be/internal/websocket"

	pktNats "ai-learning-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	ProgressController controller.IProgressController
	CourseController   controller.ICourseController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
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
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	catalogCache := memory.NewCatalogCache()

	publisherService := service.NewPublisherService(cfg.Topics.CourseCompleted, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.CourseCompleted,
		uowFactory,
		emailService,
		natsPub,
	)

	chatService := service.NewChatService(uowFactory, catalogCache, natsPub, sysLogger)
	progressService := service.NewProgressService(uowFactory, catalogCache, publisherService, natsPub, sysLogger)
	courseService := service.NewCourseService(uowFactory, catalogCache)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		ChatController:      controller.NewChatController(chatService),
		ProgressController:  controller.NewProgressController(progressService),
		CourseController:    controller.NewCourseController(courseService),

		ConsumerService: consumerService,
	}
}
