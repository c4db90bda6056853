package bootstrap

import (
	"context"
	"log"
	"time"

	"facelog-be/internal/cache"
	"facelog-be/internal/config"
	"facelog-be/internal/controller"
	"facelog-be/internal/handler"
	"facelog-be/internal/pkg/facedetect"
	"facelog-be/internal/pkg/facematch"
	"facelog-be/internal/pkg/logger"
	"facelog-be/internal/pkg/mailer"
	"facelog-be/internal/repository/unitofwork"
	"facelog-be/internal/service"
	"facelog-be/internal/websocket"
	"facelog-be/pkg/events"

	pktNats "facelog-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	FichaController       controller.IFichaController
	SessionController     controller.ISessionController
	RecognitionController controller.IRecognitionController
	EnrollmentController  controller.IEnrollmentController
	SettingsController    controller.ISettingsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	LiveFeedHandler *handler.LiveFeedHandler
	WebSocketHub    *websocket.Hub
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
	wsLogger := logger.NewIsolatedLogger("logs/livefeed.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Recognition Infrastructure
	faceProvider := facedetect.NewHTTPProvider(cfg.Recognition.FaceServiceURL)

	encodingLoader := &fichaEncodingLoader{uowFactory: uowFactory}
	encodingCache := cache.NewFichaEncodingCache(
		encodingLoader,
		time.Duration(cfg.Recognition.EncodingCacheTTLMinutes)*time.Minute,
		sysLogger,
	)

	// Roster changes anywhere in the cluster invalidate this instance's cache.
	if natsSub != nil {
		err := natsSub.Subscribe("events."+events.TypeRosterChanged, "encoding-cache-invalidator", func(ctx context.Context, evt events.Event) error {
			fichaIdStr, _ := evt.Payload()["ficha_id"].(string)
			fichaId, err := uuid.Parse(fichaIdStr)
			if err != nil {
				sysLogger.Warn("bootstrap", "roster change event without valid ficha_id", map[string]interface{}{
					"payload": evt.Payload(),
				})
				return nil
			}
			encodingCache.Invalidate(fichaId)
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to roster changes: %v", err)
		}
	}

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Recognition.OutcomeTopicName)
	consumerService := service.NewVerificationLogConsumer(
		pubSub,
		cfg.Recognition.OutcomeTopicName,
		uowFactory,
		wsHub,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, emailService)
	fichaService := service.NewFichaService(uowFactory, natsPub, sysLogger)
	sessionService := service.NewSessionService(uowFactory, sysLogger)
	gracePolicy := service.NewGracePeriodPolicy()
	attendanceService := service.NewAttendanceService(uowFactory, gracePolicy, sysLogger)
	recognitionService := service.NewRecognitionService(
		uowFactory,
		encodingCache,
		faceProvider,
		attendanceService,
		publisherService,
		sysLogger,
	)
	enrollmentService := service.NewEnrollmentService(uowFactory, faceProvider, natsPub, sysLogger)
	settingsService := service.NewSettingsService(uowFactory, encodingCache)

	// 5. Controllers
	return &Container{
		AuthController:        controller.NewAuthController(authService),
		FichaController:       controller.NewFichaController(fichaService),
		SessionController:     controller.NewSessionController(sessionService, attendanceService),
		RecognitionController: controller.NewRecognitionController(recognitionService),
		EnrollmentController:  controller.NewEnrollmentController(enrollmentService),
		SettingsController:    controller.NewSettingsController(settingsService),

		ConsumerService: consumerService,

		LiveFeedHandler: handler.NewLiveFeedHandler(wsHub, wsLogger),
		WebSocketHub:    wsHub,
	}
}

// fichaEncodingLoader adapts the per-request unit of work to the cache's
// loader interface.
type fichaEncodingLoader struct {
	uowFactory unitofwork.RepositoryFactory
}

func (l *fichaEncodingLoader) ActiveForFicha(ctx context.Context, fichaId uuid.UUID) ([]facematch.KnownEncoding, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)
	return uow.FaceEncodingRepository().ActiveForFicha(ctx, fichaId)
}
