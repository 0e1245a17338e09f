package bootstrap

import (
	"context"
	"log"
	"time"

	"legalbot-be/internal/config"
	"legalbot-be/internal/controller"
	"legalbot-be/internal/pkg/logger"
	"legalbot-be/internal/pkg/mailer"
	"legalbot-be/internal/repository/memory"
	"legalbot-be/internal/repository/redisrepo"
	"legalbot-be/internal/service"
	"legalbot-be/pkg/dialog"
	"legalbot-be/pkg/legal"
	pktNats "legalbot-be/pkg/nats"
	"legalbot-be/pkg/notify"
	"legalbot-be/pkg/report"
	"legalbot-be/pkg/whatsapp"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

// Container holds every wired dependency of the application.
type Container struct {
	Config *config.Config
	Logger logger.ILogger

	ConversationRepo *memory.ConversationRepository
	SeenMessages     *redisrepo.SeenMessageRepository

	LegalClient     legal.IClient
	ReportGenerator report.IGenerator
	Transport       whatsapp.ITransport
	Notifier        notify.INotifier
	EventPublisher  *pktNats.Publisher

	Orchestrator *dialog.Orchestrator

	InboundService  service.IInboundService
	DispatchService service.IDispatchService

	WebhookController controller.IWebhookController
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Logging
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	transcriptLogger := logger.NewIsolatedLogger("logs/transcript.log")

	// 2. Event bus (best effort, the bot works without it)
	var eventPublisher *pktNats.Publisher
	if pub, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
		appLogger.Warn("Bootstrap", "NATS unavailable, events disabled", map[string]interface{}{"error": err.Error()})
	} else {
		eventPublisher = pub
	}

	// 3. Redis (message dedupe only, fail-open when absent)
	redisClient := newRedisClient(cfg.App.RedisURL, appLogger)

	// 4. Repositories
	conversationRepo := memory.NewConversationRepository(cfg.Bot.SessionTTL)
	seenMessages := redisrepo.NewSeenMessageRepository(redisClient, cfg.Bot.DedupeTTL, appLogger)

	// 5. Outbound collaborators
	legalClient := legal.NewClient(cfg.LegalAPI.BaseURL, cfg.LegalAPI.APIKey)
	reportGenerator := report.NewGenerator(cfg.Reports.Dir, cfg.App.BaseURL, appLogger)
	transport := whatsapp.NewCloudClient(cfg.WhatsApp.APIURL, cfg.WhatsApp.PhoneID, cfg.WhatsApp.Token)
	emailService := mailer.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password, cfg.SMTP.Email)
	notifier := notify.NewNotifier(emailService, cfg.Operator.Email, eventPublisher, appLogger)

	// 6. Dialogue core
	var orchestratorPublisher dialog.EventPublisher
	if eventPublisher != nil {
		orchestratorPublisher = eventPublisher
	}
	orchestrator := dialog.NewOrchestrator(
		conversationRepo,
		legalClient,
		reportGenerator,
		transport,
		notifier,
		orchestratorPublisher,
		appLogger,
		cfg.Reports.DeleteGrace,
	)

	// 7. Inbound pipeline
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	inboundService := service.NewInboundService(cfg.Bot.InboundTopic, pubSub)
	dispatchService := service.NewDispatchService(pubSub, cfg.Bot.InboundTopic, orchestrator, seenMessages, appLogger, transcriptLogger)

	// 8. HTTP edge
	webhookController := controller.NewWebhookController(inboundService, cfg.WhatsApp.VerifyToken, appLogger)

	log.Println("Container wired")

	return &Container{
		Config:            cfg,
		Logger:            appLogger,
		ConversationRepo:  conversationRepo,
		SeenMessages:      seenMessages,
		LegalClient:       legalClient,
		ReportGenerator:   reportGenerator,
		Transport:         transport,
		Notifier:          notifier,
		EventPublisher:    eventPublisher,
		Orchestrator:      orchestrator,
		InboundService:    inboundService,
		DispatchService:   dispatchService,
		WebhookController: webhookController,
	}
}

// newRedisClient returns nil when redis cannot be reached, so the dedupe
// repository takes its fail-open path instead of warning on every message.
func newRedisClient(url string, log logger.ILogger) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Invalid Redis URL, dedupe disabled", map[string]interface{}{"error": err.Error()})
		return nil
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Bootstrap", "Redis unreachable, dedupe disabled", map[string]interface{}{"error": err.Error()})
		_ = client.Close()
		return nil
	}
	return client
}

// Close releases external connections held by the container.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		c.EventPublisher.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
