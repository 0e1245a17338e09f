package controller

import (
	"legalbot-be/internal/dto"
	"legalbot-be/internal/pkg/logger"
	"legalbot-be/internal/pkg/serverutils"
	"legalbot-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Verify(ctx *fiber.Ctx) error
	Receive(ctx *fiber.Ctx) error
}

type webhookController struct {
	inbound     service.IInboundService
	verifyToken string
	validate    *validator.Validate
	logger      logger.ILogger
}

func NewWebhookController(inbound service.IInboundService, verifyToken string, log logger.ILogger) IWebhookController {
	return &webhookController{
		inbound:     inbound,
		verifyToken: verifyToken,
		validate:    validator.New(),
		logger:      log,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook")
	h.Get("/", c.Verify)
	h.Post("/", c.Receive)
}

// Verify answers the transport's subscription challenge.
func (c *webhookController) Verify(ctx *fiber.Ctx) error {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	if mode != "subscribe" || token != c.verifyToken {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "verification failed"))
	}
	return ctx.SendString(challenge)
}

// Receive accepts inbound message events and queues them for dispatch.
// Always answers 200 so the transport does not retry payloads we simply
// don't care about (statuses, media we don't handle).
func (c *webhookController) Receive(ctx *fiber.Ctx) error {
	var payload dto.WebhookPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid payload"))
	}
	if err := c.validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			names := map[string]string{}
			for _, contact := range change.Value.Contacts {
				names[contact.WaID] = contact.Profile.Name
			}

			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.Text == nil {
					continue
				}
				inbound := dto.InboundChatMessage{
					ConversationID: msg.From,
					Text:           msg.Text.Body,
					ProfileName:    names[msg.From],
					MessageID:      msg.ID,
				}
				if err := c.inbound.Enqueue(ctx.Context(), inbound); err != nil {
					c.logger.Error("Webhook", "Failed to enqueue inbound message", map[string]interface{}{
						"conversation_id": inbound.ConversationID,
						"error":           err.Error(),
					})
				}
			}
		}
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"status": "received"}))
}
