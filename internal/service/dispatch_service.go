package service

import (
	"context"
	"encoding/json"

	"legalbot-be/internal/dto"
	"legalbot-be/internal/pkg/logger"
	"legalbot-be/pkg/dialog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IDispatchService consumes queued inbound messages and feeds them to the
// dialogue orchestrator.
type IDispatchService interface {
	Dispatch(ctx context.Context) error
}

// ISeenMessageGuard is the dedupe slice of the redis repository.
type ISeenMessageGuard interface {
	MarkSeen(ctx context.Context, messageID string) bool
}

// IMessageHandler is the dialogue engine slice the dispatcher needs.
// Satisfied by dialog.Orchestrator.
type IMessageHandler interface {
	Handle(ctx context.Context, msg dialog.InboundMessage) error
}

type dispatchService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	handler      IMessageHandler
	seenMessages ISeenMessageGuard
	logger       logger.ILogger
	transcript   logger.ILogger
}

func NewDispatchService(
	pubSub *gochannel.GoChannel,
	topicName string,
	handler IMessageHandler,
	seenMessages ISeenMessageGuard,
	log logger.ILogger,
	transcript logger.ILogger,
) IDispatchService {
	return &dispatchService{
		pubSub:       pubSub,
		topicName:    topicName,
		handler:      handler,
		seenMessages: seenMessages,
		logger:       log,
		transcript:   transcript,
	}
}

func (s *dispatchService) Dispatch(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *dispatchService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.InboundChatMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("Dispatch", "Failed to unmarshal inbound message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	// Transport-level retransmissions are dropped here; duplicates that
	// slip through are caught by the orchestrator's last-message-id guard.
	if !s.seenMessages.MarkSeen(ctx, payload.MessageID) {
		s.logger.Debug("Dispatch", "Duplicate delivery dropped", map[string]interface{}{
			"message_id": payload.MessageID,
		})
		msg.Ack()
		return
	}

	s.transcript.Info("Transcript", "Inbound", map[string]interface{}{
		"conversation_id": payload.ConversationID,
		"text":            payload.Text,
	})

	err := s.handler.Handle(ctx, dialog.InboundMessage{
		ConversationID: payload.ConversationID,
		Text:           payload.Text,
		ProfileName:    payload.ProfileName,
		MessageID:      payload.MessageID,
	})
	if err != nil {
		// A failed delivery leaves the conversation at its previous stable
		// stage; the user retries by sending again, so no redelivery here.
		s.logger.Error("Dispatch", "Orchestrator failed to handle message", map[string]interface{}{
			"conversation_id": payload.ConversationID,
			"error":           err.Error(),
		})
	}

	msg.Ack()
}
