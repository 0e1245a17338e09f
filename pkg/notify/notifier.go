package notify

import (
	"context"
	"time"

	"legalbot-be/internal/pkg/logger"
	"legalbot-be/internal/pkg/mailer"
	"legalbot-be/pkg/events"
	pktNats "legalbot-be/pkg/nats"
)

// Event carries everything an operator needs to pick up a conversation.
// Not persisted beyond the call that sends it.
type Event struct {
	ConversationID string
	ClientName     string
	Reason         string
	Details        string
	OccurredAt     time.Time
}

// Hand-off reasons.
const (
	ReasonNewProcess   = "new_process_request"
	ReasonSpeakToHuman = "speak_to_human"
)

// INotifier alerts a human operator. Best effort: channel failures are
// logged and never propagated, a failed internal notification must not
// block the user-facing flow.
type INotifier interface {
	Notify(ctx context.Context, event Event)
}

type notifier struct {
	email         mailer.IEmailService
	operatorEmail string
	publisher     *pktNats.Publisher
	logger        logger.ILogger
}

// NewNotifier fans out to email and the event bus. Either channel may be
// nil when not configured.
func NewNotifier(email mailer.IEmailService, operatorEmail string, publisher *pktNats.Publisher, log logger.ILogger) INotifier {
	return &notifier{
		email:         email,
		operatorEmail: operatorEmail,
		publisher:     publisher,
		logger:        log,
	}
}

func (n *notifier) Notify(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if n.email != nil && n.operatorEmail != "" {
		if err := n.email.SendHandoffAlert(n.operatorEmail, event.ClientName, event.ConversationID, event.Reason, event.Details); err != nil {
			n.logger.Error("OperatorNotifier", "Failed to email operator", map[string]interface{}{
				"conversation_id": event.ConversationID,
				"error":           err.Error(),
			})
		}
	}

	if n.publisher != nil {
		busEvent := events.HandoffRequested{
			ConversationID: event.ConversationID,
			ClientName:     event.ClientName,
			Reason:         event.Reason,
			Details:        event.Details,
			OccurredAt:     event.OccurredAt,
		}
		if err := n.publisher.Publish(ctx, busEvent); err != nil {
			n.logger.Error("OperatorNotifier", "Failed to publish handoff event", map[string]interface{}{
				"conversation_id": event.ConversationID,
				"error":           err.Error(),
			})
		}
	}

	n.logger.Info("OperatorNotifier", "Operator notified", map[string]interface{}{
		"conversation_id": event.ConversationID,
		"reason":          event.Reason,
	})
}
