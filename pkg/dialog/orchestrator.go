package dialog

import (
	"context"
	"strings"
	"sync"
	"time"

	"legalbot-be/internal/constant"
	"legalbot-be/internal/pkg/logger"
	"legalbot-be/internal/repository/memory"
	"legalbot-be/pkg/events"
	"legalbot-be/pkg/legal"
	"legalbot-be/pkg/notify"
	"legalbot-be/pkg/report"
	"legalbot-be/pkg/store"
	"legalbot-be/pkg/whatsapp"
)

// EventPublisher is the slice of the event bus the orchestrator needs.
// Satisfied by pkg/nats.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Orchestrator owns the stage graph and guarantees exactly one valid
// transition per inbound message. It is the only component that performs
// I/O on the transport; stage handlers just compute transitions.
type Orchestrator struct {
	repo      *memory.ConversationRepository
	gateway   legal.IClient
	reports   report.IGenerator
	transport whatsapp.ITransport
	notifier  notify.INotifier
	publisher EventPublisher
	logger    logger.ILogger

	// How long a sent artifact stays fetchable before cleanup.
	deleteGrace time.Duration

	locks sync.Map // conversation id -> *sync.Mutex
}

func NewOrchestrator(
	repo *memory.ConversationRepository,
	gateway legal.IClient,
	reports report.IGenerator,
	transport whatsapp.ITransport,
	notifier notify.INotifier,
	publisher EventPublisher,
	log logger.ILogger,
	deleteGrace time.Duration,
) *Orchestrator {
	o := &Orchestrator{
		repo:        repo,
		gateway:     gateway,
		reports:     reports,
		transport:   transport,
		notifier:    notifier,
		publisher:   publisher,
		logger:      log,
		deleteGrace: deleteGrace,
	}
	// The lock map follows the session lifecycle: when a conversation
	// expires out of the store its mutex goes with it.
	repo.OnEvicted(func(conversationID string) {
		o.locks.Delete(conversationID)
	})
	return o
}

// Handle processes one inbound message. Messages for the same conversation
// id are strictly serialized; different ids run concurrently.
func (o *Orchestrator) Handle(ctx context.Context, msg InboundMessage) error {
	mu := o.lockFor(msg.ConversationID)
	mu.Lock()
	defer mu.Unlock()

	conv := o.repo.Get(msg.ConversationID).Clone()

	// LastMessageID is persisted only after a fully processed turn, so a
	// retransmitted delivery is dropped here even with the redis guard
	// down, while a retry after a failed send still goes through.
	if msg.MessageID != "" && msg.MessageID == conv.LastMessageID {
		o.logger.Debug("Orchestrator", "Duplicate delivery dropped", map[string]interface{}{
			"conversation_id": msg.ConversationID,
			"message_id":      msg.MessageID,
		})
		return nil
	}
	conv.LastMessageID = msg.MessageID

	if msg.ProfileName != "" {
		conv.ProfileName = msg.ProfileName
	}

	input := strings.TrimSpace(msg.Text)
	if input == "" {
		return nil
	}
	normalized := strings.ToLower(input)

	if stageCallsCollaborators(conv.Stage) {
		// Best effort; a missing typing indicator is not an error.
		if err := o.transport.SendTyping(ctx, msg.ConversationID); err != nil {
			o.logger.Debug("Orchestrator", "Typing indicator failed", map[string]interface{}{"error": err.Error()})
		}
	}

	tr := o.safeDispatch(ctx, conv, input, normalized)
	if tr.Conv == nil {
		// No capture handler for this stage: duplicate or race-delivered
		// transport event, silently ignored.
		o.logger.Debug("Orchestrator", "Message ignored", map[string]interface{}{
			"conversation_id": msg.ConversationID,
			"stage":           string(conv.Stage),
		})
		return nil
	}

	if err := o.deliver(ctx, msg.ConversationID, tr.Messages); err != nil {
		// State is persisted last: a failed send leaves the stored stage at
		// the previous stable point so the user can simply retry.
		o.logger.Error("Orchestrator", "Failed to deliver reply", map[string]interface{}{
			"conversation_id": msg.ConversationID,
			"stage":           string(tr.Conv.Stage),
			"error":           err.Error(),
		})
		return err
	}

	o.repo.Save(tr.Conv)

	if tr.After != nil {
		tr.After(ctx)
	}
	return nil
}

// safeDispatch converts handler panics into a generic error reply with the
// persisted stage unchanged.
func (o *Orchestrator) safeDispatch(ctx context.Context, conv *store.Conversation, input, normalized string) (tr Transition) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Orchestrator", "Handler panicked", map[string]interface{}{
				"conversation_id": conv.ID,
				"stage":           string(conv.Stage),
				"panic":           r,
			})
			// The partially mutated clone is discarded.
			fresh := o.repo.Get(conv.ID).Clone()
			tr = stay(fresh, text(constant.MsgInternalError))
		}
	}()
	return o.dispatch(ctx, conv, input, normalized)
}

func (o *Orchestrator) dispatch(ctx context.Context, conv *store.Conversation, input, normalized string) Transition {
	// Global escape hatches short-circuit the normal stage dispatch.
	if matchKeyword(constant.ResetKeywords, normalized) {
		conv.Reset()
		return o.enterWelcome(conv)
	}
	if matchKeyword(constant.HumanKeywords, normalized) {
		return o.requestHuman(conv)
	}

	switch conv.Stage {
	case store.StageIdle:
		return o.enterWelcome(conv)
	case store.StageWelcome:
		return o.captureWelcome(conv, normalized)
	case store.StageConsentRequest:
		return o.captureConsent(conv, normalized)
	case store.StageDocumentCapture:
		return o.captureDocument(ctx, conv, input)
	case store.StageProcessTypeSelection:
		return o.captureProcessType(conv, input)
	case store.StageProcessListActive:
		return o.captureProcessList(ctx, conv, store.TypeActive, normalized)
	case store.StageProcessListFinalized:
		return o.captureProcessList(ctx, conv, store.TypeFinalized, normalized)
	case store.StagePdfConfirmation:
		return o.capturePdfConfirmation(ctx, conv, normalized)
	case store.StagePdfSummary:
		return o.capturePdfSummary(ctx, conv, normalized)
	case store.StageMainOptions:
		return o.captureMainOptions(conv, input)
	case store.StageNewProcessProfile:
		return o.captureNewProcessProfile(conv, input)
	default:
		return Transition{}
	}
}

func (o *Orchestrator) deliver(ctx context.Context, to string, messages []Outbound) error {
	for _, m := range messages {
		if m.Document != nil {
			if err := o.transport.SendDocument(ctx, to, m.Document.URL, m.Document.Filename, m.Document.Caption); err != nil {
				return err
			}
			continue
		}
		if err := o.transport.SendText(ctx, to, m.Text); err != nil {
			return err
		}
	}
	return nil
}

// scheduleDelete removes the artifact after the grace period, long enough
// for the transport to finish fetching it. Failures are logged inside
// Delete, never surfaced to the user.
func (o *Orchestrator) scheduleDelete(filename string) {
	time.AfterFunc(o.deleteGrace, func() {
		o.reports.Delete(filename)
	})
}

func (o *Orchestrator) publishEvent(ctx context.Context, event events.Event) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.Publish(ctx, event); err != nil {
		o.logger.Warn("Orchestrator", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func (o *Orchestrator) lockFor(conversationID string) *sync.Mutex {
	mu, _ := o.locks.LoadOrStore(conversationID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func stageCallsCollaborators(stage store.Stage) bool {
	switch stage {
	case store.StageDocumentCapture,
		store.StageProcessListActive,
		store.StageProcessListFinalized,
		store.StagePdfConfirmation,
		store.StagePdfSummary:
		return true
	}
	return false
}

func matchKeyword(keywords []string, normalized string) bool {
	for _, k := range keywords {
		if normalized == k {
			return true
		}
	}
	return false
}

func isAffirmative(normalized string) bool {
	return matchKeyword(constant.AffirmativeWords, normalized)
}

func isNegative(normalized string) bool {
	return matchKeyword(constant.NegativeWords, normalized)
}
