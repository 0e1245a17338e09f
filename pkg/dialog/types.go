package dialog

import (
	"context"

	"legalbot-be/pkg/store"
)

// InboundMessage is one message event from the transport.
type InboundMessage struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
	ProfileName    string `json:"profile_name,omitempty"`
	MessageID      string `json:"message_id,omitempty"`
}

// Attachment points at a downloadable artifact sent as a media message.
type Attachment struct {
	URL      string
	Filename string
	Caption  string
}

// Outbound is one reply to be delivered in order.
type Outbound struct {
	Text     string
	Document *Attachment
}

func text(body string) Outbound {
	return Outbound{Text: body}
}

// Transition is the result of one stage handler: the next state and the
// replies to send. Handlers never perform I/O on the transport themselves;
// the orchestrator sends, then persists, then runs After. A zero Transition
// means the message was ignored.
type Transition struct {
	Conv     *store.Conversation
	Messages []Outbound

	// After runs only once the replies were delivered and the state
	// persisted. Used for fire-and-forget side effects (operator alert,
	// artifact cleanup scheduling, audit events).
	After func(ctx context.Context)
}

func transition(conv *store.Conversation, next store.Stage, messages ...Outbound) Transition {
	conv.Stage = next
	return Transition{Conv: conv, Messages: messages}
}

// stay re-prompts the current stage without mutating persisted context.
func stay(conv *store.Conversation, messages ...Outbound) Transition {
	return Transition{Conv: conv, Messages: messages}
}
