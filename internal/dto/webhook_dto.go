package dto

// WhatsApp Cloud API webhook payload (inbound slice only; statuses and
// other change kinds are ignored by the core).

type WebhookPayload struct {
	Object string         `json:"object" validate:"required"`
	Entry  []WebhookEntry `json:"entry" validate:"required,dive"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes" validate:"dive"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	MessagingProduct string                  `json:"messaging_product"`
	Contacts         []WebhookContact        `json:"contacts"`
	Messages         []InboundWebhookMessage `json:"messages"`
}

type WebhookContact struct {
	WaID    string         `json:"wa_id"`
	Profile WebhookProfile `json:"profile"`
}

type WebhookProfile struct {
	Name string `json:"name"`
}

type InboundWebhookMessage struct {
	ID        string       `json:"id"`
	From      string       `json:"from"`
	Timestamp string       `json:"timestamp"`
	Type      string       `json:"type"`
	Text      *WebhookText `json:"text,omitempty"`
}

type WebhookText struct {
	Body string `json:"body"`
}
