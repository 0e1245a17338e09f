package dto

// InboundChatMessage travels over the internal bus between the webhook
// controller and the dispatch worker.
type InboundChatMessage struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
	ProfileName    string `json:"profile_name,omitempty"`
	MessageID      string `json:"message_id,omitempty"`
}
