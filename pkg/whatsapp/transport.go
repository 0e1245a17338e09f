package whatsapp

import "context"

// ITransport is the outbound messaging contract. Implementations must be
// safe for concurrent use across conversations.
type ITransport interface {
	// SendText delivers one text message to a conversation.
	SendText(ctx context.Context, to, body string) error

	// SendDocument delivers a media message pointing at a downloadable file.
	SendDocument(ctx context.Context, to, fileURL, filename, caption string) error

	// SendTyping shows a composing indicator. Best effort.
	SendTyping(ctx context.Context, to string) error
}
