package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CloudClient talks to the WhatsApp Business Cloud API.
type CloudClient struct {
	apiURL     string
	phoneID    string
	token      string
	httpClient *http.Client
}

func NewCloudClient(apiURL, phoneID, token string) *CloudClient {
	return &CloudClient{
		apiURL:  apiURL,
		phoneID: phoneID,
		token:   token,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type textPayload struct {
	Body string `json:"body"`
}

type documentPayload struct {
	Link     string `json:"link"`
	Filename string `json:"filename,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

type outboundMessage struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             *textPayload     `json:"text,omitempty"`
	Document         *documentPayload `json:"document,omitempty"`
}

type typingIndicator struct {
	MessagingProduct string `json:"messaging_product"`
	Status           string `json:"status"`
	MessageID        string `json:"message_id,omitempty"`
	To               string `json:"to"`
}

func (c *CloudClient) SendText(ctx context.Context, to, body string) error {
	return c.post(ctx, outboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             &textPayload{Body: body},
	})
}

func (c *CloudClient) SendDocument(ctx context.Context, to, fileURL, filename, caption string) error {
	return c.post(ctx, outboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "document",
		Document: &documentPayload{
			Link:     fileURL,
			Filename: filename,
			Caption:  caption,
		},
	})
}

func (c *CloudClient) SendTyping(ctx context.Context, to string) error {
	return c.post(ctx, typingIndicator{
		MessagingProduct: "whatsapp",
		Status:           "typing",
		To:               to,
	})
}

func (c *CloudClient) post(ctx context.Context, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/messages", c.apiURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("whatsapp send failed: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
