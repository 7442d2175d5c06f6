package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pawcare/models"
)

// WhatsAppChannel sends plain text messages through the WhatsApp Cloud API.
type WhatsAppChannel struct {
	baseURL       string
	token         string
	phoneNumberID string
	client        *http.Client
}

func NewWhatsAppChannel(baseURL, token, phoneNumberID string, client *http.Client) *WhatsAppChannel {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WhatsAppChannel{
		baseURL:       strings.TrimRight(baseURL, "/"),
		token:         token,
		phoneNumberID: phoneNumberID,
		client:        client,
	}
}

func (c *WhatsAppChannel) Name() string { return "whatsapp" }

type waText struct {
	Body string `json:"body"`
}

type waMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             waText `json:"text"`
}

func (c *WhatsAppChannel) Deliver(ctx context.Context, contact models.Contact, n models.Notification) error {
	if contact.Phone == "" {
		return ErrNoRecipient
	}

	payload, err := json.Marshal(waMessage{
		MessagingProduct: "whatsapp",
		To:               strings.TrimPrefix(contact.Phone, "+"),
		Type:             "text",
		Text:             waText{Body: n.Title + "\n" + n.Body},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
