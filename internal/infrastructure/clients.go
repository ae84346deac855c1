package infrastructure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// WhatsAppBusinessClient sends outbound messages through the Cloud API.
// Inbound traffic arrives via the webhook handler, not this client.
type WhatsAppBusinessClient struct {
	accessToken   string
	phoneNumberID string
	httpClient    *http.Client
}

func NewWhatsAppBusinessClient(accessToken, phoneNumberID string) *WhatsAppBusinessClient {
	return &WhatsAppBusinessClient{
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (w *WhatsAppBusinessClient) SendMessage(to, content string) error {
	url := fmt.Sprintf("https://graph.facebook.com/v18.0/%s/messages", w.phoneNumberID)
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text": map[string]string{
			"body": content,
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp send returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// TelegramClient wraps the bot API for outbound sends. Bot stays nil when
// the token is missing or invalid; Telegram is then simply disabled.
type TelegramClient struct {
	Bot    *tgbotapi.BotAPI
	logger *zap.Logger
}

func NewTelegramClient(token string, logger *zap.Logger) *TelegramClient {
	if token == "" {
		return &TelegramClient{logger: logger}
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Warn("telegram bot token rejected, telegram disabled", zap.Error(err))
		return &TelegramClient{logger: logger}
	}
	return &TelegramClient{Bot: bot, logger: logger}
}

func (t *TelegramClient) SendMessage(to, content string) error {
	if t.Bot == nil {
		return fmt.Errorf("telegram disabled")
	}
	chatID, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return fmt.Errorf("bad telegram chat id %q: %w", to, err)
	}
	msg := tgbotapi.NewMessage(chatID, content)
	msg.ParseMode = "Markdown"
	_, err = t.Bot.Send(msg)
	return err
}
