package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	neturl "net/url"
	"strconv"
	"time"

	"examwatch/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultAPIBaseURL is the public Bot API endpoint.
const DefaultAPIBaseURL = "https://api.telegram.org"

const defaultTimeout = 10 * time.Second

var (
	// ErrNotConfigured means the bot token or chat ID is missing.
	ErrNotConfigured = errors.New("telegram bot token or chat ID not configured")

	// ErrDisabled is returned by SendMessage when notifications are switched off.
	ErrDisabled = errors.New("telegram notifications disabled")

	// ErrAPIResponse wraps a response whose ok flag is false.
	ErrAPIResponse = errors.New("telegram API error")

	// ErrNoUpdates is returned by LatestChatID when the bot has not received any message.
	ErrNoUpdates = errors.New("no messages received by the bot yet")
)

// TelegramConfig represents Telegram notification configuration
type TelegramConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	BotToken   string `json:"bot_token" yaml:"bot_token"`
	ChatID     string `json:"chat_id" yaml:"chat_id"`
	Timeout    int    `json:"timeout" yaml:"timeout"` // seconds
	APIBaseURL string `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty"`
}

// TelegramNotifier handles Telegram notifications
type TelegramNotifier struct {
	config     *TelegramConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// TelegramMessage represents a message to be sent via Telegram
type TelegramMessage struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

// TelegramResponse represents Telegram API response
type TelegramResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// Chat is the subset of a Telegram chat the chat-id lookup needs.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// Update is one entry of getUpdates.
type Update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Chat Chat   `json:"chat"`
		Text string `json:"text"`
	} `json:"message,omitempty"`
}

// NewTelegramNotifier creates a new Telegram notifier
func NewTelegramNotifier(config *TelegramConfig) *TelegramNotifier {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &TelegramNotifier{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		// Bot API allows about one message per second to the same chat.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// SendMessage sends an HTML formatted message to the configured chat
func (t *TelegramNotifier) SendMessage(ctx context.Context, message string) error {
	if !t.config.Enabled {
		return ErrDisabled
	}
	return t.SendTo(ctx, t.config.ChatID, message)
}

// SendTo sends an HTML formatted message to chatID, ignoring the enabled flag.
func (t *TelegramNotifier) SendTo(ctx context.Context, chatID, message string) error {
	if t.config.BotToken == "" || chatID == "" {
		logger.Warn("Telegram bot token or chat ID not configured")
		return ErrNotConfigured
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	telegramMsg := TelegramMessage{
		ChatID:                chatID,
		Text:                  message,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}

	logger.Debug("Sending Telegram message",
		zap.String("chat_id", chatID),
		zap.String("text", message[:min(100, len(message))]))

	if _, err := t.call(ctx, http.MethodPost, "sendMessage", &telegramMsg); err != nil {
		return err
	}

	logger.Info("Telegram message sent successfully")
	return nil
}

// GetUpdates returns the updates the bot has not yet acknowledged.
func (t *TelegramNotifier) GetUpdates(ctx context.Context) ([]Update, error) {
	if t.config.BotToken == "" {
		return nil, ErrNotConfigured
	}

	result, err := t.call(ctx, http.MethodGet, "getUpdates", nil)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}
	return updates, nil
}

// LatestChatID returns the chat of the most recent message sent to the bot.
func (t *TelegramNotifier) LatestChatID(ctx context.Context) (string, Chat, error) {
	updates, err := t.GetUpdates(ctx)
	if err != nil {
		return "", Chat{}, err
	}
	for i := len(updates) - 1; i >= 0; i-- {
		if msg := updates[i].Message; msg != nil {
			return strconv.FormatInt(msg.Chat.ID, 10), msg.Chat, nil
		}
	}
	return "", Chat{}, ErrNoUpdates
}

// call performs one Bot API method and returns the result payload.
func (t *TelegramNotifier) call(ctx context.Context, httpMethod, apiMethod string, payload any) (json.RawMessage, error) {
	base := t.config.APIBaseURL
	if base == "" {
		base = DefaultAPIBaseURL
	}
	url := fmt.Sprintf("%s/bot%s/%s", base, t.config.BotToken, apiMethod)

	var body *bytes.Buffer
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		// The URL carries the token; keep it out of the error text.
		var urlErr *neturl.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var telegramResp TelegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&telegramResp); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if !telegramResp.OK {
		return nil, fmt.Errorf("%w: %s (code: %d)", ErrAPIResponse, telegramResp.Description, telegramResp.ErrorCode)
	}

	return telegramResp.Result, nil
}

// ValidateConfig validates Telegram configuration
func (t *TelegramNotifier) ValidateConfig() error {
	if !t.config.Enabled {
		return nil
	}

	if t.config.BotToken == "" {
		return fmt.Errorf("%w: bot token is required when enabled", ErrNotConfigured)
	}

	if t.config.ChatID == "" {
		return fmt.Errorf("%w: chat ID is required when enabled", ErrNotConfigured)
	}

	return nil
}

// Enabled reports whether SendMessage will actually deliver.
func (t *TelegramNotifier) Enabled() bool {
	return t.config.Enabled && t.ValidateConfig() == nil
}

// TestConnection sends a short message proving token and chat ID work.
func (t *TelegramNotifier) TestConnection(ctx context.Context) error {
	if !t.config.Enabled {
		return ErrDisabled
	}

	testMessage := "✅ <b>Exam watch test</b>\n\nTelegram notifications are working."
	return t.SendMessage(ctx, testMessage)
}
