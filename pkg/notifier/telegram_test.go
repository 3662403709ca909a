package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T, handler http.HandlerFunc) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTelegramNotifier(&TelegramConfig{
		Enabled:    true,
		BotToken:   "123:abc",
		ChatID:     "42",
		Timeout:    2,
		APIBaseURL: srv.URL,
	})
}

func TestSendMessage(t *testing.T) {
	var got TelegramMessage
	var path string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	err := n.SendMessage(context.Background(), "<b>hello</b>")

	require.NoError(t, err)
	assert.Equal(t, "/bot123:abc/sendMessage", path)
	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "<b>hello</b>", got.Text)
	assert.Equal(t, "HTML", got.ParseMode)
	assert.True(t, got.DisableWebPagePreview)
}

func TestSendMessageAPIError(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	})

	err := n.SendMessage(context.Background(), "hi")

	require.ErrorIs(t, err, ErrAPIResponse)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendMessageTransportErrorHidesToken(t *testing.T) {
	n := NewTelegramNotifier(&TelegramConfig{
		Enabled:    true,
		BotToken:   "123:secret-token",
		ChatID:     "42",
		APIBaseURL: "http://127.0.0.1:1",
	})

	err := n.SendMessage(context.Background(), "hi")

	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "secret-token"), "error leaks token: %v", err)
}

func TestSendMessageConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		config  TelegramConfig
		wantErr error
	}{
		{"disabled is a no-op", TelegramConfig{Enabled: false}, nil},
		{"missing token", TelegramConfig{Enabled: true, ChatID: "1"}, ErrNotConfigured},
		{"missing chat", TelegramConfig{Enabled: true, BotToken: "t"}, ErrNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewTelegramNotifier(&tt.config)
			err := n.SendMessage(context.Background(), "hi")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestLatestChatID(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/getUpdates", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true,"result":[
			{"update_id":1,"message":{"chat":{"id":100,"type":"private","first_name":"Old"},"text":"hi"}},
			{"update_id":2,"message":{"chat":{"id":-2001,"type":"group","title":"Exam"},"text":"/start"}},
			{"update_id":3}
		]}`))
	})

	id, chat, err := n.LatestChatID(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "-2001", id)
	assert.Equal(t, "Exam", chat.Title)
}

func TestLatestChatIDWithoutMessages(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	})

	_, _, err := n.LatestChatID(context.Background())

	assert.ErrorIs(t, err, ErrNoUpdates)
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, NewTelegramNotifier(&TelegramConfig{}).ValidateConfig())
	assert.Error(t, NewTelegramNotifier(&TelegramConfig{Enabled: true, ChatID: "1"}).ValidateConfig())
	assert.Error(t, NewTelegramNotifier(&TelegramConfig{Enabled: true, BotToken: "t"}).ValidateConfig())
}

func TestSendMessageWhenDisabled(t *testing.T) {
	called := false
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	n.config.Enabled = false

	err := n.SendMessage(context.Background(), "hi")

	assert.ErrorIs(t, err, ErrDisabled)
	assert.False(t, called)
	assert.False(t, n.Enabled())
	assert.ErrorIs(t, n.TestConnection(context.Background()), ErrDisabled)
}

func TestEnabled(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.True(t, n.Enabled())

	missing := NewTelegramNotifier(&TelegramConfig{Enabled: true, ChatID: "1"})
	assert.False(t, missing.Enabled())
	assert.ErrorIs(t, missing.ValidateConfig(), ErrNotConfigured)
}

func TestTestConnection(t *testing.T) {
	var got TelegramMessage
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	require.NoError(t, n.TestConnection(context.Background()))
	assert.Equal(t, "42", got.ChatID)
	assert.Contains(t, got.Text, "Exam watch test")
}
