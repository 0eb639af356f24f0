package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coursebot/bot/client"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBot wires the bot against a stub Telegram API that accepts every
// request, and a backend URL nothing listens on.
func newTestBot(t *testing.T) *Bot {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"coursebot","username":"coursebot"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", srv.URL+"/bot%s/%s")
	require.NoError(t, err)

	backend := client.New("http://127.0.0.1:1", 100*time.Millisecond)
	return New(api, backend, 0)
}

func TestCallbackWithoutMessageIsDropped(t *testing.T) {
	b := newTestBot(t)

	// Telegram sends no message for callbacks on messages older than 48h.
	cb := &tgbotapi.CallbackQuery{
		ID:   "1",
		Data: "available_courses",
		From: &tgbotapi.User{ID: 7},
	}
	b.handleCallback(context.Background(), cb)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user tgbotapi.User
		want string
	}{
		{"first and last", tgbotapi.User{FirstName: "Alice", LastName: "Smith"}, "Alice Smith"},
		{"first only", tgbotapi.User{FirstName: "Alice"}, "Alice"},
		{"username fallback", tgbotapi.User{UserName: "alice"}, "alice"},
		{"numeric fallback", tgbotapi.User{ID: 12345}, "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayName(&tt.user))
		})
	}
}
