package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/relaybot/internal/config"
)

// fakeTelegram records calls made against a fake Telegram API server.
type fakeTelegram struct {
	mu       sync.Mutex
	messages []string
	chatIDs  []int64
	actions  int
}

func (f *fakeTelegram) sentMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func (f *fakeTelegram) sentChatIDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.chatIDs...)
}

func (f *fakeTelegram) typingActions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.actions
}

// newTestBot starts a fake Telegram API server and returns a bot
// pointed at it together with the call recorder.
func newTestBot(t *testing.T) (*bot.Bot, *fakeTelegram) {
	t.Helper()

	fake := &fakeTelegram{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The bot library submits parameters as multipart/form-data.
		_ = r.ParseMultipartForm(1 << 20)

		var params struct {
			ChatID int64
			Text   string
			Action string
		}
		params.ChatID, _ = strconv.ParseInt(r.FormValue("chat_id"), 10, 64)
		params.Text = r.FormValue("text")
		params.Action = r.FormValue("action")

		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

		w.Header().Set("Content-Type", "application/json")
		switch method {
		case "sendMessage":
			fake.mu.Lock()
			fake.messages = append(fake.messages, params.Text)
			fake.chatIDs = append(fake.chatIDs, params.ChatID)
			fake.mu.Unlock()
			_, _ = w.Write([]byte(`{"ok": true, "result": {"message_id": 1, "date": 1, "chat": {"id": ` + jsonInt(params.ChatID) + `}}}`))
		case "sendChatAction":
			fake.mu.Lock()
			fake.actions++
			fake.mu.Unlock()
			_, _ = w.Write([]byte(`{"ok": true, "result": true}`))
		default:
			_, _ = w.Write([]byte(`{"ok": true, "result": {}}`))
		}
	}))
	t.Cleanup(srv.Close)

	b, err := bot.New("test-token", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	if err != nil {
		t.Fatalf("bot.New returned error: %v", err)
	}
	return b, fake
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// stubAI is a controllable ai.Client implementation.
type stubAI struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (s *stubAI) GenerateReply(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubAI) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testDeps(aiClient *stubAI) HandlerDeps {
	return HandlerDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &config.Config{
			AI: config.AIConfig{Provider: config.ProviderOpenAI, Timeout: time.Minute},
			Messages: config.MessagesConfig{
				Welcome:      config.DefaultWelcomeMessage,
				GeneralError: config.DefaultGeneralErrorMessage,
			},
		},
		AI: aiClient,
	}
}

func textUpdate(chatID int64, text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   10,
			Text: text,
			Date: 1700000000,
			Chat: models.Chat{ID: chatID},
			From: &models.User{ID: 42},
		},
	}
}

func TestChatHandlerRelaysReply(t *testing.T) {
	t.Parallel()

	b, fake := newTestBot(t)
	stub := &stubAI{reply: "Hi there!"}
	handler := NewChatHandler(testDeps(stub))

	handler(context.Background(), b, textUpdate(123, "Hello"))

	if got := fake.sentMessages(); len(got) != 1 || got[0] != "Hi there!" {
		t.Fatalf("expected exactly one reply %q, got %v", "Hi there!", got)
	}
	if got := fake.sentChatIDs(); len(got) != 1 || got[0] != 123 {
		t.Errorf("expected reply to chat 123, got %v", got)
	}
	if stub.callCount() != 1 {
		t.Errorf("expected one AI call, got %d", stub.callCount())
	}
	if fake.typingActions() != 1 {
		t.Errorf("expected one typing action, got %d", fake.typingActions())
	}
}

func TestChatHandlerSendsFallbackOnProviderFailure(t *testing.T) {
	t.Parallel()

	b, fake := newTestBot(t)
	stub := &stubAI{err: errors.New("connection timed out")}
	deps := testDeps(stub)
	handler := NewChatHandler(deps)

	handler(context.Background(), b, textUpdate(123, "Hello"))

	got := fake.sentMessages()
	if len(got) != 1 || got[0] != deps.Config.Messages.GeneralError {
		t.Fatalf("expected exactly one fallback message, got %v", got)
	}

	// The handler keeps serving subsequent messages after a failure.
	stub.mu.Lock()
	stub.err = nil
	stub.reply = "Recovered"
	stub.mu.Unlock()

	handler(context.Background(), b, textUpdate(123, "Hello again"))

	got = fake.sentMessages()
	if len(got) != 2 || got[1] != "Recovered" {
		t.Fatalf("expected recovery reply after failure, got %v", got)
	}
}

func TestChatHandlerIgnoresNonRelayableUpdates(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		update *models.Update
	}{
		{name: "nil message", update: &models.Update{ID: 1}},
		{name: "empty text", update: textUpdate(123, "   ")},
		{name: "unrecognized command", update: textUpdate(123, "/unknown")},
		{
			name: "nil sender",
			update: &models.Update{
				ID:      1,
				Message: &models.Message{ID: 10, Text: "Hello", Chat: models.Chat{ID: 123}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, fake := newTestBot(t)
			stub := &stubAI{reply: "should not be used"}
			handler := NewChatHandler(testDeps(stub))

			handler(context.Background(), b, tc.update)

			if got := fake.sentMessages(); len(got) != 0 {
				t.Errorf("expected no messages sent, got %v", got)
			}
			if stub.callCount() != 0 {
				t.Errorf("expected no AI calls, got %d", stub.callCount())
			}
		})
	}
}
