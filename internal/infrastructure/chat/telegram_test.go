package chat

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	app "github.com/storebot/backend/internal/application/storefront"
)

// fakeBotAPI records outgoing payloads without touching the network
type fakeBotAPI struct {
	sent      []tgbotapi.Chattable
	requested []tgbotapi.Chattable
	updates   chan tgbotapi.Update
	stopped   bool
}

func (f *fakeBotAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeBotAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requested = append(f.requested, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBotAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeBotAPI) StopReceivingUpdates() {
	f.stopped = true
}

func newTestTelegram() (*Telegram, *fakeBotAPI) {
	api := &fakeBotAPI{updates: make(chan tgbotapi.Update, 8)}
	return &Telegram{
		api:         api,
		pollTimeout: 30,
		log:         zap.NewNop(),
	}, api
}

func TestTelegram_SendText(t *testing.T) {
	transport, api := newTestTelegram()

	err := transport.SendText(context.Background(), 42, "hello", nil)
	require.NoError(t, err)
	require.Len(t, api.sent, 1)

	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "hello", msg.Text)
	assert.Empty(t, msg.ParseMode)
	assert.Nil(t, msg.ReplyMarkup)
}

func TestTelegram_SendText_MarkdownAndForceReply(t *testing.T) {
	transport, api := newTestTelegram()

	err := transport.SendText(context.Background(), 42, "*prompt*", &app.MessageOptions{
		Markdown:   true,
		ForceReply: true,
	})
	require.NoError(t, err)

	msg := api.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)

	reply, ok := msg.ReplyMarkup.(tgbotapi.ForceReply)
	require.True(t, ok)
	assert.True(t, reply.ForceReply)
}

func TestTelegram_SendText_Buttons(t *testing.T) {
	transport, api := newTestTelegram()

	err := transport.SendText(context.Background(), 42, "cart", &app.MessageOptions{
		Buttons: [][]app.Button{{{Label: "✅ Place an order", Data: "checkout"}}},
	})
	require.NoError(t, err)

	msg := api.sent[0].(tgbotapi.MessageConfig)
	keyboard, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, keyboard.InlineKeyboard, 1)
	require.Len(t, keyboard.InlineKeyboard[0], 1)

	button := keyboard.InlineKeyboard[0][0]
	assert.Equal(t, "✅ Place an order", button.Text)
	require.NotNil(t, button.CallbackData)
	assert.Equal(t, "checkout", *button.CallbackData)
}

func TestTelegram_SendPhoto(t *testing.T) {
	transport, api := newTestTelegram()

	err := transport.SendPhoto(context.Background(), 42, "https://cdn.example.com/tea.jpg", "*Green Tea*", &app.MessageOptions{
		Markdown: true,
		Buttons:  [][]app.Button{{{Label: "🛒 Add to cart (450.00₽)", Data: "add_7"}}},
	})
	require.NoError(t, err)
	require.Len(t, api.sent, 1)

	photo, ok := api.sent[0].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), photo.ChatID)
	assert.Equal(t, "*Green Tea*", photo.Caption)
	assert.Equal(t, tgbotapi.ModeMarkdown, photo.ParseMode)
	assert.Equal(t, tgbotapi.FileURL("https://cdn.example.com/tea.jpg"), photo.File)
}

func TestTelegram_AckCallback(t *testing.T) {
	transport, api := newTestTelegram()

	err := transport.AckCallback(context.Background(), "cb-1", "Added to cart ✅")
	require.NoError(t, err)
	require.Len(t, api.requested, 1)

	callback, ok := api.requested[0].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	assert.Equal(t, "cb-1", callback.CallbackQueryID)
	assert.Equal(t, "Added to cart ✅", callback.Text)
}

func TestEventFromUpdate(t *testing.T) {
	chat := &tgbotapi.Chat{ID: 42}

	tests := []struct {
		name     string
		update   tgbotapi.Update
		expected app.Event
		handled  bool
	}{
		{
			name: "command message",
			update: tgbotapi.Update{Message: &tgbotapi.Message{
				Chat: chat,
				Text: "/products",
				Entities: []tgbotapi.MessageEntity{
					{Type: "bot_command", Offset: 0, Length: 9},
				},
			}},
			expected: app.CommandEvent{ChatID: 42, Name: "products"},
			handled:  true,
		},
		{
			name: "text message",
			update: tgbotapi.Update{Message: &tgbotapi.Message{
				Chat: chat,
				Text: "Jane Doe",
			}},
			expected: app.TextEvent{ChatID: 42, Body: "Jane Doe"},
			handled:  true,
		},
		{
			name: "callback query",
			update: tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
				ID:      "cb-1",
				Data:    "add_7",
				Message: &tgbotapi.Message{Chat: chat},
			}},
			expected: app.ButtonEvent{ChatID: 42, CallbackID: "cb-1", Data: "add_7"},
			handled:  true,
		},
		{
			name:    "sticker message without text",
			update:  tgbotapi.Update{Message: &tgbotapi.Message{Chat: chat}},
			handled: false,
		},
		{
			name:    "edited message",
			update:  tgbotapi.Update{EditedMessage: &tgbotapi.Message{Chat: chat, Text: "edited"}},
			handled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := eventFromUpdate(tt.update)
			assert.Equal(t, tt.handled, ok)
			if tt.handled {
				assert.Equal(t, tt.expected, ev)
			}
		})
	}
}

func TestTelegram_Run_StopsOnContextCancel(t *testing.T) {
	transport, api := newTestTelegram()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- transport.Run(ctx, app.NewDispatcher(nil, nil, nil, nil, nil, 5, zap.NewNop()))
	}()

	cancel()
	err := <-done
	require.NoError(t, err)
	assert.True(t, api.stopped)
}
