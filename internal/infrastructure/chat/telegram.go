package chat

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "github.com/storebot/backend/internal/application/storefront"
)

// botAPI is the subset of the Telegram bot client the transport uses.
// Narrowed for testability.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Telegram delivers outgoing messages through the Telegram Bot API and feeds
// incoming updates to the dispatcher as events.
type Telegram struct {
	api         botAPI
	pollTimeout int
	log         *zap.Logger
}

// NewTelegram creates a Telegram transport authenticated with the given bot
// token. pollTimeout is the long-polling timeout in seconds.
func NewTelegram(token string, pollTimeout int, log *zap.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to authenticate bot: %w", err)
	}

	return &Telegram{
		api:         api,
		pollTimeout: pollTimeout,
		log:         log,
	}, nil
}

// SendText delivers a text message with optional markdown, inline buttons or
// a forced reply prompt.
func (t *Telegram) SendText(_ context.Context, chatID int64, text string, opts *app.MessageOptions) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode(opts)
	msg.ReplyMarkup = replyMarkup(opts)

	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram: failed to send message: %w", err)
	}
	return nil
}

// SendPhoto delivers an image by URL with a caption.
func (t *Telegram) SendPhoto(_ context.Context, chatID int64, photoURL, caption string, opts *app.MessageOptions) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = parseMode(opts)
	photo.ReplyMarkup = replyMarkup(opts)

	if _, err := t.api.Send(photo); err != nil {
		return fmt.Errorf("telegram: failed to send photo: %w", err)
	}
	return nil
}

// AckCallback answers a callback query so the button stops showing a spinner.
// A non-empty text shows as a toast notification.
func (t *Telegram) AckCallback(_ context.Context, callbackID, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := t.api.Request(callback); err != nil {
		return fmt.Errorf("telegram: failed to answer callback: %w", err)
	}
	return nil
}

// Run consumes updates via long polling until ctx is cancelled. Each update
// is converted to an event and handed to the dispatcher's per-user queues.
func (t *Telegram) Run(ctx context.Context, dispatcher *app.Dispatcher) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = t.pollTimeout

	updates := t.api.GetUpdatesChan(cfg)
	t.log.Info("telegram transport started", zap.Int("poll_timeout", t.pollTimeout))

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			t.log.Info("telegram transport stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			ev, ok := eventFromUpdate(update)
			if !ok {
				continue
			}
			dispatcher.Enqueue(ctx, ev)
		}
	}
}

// eventFromUpdate converts a Telegram update to a dispatcher event. Updates
// the bot does not handle (edits, stickers, joins) are skipped.
func eventFromUpdate(update tgbotapi.Update) (app.Event, bool) {
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return app.ButtonEvent{
			ChatID:     update.CallbackQuery.Message.Chat.ID,
			CallbackID: update.CallbackQuery.ID,
			Data:       update.CallbackQuery.Data,
		}, true
	}

	if update.Message == nil || update.Message.Chat == nil {
		return nil, false
	}

	msg := update.Message
	if msg.IsCommand() {
		return app.CommandEvent{
			ChatID: msg.Chat.ID,
			Name:   msg.Command(),
		}, true
	}
	if msg.Text != "" {
		return app.TextEvent{
			ChatID: msg.Chat.ID,
			Body:   msg.Text,
		}, true
	}

	return nil, false
}

func parseMode(opts *app.MessageOptions) string {
	if opts != nil && opts.Markdown {
		return tgbotapi.ModeMarkdown
	}
	return ""
}

// replyMarkup maps presentation options to a Telegram reply markup. Buttons
// take precedence over a forced reply.
func replyMarkup(opts *app.MessageOptions) interface{} {
	if opts == nil {
		return nil
	}
	if len(opts.Buttons) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(opts.Buttons))
		for _, row := range opts.Buttons {
			buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
			}
			rows = append(rows, buttons)
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	if opts.ForceReply {
		return tgbotapi.ForceReply{ForceReply: true}
	}
	return nil
}

// Ensure Telegram implements the messenger port
var _ app.Messenger = (*Telegram)(nil)
