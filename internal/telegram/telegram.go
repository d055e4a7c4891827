// Package telegram adapts the Telegram Bot API to the core's event
// and reply types. It owns the long-poll loop and nothing else: all
// routing decisions live in the bot package.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/avdeeva/task-tracker-bot/internal/bot"
	"github.com/avdeeva/task-tracker-bot/internal/model"
)

// pollTimeout is the long-poll timeout in seconds.
const pollTimeout = 30

// Bot drives the Telegram long-poll loop and hands every update to
// the router. Updates are handled in their own goroutines; ordering
// per user is the router's responsibility.
type Bot struct {
	api    *tgbotapi.BotAPI
	router *bot.Router
	log    *slog.Logger
}

// New authenticates against the Telegram Bot API with the given token.
func New(token string, router *bot.Router, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}

	log.Info("authorized on telegram", "username", api.Self.UserName)

	return &Bot{api: api, router: router, log: log}, nil
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate converts one update into a core event, dispatches it,
// and renders the reply, if any.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ev, chatID, ok := eventFromUpdate(update)
	if !ok {
		return
	}

	log := b.log.With(
		"event_id", uuid.NewString(),
		"update_id", update.UpdateID,
		"user_id", ev.User.ID,
	)

	// Acknowledge button presses right away so the client stops its
	// spinner even when the press produces no reply.
	if update.CallbackQuery != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			log.Warn("answering callback query", "error", err)
		}
	}

	reply, err := b.router.Dispatch(ctx, ev)
	if err != nil {
		log.Error("handling update", "error", err)
		return
	}
	if reply == nil {
		return
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if len(reply.Buttons) > 0 {
		msg.ReplyMarkup = keyboard(reply.Buttons)
	}

	if _, err := b.api.Send(msg); err != nil {
		log.Error("sending reply", "error", err)
	}
}

// eventFromUpdate normalizes a Telegram update into a core event and
// the chat to answer in. Updates the core has no use for (edits,
// stickers, joins, ...) report ok=false and are dropped.
func eventFromUpdate(update tgbotapi.Update) (bot.Event, int64, bool) {
	if m := update.Message; m != nil && m.From != nil {
		ev := bot.Event{User: userFrom(m.From)}

		switch {
		case m.IsCommand():
			ev.Kind = bot.EventCommand
			ev.Command = m.Command()
		case m.Text != "":
			ev.Kind = bot.EventText
			ev.Text = m.Text
		default:
			return bot.Event{}, 0, false
		}

		return ev, m.Chat.ID, true
	}

	if cq := update.CallbackQuery; cq != nil && cq.From != nil && cq.Data != "" {
		ev := bot.Event{
			Kind:     bot.EventCallback,
			User:     userFrom(cq.From),
			Callback: cq.Data,
		}

		chatID := cq.From.ID
		if cq.Message != nil {
			chatID = cq.Message.Chat.ID
		}

		return ev, chatID, true
	}

	return bot.Event{}, 0, false
}

// userFrom maps the transport identity onto the core user record.
func userFrom(u *tgbotapi.User) model.User {
	return model.User{
		ID:        u.ID,
		Username:  u.UserName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// keyboard converts reply buttons into an inline keyboard.
func keyboard(rows [][]bot.Button) tgbotapi.InlineKeyboardMarkup {
	kb := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		kb = append(kb, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kb...)
}
