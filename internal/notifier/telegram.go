// Package notifier delivers clock events to the instructor's Telegram
// chat. Notifications are best-effort; delivery failures are logged,
// never surfaced to the engine.
package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bfilipov/warehouse-game/internal/util"
)

// Telegram posts clock events to a single chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram connects to the Bot API with the given token.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) PeriodAdvanced(ctx context.Context, gameID int64, day int, teams int) {
	t.send(fmt.Sprintf("Game %d advanced to day %d (%d teams resolved)", gameID, day, teams))
}

func (t *Telegram) PeriodRewound(ctx context.Context, gameID int64, day int) {
	t.send(fmt.Sprintf("Game %d rewound to day %d", gameID, day))
}

func (t *Telegram) send(text string) {
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text))
	util.LogError("telegram notify", err)
}
