// Package notifier delivers formatted alerts to a Telegram channel.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/rizkyfauzi/alpha-airdrop-bot/internal/formatter"
)

// Notifier abstracts the notification sink. Send returns the delivery
// message ID; replyTo of 0 means a top-level message.
type Notifier interface {
	Send(ctx context.Context, msg formatter.Message, replyTo int) (int, error)
	Enabled() bool
}

type TelegramClient struct {
	bot       *tgbotapi.BotAPI
	channelID string
	enabled   bool
	limiter   *rate.Limiter
}

// NewTelegram initializes the bot API client. When enabled is false no
// connection is made and every Send is skipped.
func NewTelegram(token, channelID string, enabled bool) (*TelegramClient, error) {
	client := &TelegramClient{
		channelID: channelID,
		enabled:   enabled,
		// Telegram allows ~20 messages/minute per channel.
		limiter: rate.NewLimiter(rate.Every(3*time.Second), 1),
	}
	if !enabled {
		slog.Info("Telegram integration disabled")
		return client, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	client.bot = bot
	slog.Info("Telegram bot initialized", "account", bot.Self.UserName)
	return client, nil
}

func (c *TelegramClient) Enabled() bool {
	return c.enabled
}

// Send posts the alert with an inline engagement button linking back to
// the tweet. Returns the Telegram message ID on success.
func (c *TelegramClient) Send(ctx context.Context, msg formatter.Message, replyTo int) (int, error) {
	if !c.enabled || c.bot == nil {
		return 0, fmt.Errorf("telegram posting disabled")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	out := tgbotapi.NewMessageToChannel(c.channelID, msg.Text)
	out.ParseMode = tgbotapi.ModeMarkdown
	out.DisableWebPagePreview = true
	if replyTo > 0 {
		out.ReplyToMessageID = replyTo
	}
	if msg.URL != "" {
		button := tgbotapi.NewInlineKeyboardButtonURL(
			fmt.Sprintf("💖 %d | 🔄 %d", msg.Stats.Likes, msg.Stats.Retweets),
			msg.URL,
		)
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(button))
	}

	sent, err := c.bot.Send(out)
	if err != nil {
		return 0, fmt.Errorf("failed to send Telegram message: %w", err)
	}
	return sent.MessageID, nil
}
