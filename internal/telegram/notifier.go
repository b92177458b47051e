package telegram

import (
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alehernandezlabs/trade-notifier/internal/config"
	"github.com/alehernandezlabs/trade-notifier/internal/logger"
)

// SendError reports a failed delivery. Its message is deliberately
// generic; the transport detail stays wrapped for server-side logs.
type SendError struct {
	err error
}

func (e *SendError) Error() string {
	return "telegram: message delivery failed"
}

func (e *SendError) Unwrap() error {
	return e.err
}

type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
	logger  *logger.Logger
}

func NewNotifier(cfg *config.Config, log *logger.Logger) (*Notifier, error) {
	if !cfg.Telegram.Enabled {
		log.Warn("telegram disabled, notifications will be dropped")
		return &Notifier{enabled: false, logger: log}, nil
	}

	client := &http.Client{Timeout: cfg.TelegramTimeout()}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Telegram.BotToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	log.Info("telegram bot connected", "username", bot.Self.UserName)

	return &Notifier{
		bot:     bot,
		chatID:  cfg.Telegram.ChatID,
		enabled: true,
		logger:  log,
	}, nil
}

func (n *Notifier) Enabled() bool {
	return n.enabled
}

// Send delivers text to the configured chat. One immediate retry on
// failure; the bot's HTTP client bounds each attempt.
func (n *Notifier) Send(text string) error {
	if !n.enabled {
		n.logger.Debug("telegram disabled, dropping message")
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := n.bot.Send(msg)
	if err == nil {
		return nil
	}

	n.logger.Warn("telegram send failed, retrying", "error", err)
	if _, err = n.bot.Send(msg); err != nil {
		n.logger.Error("telegram send failed", "error", err)
		return &SendError{err: err}
	}
	return nil
}
