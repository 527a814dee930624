package notify

import (
	"fundilink/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramNotifier delivers notices to a Telegram chat. Artisans who keep
// the dashboard closed still get accept/decline confirmations this way.
// Delivery is best-effort: a send failure is logged, never surfaced.
type TelegramNotifier struct {
	sender domain.TelegramSender
	chatID int64
	logger zerolog.Logger
}

func NewTelegramNotifier(sender domain.TelegramSender, chatID int64, logger *zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		sender: sender,
		chatID: chatID,
		logger: logger.With().Str("component", "telegram-notifier").Logger(),
	}
}

func (n *TelegramNotifier) Success(message string) {
	n.send("✅ " + message)
}

func (n *TelegramNotifier) Error(message string) {
	n.send("❌ " + message)
}

func (n *TelegramNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.sender.Send(msg); err != nil {
		n.logger.Warn().Err(err).Msg("telegram notice failed")
	}
}

// Multi fans a notice out to several notifiers.
type Multi []domain.Notifier

func (m Multi) Success(message string) {
	for _, n := range m {
		n.Success(message)
	}
}

func (m Multi) Error(message string) {
	for _, n := range m {
		n.Error(message)
	}
}
