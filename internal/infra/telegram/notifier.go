// internal/infra/telegram/notifier.go
package telegram

import (
	"context"
	"fmt"

	"rentlite/internal/domain/notify"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// Notifier mirrors rent status notifications to the admin chat. It is a
// secondary channel: email remains the system of record for landlord
// and tenant notifications.
type Notifier struct {
	bot    *telebot.Bot
	chatID int64
	logger *logrus.Entry
}

func NewNotifier(bot *telebot.Bot, chatID int64, logger *logrus.Entry) *Notifier {
	return &Notifier{bot: bot, chatID: chatID, logger: logger}
}

func (n *Notifier) SendRentStatus(ctx context.Context, status notify.RentStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var text string
	if status.Received {
		amount := ""
		if status.Amount != nil {
			amount = fmt.Sprintf(" ($%s)", status.Amount.StringFixed(2))
		}
		text = fmt.Sprintf("✅ Rent received%s for %s (tenant: %s, due %s)",
			amount, status.PropertyAddress, status.TenantName, status.DueDate.Format("2006-01-02"))
	} else {
		text = fmt.Sprintf("❌ Rent NOT received for %s (tenant: %s, due %s)",
			status.PropertyAddress, status.TenantName, status.DueDate.Format("2006-01-02"))
	}

	if _, err := n.bot.Send(telebot.ChatID(n.chatID), text); err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	n.logger.WithField("chat_id", n.chatID).Debug("Telegram alert mirrored")
	return nil
}
