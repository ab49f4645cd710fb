package telegram

import (
	"UnaxHelper/internal/core/domain"
	"UnaxHelper/internal/core/ports"
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// botSender is the part of *tgbotapi.BotAPI the notifier uses.
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// AlertNotifier implements the AlertPort by posting to a Telegram chat.
type AlertNotifier struct {
	bot    botSender
	chatID int64
	log    zerolog.Logger
}

var _ ports.AlertPort = (*AlertNotifier)(nil)

// NewAlertNotifier creates a notifier posting to chatID.
func NewAlertNotifier(bot botSender, chatID int64, baseLogger *zerolog.Logger) *AlertNotifier {
	log := baseLogger.With().Str("component", "tg_alerts").Logger()
	return &AlertNotifier{bot: bot, chatID: chatID, log: log}
}

// NewBotAPI connects to Telegram with token.
func NewBotAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("could not connect to telegram: %w", err)
	}
	return api, nil
}

// Alert sends text as a plain message.
func (n *AlertNotifier) Alert(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		n.log.Error().Err(err).Int64("chat_id", n.chatID).Msg("Failed to send alert")
		return err
	}
	return nil
}

// Subscribe forwards mail failures and error/warning admin notices to the chat.
func (n *AlertNotifier) Subscribe(bus ports.EventBus) {
	bus.Subscribe(ports.TopicMailFailed, n.handleMailFailed)
	bus.Subscribe(ports.TopicNoticeAdded, n.handleNoticeAdded)
	n.log.Info().Int64("chat_id", n.chatID).Msg("Subscribed to admin alert topics")
}

func (n *AlertNotifier) handleMailFailed(ctx context.Context, event ports.Event) error {
	e, ok := event.Data.(ports.MailFailedEvent)
	if !ok {
		n.log.Error().Str("topic", event.Topic).Msg("Received bad mail_failed event from bus")
		return nil // Don't retry
	}
	return n.Alert(ctx, fmt.Sprintf("Sending email to %s failed: %s (%v)", strings.Join(e.To, ", "), e.Subject, e.Err))
}

func (n *AlertNotifier) handleNoticeAdded(ctx context.Context, event ports.Event) error {
	notice, ok := event.Data.(domain.Notice)
	if !ok {
		n.log.Error().Str("topic", event.Topic).Msg("Received bad notice_added event from bus")
		return nil
	}
	// Info and success notices are only for the admin screen
	if notice.Type != domain.NoticeError && notice.Type != domain.NoticeWarning {
		return nil
	}
	return n.Alert(ctx, fmt.Sprintf("[%s] %s", strings.ToUpper(string(notice.Type)), notice.Text))
}
