package mail

import (
	"UnaxHelper/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// AutogeneratedFooter is appended by Notification.
const AutogeneratedFooter = "<br><br>This is an autogenerated message. Please do not reply."

// ErrNoRecipient is returned when neither a recipient nor an administrator address is known.
var ErrNoRecipient = errors.New("no recipient address")

// Settings is the sender identity used for every message.
type Settings struct {
	FromName           string
	FromEmail          string
	ReplyTo            string
	AdministratorEmail string
	ContentType        string
}

// Service sends site emails through a MailerPort.
type Service struct {
	mailer   ports.MailerPort
	bus      ports.EventBus // may be nil
	settings Settings
	log      zerolog.Logger
}

// NewService creates the mail service. bus may be nil.
func NewService(mailer ports.MailerPort, bus ports.EventBus, settings Settings, baseLogger *zerolog.Logger) *Service {
	return &Service{
		mailer:   mailer,
		bus:      bus,
		settings: settings,
		log:      baseLogger.With().Str("component", "mail_service").Logger(),
	}
}

// SendEmail sends message to a comma-separated list of addresses with the
// site's From and Reply-To headers.
func (s *Service) SendEmail(ctx context.Context, to, subject, message string) error {
	b := NewBuilder(to).
		WithSubject(subject).
		WithBody(message).
		WithHeader("From", fmt.Sprintf("%s <%s>", s.settings.FromName, s.settings.FromEmail)).
		WithHeader("Reply-To", fmt.Sprintf("<%s>", s.settings.ReplyTo))
	if s.settings.ContentType != "" {
		b = b.WithContentType(s.settings.ContentType)
	}
	msg := b.Build()

	if len(msg.To) == 0 {
		s.log.Error().Str("subject", subject).Msg("Refusing to send email without recipients")
		return ErrNoRecipient
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Msgf("Sending email to %s failed", strings.Join(msg.To, ", "))
		if s.bus != nil {
			event := ports.MailFailedEvent{To: msg.To, Subject: subject, Err: err}
			if pubErr := s.bus.Publish(ctx, ports.TopicMailFailed, event); pubErr != nil {
				s.log.Warn().Err(pubErr).Msg("Failed to publish mail failure")
			}
		}
		return fmt.Errorf("send email: %w", err)
	}

	s.log.Info().Strs("to", msg.To).Str("subject", subject).Msg("Email sent")
	return nil
}

// AdminNotification emails the site administrator. An empty to means the
// configured administrator address.
func (s *Service) AdminNotification(ctx context.Context, subject, message, to string) error {
	if to == "" {
		to = s.settings.AdministratorEmail
	}
	if to == "" {
		s.log.Error().Str("subject", subject).Msg("No administrator email configured")
		return ErrNoRecipient
	}
	return s.SendEmail(ctx, to, subject, message)
}

// Notification emails a user with the do-not-reply footer appended.
func (s *Service) Notification(ctx context.Context, to, subject, message string) error {
	return s.SendEmail(ctx, to, subject, message+AutogeneratedFooter)
}
