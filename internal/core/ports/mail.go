package ports

import "context"

// MailMessage is a fully addressed outgoing email.
type MailMessage struct {
	To          []string
	Subject     string
	Body        string
	Headers     []string // Raw "Name: value" header lines, e.g. From and Reply-To
	ContentType string
}

// MailerPort delivers an email.
type MailerPort interface {
	Send(ctx context.Context, msg MailMessage) error
}

// AlertPort pushes a short plain-text alert to the site administrator
// outside of email (e.g. a chat channel).
type AlertPort interface {
	Alert(ctx context.Context, text string) error
}
