package smtp

import (
	"UnaxHelper/internal/core/ports"
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// mailer implements ports.MailerPort against a plain SMTP relay,
// upgrading to STARTTLS when the server offers it.
type mailer struct {
	addr     string
	host     string
	envelope string // MAIL FROM address
	now      func() time.Time
	log      zerolog.Logger
}

var _ ports.MailerPort = (*mailer)(nil)

// NewMailer creates an SMTP mailer for host:port. envelopeFrom is the bounce address.
func NewMailer(host string, port int, envelopeFrom string, baseLogger *zerolog.Logger) ports.MailerPort {
	return &mailer{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		host:     host,
		envelope: envelopeFrom,
		now:      time.Now,
		log:      baseLogger.With().Str("component", "smtp_mailer").Logger(),
	}
}

// Send delivers msg. The context bounds dialing and, through its deadline, the whole session.
func (m *mailer) Send(ctx context.Context, msg ports.MailMessage) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		m.log.Error().Err(err).Str("addr", m.addr).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("dial smtp: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if err := c.Mail(m.envelope); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(m.render(msg)); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("end data: %w", err)
	}

	m.log.Debug().Strs("to", msg.To).Msg("Message accepted by relay")
	return c.Quit()
}

// render builds the RFC 5322 message. Custom headers come first so a From
// header in msg wins over the envelope default.
func (m *mailer) render(msg ports.MailMessage) []byte {
	var buf bytes.Buffer
	hasFrom := false
	for _, h := range msg.Headers {
		if strings.HasPrefix(strings.ToLower(h), "from:") {
			hasFrom = true
		}
		buf.WriteString(h + "\r\n")
	}
	if !hasFrom {
		buf.WriteString("From: <" + m.envelope + ">\r\n")
	}

	contentType := msg.ContentType
	if contentType == "" {
		contentType = "text/plain"
	}
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: %s; charset=UTF-8\r\n\r\n", contentType)
	buf.WriteString(msg.Body)
	return buf.Bytes()
}
