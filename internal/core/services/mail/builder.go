package mail

import (
	"UnaxHelper/internal/core/ports"
	"strings"
)

// Builder helps construct a MailMessage.
type Builder struct {
	msg ports.MailMessage
}

// NewBuilder starts a message to a comma-separated recipient list.
func NewBuilder(to string) *Builder {
	return &Builder{
		msg: ports.MailMessage{
			To:          splitRecipients(to),
			ContentType: "text/html", // Default to HTML
		},
	}
}

// WithSubject sets the subject line.
func (b *Builder) WithSubject(subject string) *Builder {
	b.msg.Subject = subject
	return b
}

// WithBody sets the body as is.
func (b *Builder) WithBody(body string) *Builder {
	b.msg.Body = body
	return b
}

// WithContentType overrides the default content type.
func (b *Builder) WithContentType(contentType string) *Builder {
	b.msg.ContentType = contentType
	return b
}

// WithHeader appends a raw header line, e.g. "Reply-To: <a@b.c>".
func (b *Builder) WithHeader(name, value string) *Builder {
	b.msg.Headers = append(b.msg.Headers, name+": "+value)
	return b
}

// Build returns the final MailMessage. HTML bodies get <br /> before every line break.
func (b *Builder) Build() ports.MailMessage {
	msg := b.msg
	if strings.HasPrefix(msg.ContentType, "text/html") {
		msg.Body = nl2br(msg.Body)
	}
	return msg
}

func splitRecipients(to string) []string {
	var out []string
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

var nl2brReplacer = strings.NewReplacer("\r\n", "<br />\r\n", "\n\r", "<br />\n\r", "\n", "<br />\n", "\r", "<br />\r")

// nl2br inserts "<br />" before each line break, keeping the break itself.
func nl2br(s string) string {
	return nl2brReplacer.Replace(s)
}
