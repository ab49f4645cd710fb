package smtp

import (
	"UnaxHelper/internal/core/ports"
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	from string
	rcpt []string
	data string
}

// fakeRelay accepts one SMTP session and reports what it received.
func fakeRelay(t *testing.T, rejectRcpt bool) (string, <-chan session) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	done := make(chan session, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var s session
		r := bufio.NewReader(conn)
		reply := func(line string) { conn.Write([]byte(line + "\r\n")) }
		reply("220 localhost ESMTP")

		for {
			line, err := r.ReadString('\n')
			if err != nil {
				done <- s
				return
			}
			line = strings.TrimRight(line, "\r\n")
			cmd := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				reply("250 localhost")
			case strings.HasPrefix(cmd, "MAIL FROM:"):
				s.from = strings.Trim(line[len("MAIL FROM:"):], "<>")
				reply("250 OK")
			case strings.HasPrefix(cmd, "RCPT TO:"):
				if rejectRcpt {
					reply("550 No such user")
					continue
				}
				s.rcpt = append(s.rcpt, strings.Trim(line[len("RCPT TO:"):], "<>"))
				reply("250 OK")
			case cmd == "DATA":
				reply("354 Go ahead")
				var body strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil || l == ".\r\n" {
						break
					}
					body.WriteString(l)
				}
				s.data = body.String()
				reply("250 Queued")
			case cmd == "QUIT":
				reply("221 Bye")
				done <- s
				return
			default:
				reply("502 Unknown")
			}
		}
	}()
	return ln.Addr().String(), done
}

func newTestMailer(t *testing.T, addr string) *mailer {
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := net.LookupPort("tcp", portStr)
	require.NoError(t, err)

	nopLogger := zerolog.Nop()
	m := NewMailer(host, port, "no-reply@localhost", &nopLogger).(*mailer)
	m.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }
	return m
}

func TestMailer_Send(t *testing.T) {
	addr, done := fakeRelay(t, false)
	m := newTestMailer(t, addr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := m.Send(ctx, ports.MailMessage{
		To:          []string{"a@example.com", "b@example.com"},
		Subject:     "Grüße",
		Body:        "Hello<br />\nWorld",
		Headers:     []string{"From: Site <no-reply@localhost>", "Reply-To: <no-reply@localhost>"},
		ContentType: "text/html",
	})
	require.NoError(t, err)

	s := <-done
	assert.Equal(t, "no-reply@localhost", s.from)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, s.rcpt)
	assert.Contains(t, s.data, "From: Site <no-reply@localhost>\r\n")
	assert.Contains(t, s.data, "Reply-To: <no-reply@localhost>\r\n")
	assert.Contains(t, s.data, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, s.data, "Subject: =?utf-8?q?Gr=C3=BC=C3=9Fe?=\r\n")
	assert.Contains(t, s.data, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.Contains(t, s.data, "Hello<br />\r\nWorld")
	assert.Equal(t, 1, strings.Count(s.data, "From:"))
}

func TestMailer_Send_RecipientRejected(t *testing.T) {
	addr, _ := fakeRelay(t, true)
	m := newTestMailer(t, addr)

	err := m.Send(context.Background(), ports.MailMessage{To: []string{"ghost@example.com"}, Body: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rcpt ghost@example.com")
}

func TestMailer_Send_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	m := newTestMailer(t, addr)
	err = m.Send(context.Background(), ports.MailMessage{To: []string{"a@example.com"}})
	assert.Error(t, err)
}

func TestMailer_Render_DefaultFrom(t *testing.T) {
	nopLogger := zerolog.Nop()
	m := NewMailer("localhost", 25, "bounce@example.com", &nopLogger).(*mailer)

	out := string(m.render(ports.MailMessage{To: []string{"a@example.com"}, Subject: "Plain", Body: "hi"}))
	assert.Contains(t, out, "From: <bounce@example.com>\r\n")
	assert.Contains(t, out, "Subject: Plain\r\n")
	assert.Contains(t, out, "Content-Type: text/plain; charset=UTF-8\r\n\r\nhi")
}
