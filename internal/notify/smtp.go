package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// Compile-time interface guard.
var _ Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier delivers notifications as plain-text email over SMTP.
type SMTPNotifier struct {
	cfg EmailConfig
}

// NewSMTPNotifier creates an email notifier with the given config.
// Plain AUTH is used when a username is configured.
func NewSMTPNotifier(cfg EmailConfig) *SMTPNotifier {
	if cfg.Port == 0 {
		cfg.Port = 25
	}
	return &SMTPNotifier{cfg: cfg}
}

// Send delivers the message to all configured recipients as one email.
func (n *SMTPNotifier) Send(ctx context.Context, subject, body string) error {
	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	msg := n.buildMessage(subject, body)

	// net/smtp has no context support; deliver in a goroutine so the
	// caller's cancellation is still honored.
	errCh := make(chan error, 1)
	go func() {
		errCh <- smtp.SendMail(addr, auth, n.cfg.From, n.cfg.To, msg)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("send mail via %s: %w", addr, ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("send mail via %s: %w", addr, err)
		}
		return nil
	}
}

// buildMessage renders RFC 5322 headers plus the plain-text body.
func (n *SMTPNotifier) buildMessage(subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(n.cfg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// Type returns the channel type identifier.
func (n *SMTPNotifier) Type() string {
	return "email"
}
