// Package notify delivers composed cycle notifications through
// configurable channels.
package notify

import (
	"context"
	"time"
)

// Notifier delivers one notification through a specific channel type.
type Notifier interface {
	// Send delivers a notification with the given subject and body.
	Send(ctx context.Context, subject, body string) error
	// Type returns the channel type identifier (e.g., "email", "webhook").
	Type() string
}

// EmailConfig holds configuration for SMTP email delivery.
type EmailConfig struct {
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	To       []string `mapstructure:"to"`
}

// Configured reports whether the channel has enough settings to deliver.
func (c EmailConfig) Configured() bool {
	return c.Host != "" && c.From != "" && len(c.To) > 0
}

// WebhookConfig holds configuration for webhook notification delivery.
type WebhookConfig struct {
	URL     string            `mapstructure:"url"`
	Secret  string            `mapstructure:"secret"`
	Headers map[string]string `mapstructure:"headers"`
	Timeout time.Duration     `mapstructure:"timeout"`
}
