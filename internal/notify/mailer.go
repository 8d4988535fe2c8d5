// Package notify delivers offers to customers and submission alerts to the office.
package notify

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// ErrNoRecipients is returned when an email has nobody to go to.
var ErrNoRecipients = errors.New("email has no recipients")

// Attachment is a file sent along with an email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Email is a single outgoing message.
type Email struct {
	To          []string
	Cc          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Recipients returns every non-blank address of the message.
func (e Email) Recipients() []string {
	out := make([]string, 0, len(e.To)+len(e.Cc))
	for _, addr := range append(append([]string{}, e.To...), e.Cc...) {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Mailer sends emails.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// LogMailer writes outgoing emails to the log instead of delivering them.
// It stands in for a delivery provider in development and tests.
type LogMailer struct {
	from   string
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(from string, logger *zap.Logger) *LogMailer {
	return &LogMailer{from: from, logger: logger}
}

// Send logs the message envelope.
func (m *LogMailer) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	recipients := email.Recipients()
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	names := make([]string, 0, len(email.Attachments))
	for _, a := range email.Attachments {
		names = append(names, a.Filename)
	}

	m.logger.Info("Email queued",
		zap.String("from", m.from),
		zap.Strings("to", recipients),
		zap.String("subject", email.Subject),
		zap.Int("bodyBytes", len(email.HTMLBody)),
		zap.Strings("attachments", names),
	)
	return nil
}
