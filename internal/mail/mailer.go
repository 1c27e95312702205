// Package mail delivers transactional email for the API.
package mail

import (
	"context"
	"log/slog"
)

// Sender delivers a single email message.
type Sender interface {
	Send(ctx context.Context, to, subject, textBody string) error
}

// LogSender is the fallback used when no provider is configured; it logs
// the message instead of delivering it.
type LogSender struct {
	Logger *slog.Logger
}

// Send logs the outgoing message.
func (s LogSender) Send(ctx context.Context, to, subject, textBody string) error {
	s.Logger.Info("mail delivery skipped, no provider configured",
		slog.String("to", to), slog.String("subject", subject))
	return nil
}
