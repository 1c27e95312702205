// Package jobs defines background tasks and the Asynq worker that runs them.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/AhmedDR200/Library-API/internal/mail"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeResetEmail is the task type for password-reset link delivery.
	TaskTypeResetEmail = "auth:reset_email"
)

// ResetEmailPayload describes a password-reset email to deliver.
type ResetEmailPayload struct {
	To        string `json:"to"`
	ResetLink string `json:"resetLink"`
}

// NewResetEmailTask constructs an Asynq task.
func NewResetEmailTask(payload ResetEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeResetEmail, data), nil
}

// ResetEmailHandler processes TaskTypeResetEmail tasks.
type ResetEmailHandler struct {
	sender mail.Sender
	logger *slog.Logger
}

// NewResetEmailHandler constructs the handler.
func NewResetEmailHandler(sender mail.Sender, logger *slog.Logger) *ResetEmailHandler {
	return &ResetEmailHandler{sender: sender, logger: logger}
}

// Handle delivers the reset email. Malformed payloads are dropped rather
// than retried.
func (h *ResetEmailHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ResetEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("reset email payload", slog.Any("error", err))
		return asynq.SkipRetry
	}

	subject := "Reset your Library API password"
	body := fmt.Sprintf(`We received a request to reset your password.

Open the link below to choose a new password:
%s

The link expires in one hour. If you did not request a reset, you can
safely ignore this email.
`, payload.ResetLink)

	if err := h.sender.Send(ctx, payload.To, subject, body); err != nil {
		return err
	}
	h.logger.Info("reset email delivered", slog.String("to", payload.To))
	return nil
}
