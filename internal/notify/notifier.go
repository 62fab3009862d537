package notify

import (
	"context"
	"io"
	"log/slog"

	"github.com/cosebhq/ganttd/internal/domain"
)

// Notifier delivers a single notification to an email-identified recipient.
// Implementations are expected to return promptly; delivery transport is
// outside this package.
type Notifier interface {
	Notify(ctx context.Context, intent domain.NotificationIntent) error
}

// NoopNotifier discards all notifications.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, domain.NotificationIntent) error { return nil }

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier writes each notification to the provided writer. It stands
// in for a real delivery transport in development and tests.
func NewLogNotifier(w io.Writer) Notifier {
	if w == nil {
		return NoopNotifier{}
	}
	return &logNotifier{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (n *logNotifier) Notify(ctx context.Context, intent domain.NotificationIntent) error {
	n.logger.InfoContext(ctx, "notification",
		"recipient", intent.Recipient,
		"kind", string(intent.Kind),
		"task_id", intent.TaskID,
		"task", intent.TaskText,
	)
	return nil
}
