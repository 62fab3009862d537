package notify

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cosebhq/ganttd/internal/domain"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 5 * time.Second

// Dispatcher executes notification intents against a Notifier. Each intent
// is isolated: a failure or timeout is logged at WARN and never stops the
// remaining intents or surfaces to the caller. The triggering write must be
// committed before Dispatch is called.
type Dispatcher struct {
	notifier Notifier
	logger   *slog.Logger
	timeout  time.Duration
}

// NewDispatcher creates a Dispatcher logging swallowed failures to w.
func NewDispatcher(notifier Notifier, w io.Writer, timeout time.Duration) *Dispatcher {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var logger *slog.Logger
	if w == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return &Dispatcher{notifier: notifier, logger: logger, timeout: timeout}
}

// Dispatch sends every intent best-effort, in order.
func (d *Dispatcher) Dispatch(ctx context.Context, intents []domain.NotificationIntent) {
	for _, intent := range intents {
		d.dispatchOne(ctx, intent)
	}
}

func (d *Dispatcher) dispatchOne(ctx context.Context, intent domain.NotificationIntent) {
	nctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.notifier.Notify(nctx, intent); err != nil {
		d.logger.WarnContext(ctx, "notification failed",
			"recipient", intent.Recipient,
			"kind", string(intent.Kind),
			"task_id", intent.TaskID,
			"error", err.Error(),
		)
	}
}
