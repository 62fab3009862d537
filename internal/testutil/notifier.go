package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/cosebhq/ganttd/internal/domain"
)

// RecordingNotifier captures notifications for assertions and can be told to
// fail delivery to specific recipients.
type RecordingNotifier struct {
	mu       sync.Mutex
	sent     []domain.NotificationIntent
	failFor  map[string]bool
	attempts int
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{failFor: make(map[string]bool)}
}

// FailFor makes every delivery to recipient return an error.
func (n *RecordingNotifier) FailFor(recipient string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failFor[recipient] = true
}

func (n *RecordingNotifier) Notify(_ context.Context, intent domain.NotificationIntent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attempts++
	if n.failFor[intent.Recipient] {
		return fmt.Errorf("delivery to %s refused", intent.Recipient)
	}
	n.sent = append(n.sent, intent)
	return nil
}

// Sent returns a copy of the successfully delivered notifications.
func (n *RecordingNotifier) Sent() []domain.NotificationIntent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.NotificationIntent, len(n.sent))
	copy(out, n.sent)
	return out
}

// Attempts returns the total delivery attempts, including failures.
func (n *RecordingNotifier) Attempts() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attempts
}
