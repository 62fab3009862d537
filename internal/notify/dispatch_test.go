package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/cosebhq/ganttd/internal/domain"
	"github.com/cosebhq/ganttd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversInOrder(t *testing.T) {
	recorder := testutil.NewRecordingNotifier()
	d := NewDispatcher(recorder, nil, 0)

	d.Dispatch(context.Background(), []domain.NotificationIntent{
		{Recipient: "a@example.com", Kind: domain.NotifyNextTaskReady, TaskID: "t1"},
		{Recipient: "b@example.com", Kind: domain.NotifyTaskCompleted, TaskID: "t2"},
	})

	sent := recorder.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@example.com", sent[0].Recipient)
	assert.Equal(t, "b@example.com", sent[1].Recipient)
}

func TestDispatcher_FailureIsIsolatedAndLogged(t *testing.T) {
	recorder := testutil.NewRecordingNotifier()
	recorder.FailFor("broken@example.com")

	var log bytes.Buffer
	d := NewDispatcher(recorder, &log, 0)

	d.Dispatch(context.Background(), []domain.NotificationIntent{
		{Recipient: "broken@example.com", Kind: domain.NotifyTaskStarted, TaskID: "t1"},
		{Recipient: "fine@example.com", Kind: domain.NotifyTaskStarted, TaskID: "t1"},
	})

	sent := recorder.Sent()
	require.Len(t, sent, 1, "a failed delivery must not stop the rest")
	assert.Equal(t, "fine@example.com", sent[0].Recipient)

	assert.Contains(t, log.String(), "notification failed")
	assert.Contains(t, log.String(), "broken@example.com")
}

func TestDispatcher_NilNotifierIsNoop(t *testing.T) {
	d := NewDispatcher(nil, nil, 0)
	// Must not panic.
	d.Dispatch(context.Background(), []domain.NotificationIntent{
		{Recipient: "anyone@example.com", Kind: domain.NotifyTaskStarted},
	})
}

func TestLogNotifier_WritesIntent(t *testing.T) {
	var out bytes.Buffer
	n := NewLogNotifier(&out)

	err := n.Notify(context.Background(), domain.NotificationIntent{
		Recipient: "a@example.com",
		Kind:      domain.NotifyNextTaskReady,
		TaskID:    "t9",
		TaskText:  "Pour concrete",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "a@example.com")
	assert.Contains(t, out.String(), "next_task_ready")
}
