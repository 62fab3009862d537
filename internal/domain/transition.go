package domain

import "time"

// StatusEvent is an incoming status-change request after authorization.
type StatusEvent struct {
	Status   TaskStatus
	Progress float64
	Actor    string
	Now      time.Time
}

// Completes reports whether the event closes the task, either by explicit
// completed status or by progress reaching 100.
func (ev StatusEvent) Completes() bool {
	return ev.Status == StatusCompleted || ev.Progress == 100
}

// SuccessorRef identifies a downstream task reachable over an outgoing link,
// resolved by the caller before the transition is applied.
type SuccessorRef struct {
	TaskID   string
	Text     string
	Assignee string
}

// NotificationIntent is a deferred notification produced by a status
// transition. Dispatch happens after the triggering write is committed and
// is best-effort.
type NotificationIntent struct {
	Recipient string
	Kind      NotificationKind
	TaskID    string
	TaskText  string
}

// ApplyStatusEvent mutates the task per the status state machine and returns
// the notification intents the transition implies. successors are the
// distinct downstream tasks over outgoing links; only email-shaped
// recipients yield intents.
//
// Rules:
//   - status and progress always take the caller-supplied values verbatim
//     (progress is not clamped).
//   - an explicit move to "started" with zero progress from "not_started"
//     notifies the creator that work has begun.
//   - "completed" status or progress reaching 100 closes the task: End is
//     stamped with now and Type records "completed", or "exceeded" when now
//     is strictly past BaseEnd. Closing fans out next_task_ready to each
//     successor assignee and task_completed to the creator.
func (t *Task) ApplyStatusEvent(ev StatusEvent, successors []SuccessorRef) []NotificationIntent {
	startedNow := t.Status == StatusNotStarted && ev.Status == StatusStarted && ev.Progress == 0
	completedNow := ev.Completes()

	t.Status = ev.Status
	t.Progress = ev.Progress
	t.UpdatedAt = ev.Now
	t.UpdatedBy = ev.Actor

	var intents []NotificationIntent

	if startedNow && IsEmailAddress(t.CreatedBy) {
		intents = append(intents, NotificationIntent{
			Recipient: t.CreatedBy,
			Kind:      NotifyTaskStarted,
			TaskID:    t.ID,
			TaskText:  t.Text,
		})
	}

	if completedNow {
		t.End = ev.Now
		if t.PastBaseline(ev.Now) {
			t.Type = KindExceeded
		} else {
			t.Type = KindCompleted
		}

		seen := make(map[string]bool, len(successors))
		for _, succ := range successors {
			if seen[succ.TaskID] {
				continue
			}
			seen[succ.TaskID] = true
			if !IsEmailAddress(succ.Assignee) {
				continue
			}
			intents = append(intents, NotificationIntent{
				Recipient: succ.Assignee,
				Kind:      NotifyNextTaskReady,
				TaskID:    succ.TaskID,
				TaskText:  succ.Text,
			})
		}

		if IsEmailAddress(t.CreatedBy) {
			intents = append(intents, NotificationIntent{
				Recipient: t.CreatedBy,
				Kind:      NotifyTaskCompleted,
				TaskID:    t.ID,
				TaskText:  t.Text,
			})
		}
	}

	return intents
}
