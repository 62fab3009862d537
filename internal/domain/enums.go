package domain

type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusStarted    TaskStatus = "started"
	StatusCompleted  TaskStatus = "completed"
)

// ValidTaskStatuses is the canonical set of accepted lifecycle statuses.
var ValidTaskStatuses = map[string]bool{
	"not_started": true, "started": true, "completed": true,
}

// Kind values written alongside status on completion. Task.Type is otherwise
// a free-form tag supplied by the caller.
const (
	KindCompleted = "completed"
	KindExceeded  = "exceeded"
)

type NotificationKind string

const (
	NotifyTaskStarted   NotificationKind = "task_started"
	NotifyTaskCompleted NotificationKind = "task_completed"
	NotifyNextTaskReady NotificationKind = "next_task_ready"
)
