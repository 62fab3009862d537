package domain

// Link is a directed dependency edge between two tasks in the same project.
// Links are stored per project and replaced wholesale; duplicates of
// (source, target, type) are legal. Endpoints are not validated against the
// task set — the cascade deleter guarantees no link survives the deletion
// of either endpoint, but a link may reference a task that was never created.
type Link struct {
	ID        string
	ProjectID string
	Source    string
	Target    string
	Type      string
}

// Common link type tags used by the gantt frontend. The field itself is
// free-form.
const (
	LinkFinishToStart = "finish-to-start"
	LinkStartToStart  = "start-to-start"
)
