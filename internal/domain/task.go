package domain

import "time"

// RootParent is the legacy sentinel the gantt frontend sends for top-level
// tasks. IsRoot accepts both it and the empty string.
const RootParent = "0"

type Task struct {
	ID          string
	ProjectID   string
	Text        string
	Description string

	// Schedule. Start/End move as the task is rescheduled or completed;
	// BaseStart/BaseEnd are fixed at creation and drive lateness detection.
	Start     time.Time
	End       time.Time
	BaseStart time.Time
	BaseEnd   time.Time

	Parent         string
	Assignee       string
	Progress       float64
	Classification string
	Type           string
	Open           bool
	Status         TaskStatus

	CreatedBy string
	CreatedAt time.Time
	UpdatedBy string
	UpdatedAt time.Time

	Manual string
	Report string
}

// IsRoot reports whether the task sits at the top of its project tree.
func (t *Task) IsRoot() bool {
	return t.Parent == "" || t.Parent == RootParent
}

// Completed reports whether the task has reached a terminal state, either
// on time or past its baseline end.
func (t *Task) Completed() bool {
	return t.Status == StatusCompleted
}

// PastBaseline reports whether now falls strictly after the baseline end.
func (t *Task) PastBaseline(now time.Time) bool {
	return now.After(t.BaseEnd)
}

type Comment struct {
	ID        string
	TaskID    string
	Content   string
	Author    string
	CreatedAt time.Time
}
