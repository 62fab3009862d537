package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/cosebhq/ganttd/internal/domain"
	"github.com/cosebhq/ganttd/internal/graph"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeGap    = "   "
)

func shortDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// TaskTree renders a project's tasks as an indented hierarchy. Tasks whose
// parent is absent from the set are treated as roots so a partial listing
// still renders.
func TaskTree(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}

	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	index := graph.BuildChildIndex(tasks)

	var roots []*domain.Task
	for _, t := range tasks {
		if t.IsRoot() || byID[t.Parent] == nil {
			roots = append(roots, t)
		}
	}

	var b strings.Builder
	for i, root := range roots {
		renderTaskNode(&b, root, byID, index, "", i == len(roots)-1, true)
	}
	return b.String()
}

func renderTaskNode(b *strings.Builder, t *domain.Task, byID map[string]*domain.Task, index graph.ChildIndex, prefix string, isLast, isRoot bool) {
	connector := ""
	childPrefix := prefix
	if !isRoot {
		if isLast {
			connector = treeCorner
			childPrefix = prefix + treeGap
		} else {
			connector = treeBranch
			childPrefix = prefix + treePipe
		}
	}

	title := t.Text
	if t.Completed() {
		title = Dim(title)
	}

	b.WriteString(fmt.Sprintf("%s%s%s %s  %s %s\n",
		prefix, connector,
		Dim(shortID(t.ID)),
		title,
		StatusIndicator(t),
		Dim(fmt.Sprintf("%s → %s  %.0f%%", shortDate(t.Start), shortDate(t.End), t.Progress)),
	))

	children := index.Children(t.ID)
	for i, childID := range children {
		child := byID[childID]
		if child == nil {
			continue
		}
		renderTaskNode(b, child, byID, index, childPrefix, i == len(children)-1, false)
	}
}

// TaskDetail renders a single task with its full field set.
func TaskDetail(t *domain.Task) string {
	var b strings.Builder
	b.WriteString(Header(t.Text) + "\n")

	rows := [][2]string{
		{"ID", t.ID},
		{"Project", t.ProjectID},
		{"Status", StatusIndicator(t)},
		{"Progress", fmt.Sprintf("%.0f%%", t.Progress)},
		{"Schedule", fmt.Sprintf("%s → %s", shortDate(t.Start), shortDate(t.End))},
		{"Baseline", fmt.Sprintf("%s → %s", shortDate(t.BaseStart), shortDate(t.BaseEnd))},
	}
	if t.Description != "" {
		rows = append(rows, [2]string{"Description", t.Description})
	}
	if !t.IsRoot() {
		rows = append(rows, [2]string{"Parent", t.Parent})
	}
	if t.Assignee != "" {
		rows = append(rows, [2]string{"Assignee", t.Assignee})
	}
	if t.Classification != "" {
		rows = append(rows, [2]string{"Classification", t.Classification})
	}
	if t.Type != "" {
		rows = append(rows, [2]string{"Kind", t.Type})
	}
	if t.CreatedBy != "" {
		rows = append(rows, [2]string{"Created by", t.CreatedBy})
	}
	if t.Manual != "" {
		rows = append(rows, [2]string{"Manual", t.Manual})
	}
	if t.Report != "" {
		rows = append(rows, [2]string{"Report", t.Report})
	}

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-15s", row[0])), row[1]))
	}
	return b.String()
}

// TaskTable renders tasks as a flat table, used for assignee listings that
// span projects.
func TaskTable(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			shortID(t.ID),
			t.ProjectID,
			t.Text,
			StatusIndicator(t),
			fmt.Sprintf("%.0f%%", t.Progress),
			shortDate(t.End),
		})
	}
	return RenderTable([]string{"ID", "PROJECT", "TASK", "STATUS", "PROGRESS", "DUE"}, rows)
}

// LinkTable renders a project's dependency links.
func LinkTable(links []domain.Link) string {
	if len(links) == 0 {
		return Dim("No links.") + "\n"
	}
	rows := make([][]string, 0, len(links))
	for _, l := range links {
		rows = append(rows, []string{
			shortID(l.ID),
			shortID(l.Source),
			shortID(l.Target),
			l.Type,
		})
	}
	return RenderTable([]string{"ID", "SOURCE", "TARGET", "TYPE"}, rows)
}

// CommentList renders a task's comments in insertion order.
func CommentList(comments []domain.Comment) string {
	if len(comments) == 0 {
		return Dim("No comments.") + "\n"
	}
	var b strings.Builder
	for _, c := range comments {
		b.WriteString(fmt.Sprintf("%s %s\n  %s\n",
			Bold(c.Author),
			Dim(c.CreatedAt.Format("2006-01-02 15:04")),
			c.Content,
		))
	}
	return b.String()
}
