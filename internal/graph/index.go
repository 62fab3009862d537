// Package graph builds per-operation adjacency views over a project's tasks
// and links. Indexes are derived, never persisted; callers rebuild them from
// a fresh store read for each operation.
package graph

import "github.com/cosebhq/ganttd/internal/domain"

// ChildIndex maps a parent task id to its child ids in listing order.
type ChildIndex map[string][]string

// BuildChildIndex derives the parent→children adjacency from a project's
// full task set. Root tasks are indexed under their literal parent sentinel.
func BuildChildIndex(tasks []*domain.Task) ChildIndex {
	idx := make(ChildIndex, len(tasks))
	for _, t := range tasks {
		idx[t.Parent] = append(idx[t.Parent], t.ID)
	}
	return idx
}

// Children returns the child ids of parent. Absence means no children.
func (idx ChildIndex) Children(parent string) []string {
	return idx[parent]
}

// Subtree collects root and every transitive descendant, breadth-first.
// The traversal tracks visited ids so it terminates even if parent pointers
// form a cycle, which the store cannot rule out.
func (idx ChildIndex) Subtree(root string) []string {
	visited := map[string]bool{root: true}
	order := []string{root}
	queue := []string{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range idx[current] {
			if visited[child] {
				continue
			}
			visited[child] = true
			order = append(order, child)
			queue = append(queue, child)
		}
	}
	return order
}

// LinkIndex maps a source task id to its outgoing links.
type LinkIndex map[string][]domain.Link

// BuildLinkIndex derives the source→links adjacency from a project's links.
func BuildLinkIndex(links []domain.Link) LinkIndex {
	idx := make(LinkIndex, len(links))
	for _, l := range links {
		idx[l.Source] = append(idx[l.Source], l)
	}
	return idx
}

// Outgoing returns the links whose source is taskID. Absence means none.
func (idx LinkIndex) Outgoing(taskID string) []domain.Link {
	return idx[taskID]
}
