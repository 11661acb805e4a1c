package domain

import (
	"sort"
	"strings"
)

// Filter narrows the task list shown on the board. All set dimensions are
// AND-combined; an unset dimension matches every task.
type Filter struct {
	// Search matches case-insensitively against title or description.
	Search string
	// Owner must equal the task owner exactly (case-sensitive).
	Owner string
	// Status must equal the task status exactly.
	Status Status
}

// Matches reports whether the task passes every set filter dimension.
func (f Filter) Matches(task Task) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(task.Title), needle) &&
			!strings.Contains(strings.ToLower(task.Description), needle) {
			return false
		}
	}
	if f.Owner != "" && task.Owner != f.Owner {
		return false
	}
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	return true
}

// VisibleTasks returns the filtered, ordered task list for display.
//
// Urgent tasks sort strictly before non-urgent ones; within the same urgency
// group tasks order by ascending due date. Equal due dates fall back to id
// order so the result is deterministic regardless of input order. The input
// slice is never mutated.
func VisibleTasks(tasks []Task, f Filter) []Task {
	visible := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			visible = append(visible, task)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.IsUrgent != b.IsUrgent {
			return a.IsUrgent
		}
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.ID < b.ID
	})
	return visible
}

// Owners lists the distinct owner labels present in the task list, in order
// of first appearance. The dashboard offers these as selectable filters.
func Owners(tasks []Task) []string {
	seen := make(map[string]struct{}, len(tasks))
	var owners []string
	for _, task := range tasks {
		if task.Owner == "" {
			continue
		}
		if _, ok := seen[task.Owner]; ok {
			continue
		}
		seen[task.Owner] = struct{}{}
		owners = append(owners, task.Owner)
	}
	return owners
}
