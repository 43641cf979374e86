// Package task holds the task-tracking data model shared by the gateway,
// the API layer, and the CLI. The external store is the source of truth;
// these types only describe the wire shape.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Status is one of the fixed lifecycle labels understood by the external
// store.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists all valid lifecycle labels in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// ParseStatus normalizes user input into a Status. It accepts any casing
// and treats "-" and "_" as spaces, so "in_progress" and "In-Progress"
// both resolve to StatusInProgress.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", " ", "_", " ").Replace(normalized)

	for _, status := range Statuses() {
		if normalized == string(status) {
			return status, nil
		}
	}

	return "", fmt.Errorf("invalid status %q (must be one of TODO, IN PROGRESS, DONE)", s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// DeadlineLayout is the date format the external store expects.
const DeadlineLayout = "2006-01-02"

// ValidateDeadline checks that a deadline string is a YYYY-MM-DD date.
// An empty deadline is allowed.
func ValidateDeadline(deadline string) error {
	if deadline == "" {
		return nil
	}
	if _, err := time.Parse(DeadlineLayout, deadline); err != nil {
		return fmt.Errorf("invalid deadline %q (must be YYYY-MM-DD)", deadline)
	}
	return nil
}

// Task is a single entry in the external store, keyed by name.
type Task struct {
	Name        string `json:"task_name"`
	Status      Status `json:"status"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

// Update carries the mutable fields of a task. Nil fields are left
// untouched by the external store.
type Update struct {
	Status      *Status `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

// IsZero reports whether the update carries no fields at all.
func (u Update) IsZero() bool {
	return u.Status == nil && u.Description == nil && u.Deadline == nil
}

// Apply merges the update into a copy of t.
func (u Update) Apply(t Task) Task {
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Deadline != nil {
		t.Deadline = *u.Deadline
	}
	return t
}

// Stats is the read-only aggregate relayed from the external store.
type Stats struct {
	Total          int            `json:"total_tasks"`
	ByStatus       map[Status]int `json:"by_status"`
	CompletionRate float64        `json:"completion_rate"`
}

// StatsFromTasks derives the aggregate from a task list, mirroring what the
// external automation reports when asked for statistics.
func StatsFromTasks(tasks []Task) Stats {
	stats := Stats{
		Total:    len(tasks),
		ByStatus: make(map[Status]int, len(Statuses())),
	}
	for _, status := range Statuses() {
		stats.ByStatus[status] = 0
	}
	for _, t := range tasks {
		stats.ByStatus[t.Status]++
	}
	if stats.Total > 0 {
		rate := float64(stats.ByStatus[StatusDone]) / float64(stats.Total) * 100
		stats.CompletionRate = float64(int(rate*100+0.5)) / 100
	}
	return stats
}
