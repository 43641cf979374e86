package cmd

import (
	"fmt"
	"strconv"

	"github.com/kvisle/taskbridge/backend/task"
	"github.com/kvisle/taskbridge/frontend/cli/pkg/apiclient"
	"github.com/kvisle/taskbridge/frontend/cli/pkg/terminal"
)

type TaskDisplay struct {
	Name        string `json:"task_name"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

func ConvertTaskToDisplay(t task.Task) *TaskDisplay {
	return &TaskDisplay{
		Name:        t.Name,
		Status:      string(t.Status),
		Description: t.Description,
		Deadline:    t.Deadline,
	}
}

type TaskList []*TaskDisplay

func ConvertTasksToDisplay(tasks []task.Task) TaskList {
	displays := make(TaskList, len(tasks))
	for i, t := range tasks {
		displays[i] = ConvertTaskToDisplay(t)
	}
	return displays
}

func (l TaskList) TableHeader() []string {
	return []string{"NAME", "STATUS", "DESCRIPTION", "DEADLINE"}
}

func (l TaskList) TableRows() [][]string {
	rows := make([][]string, len(l))
	for i, t := range l {
		rows[i] = []string{
			t.Name,
			terminal.ColorStatus(task.Status(t.Status)),
			t.Description,
			t.Deadline,
		}
	}
	return rows
}

type StatsDisplay struct {
	Total          int            `json:"total_tasks"`
	ByStatus       map[string]int `json:"by_status"`
	CompletionRate float64        `json:"completion_rate"`
}

func ConvertStatsToDisplay(stats task.Stats) *StatsDisplay {
	display := &StatsDisplay{
		Total:          stats.Total,
		ByStatus:       make(map[string]int, len(stats.ByStatus)),
		CompletionRate: stats.CompletionRate,
	}
	for status, count := range stats.ByStatus {
		display.ByStatus[string(status)] = count
	}
	return display
}

func (d *StatsDisplay) TableHeader() []string {
	return []string{"METRIC", "VALUE"}
}

func (d *StatsDisplay) TableRows() [][]string {
	rows := [][]string{
		{"Total tasks", strconv.Itoa(d.Total)},
	}
	for _, status := range task.Statuses() {
		rows = append(rows, []string{
			terminal.ColorStatus(status),
			strconv.Itoa(d.ByStatus[string(status)]),
		})
	}
	rows = append(rows, []string{"Completion rate", fmt.Sprintf("%.2f%%", d.CompletionRate)})
	return rows
}

type HealthDisplay struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}

func ConvertHealthToDisplay(health apiclient.Health) *HealthDisplay {
	return &HealthDisplay{
		Status:   health.Status,
		Version:  health.Version,
		Services: health.Services,
	}
}

func (d *HealthDisplay) String() string {
	symbol := terminal.SuccessSymbol
	if d.Status != "healthy" {
		symbol = terminal.WarningSymbol
	}
	return fmt.Sprintf("%s API status: %s (webhook: %s)", symbol, d.Status, d.Services["webhook"])
}

type MessageDisplay struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func (d *MessageDisplay) String() string {
	return d.Response
}
