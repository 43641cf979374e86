package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kvisle/taskbridge/backend/task"
)

type rootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Health  string `json:"health"`
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

type taskListResponse struct {
	Tasks     []task.Task `json:"tasks"`
	Count     int         `json:"count"`
	Timestamp time.Time   `json:"timestamp"`
}

type taskResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

type messageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type messageResponse struct {
	Response  string    `json:"response"`
	SessionID string    `json:"session_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type statsResponse struct {
	task.Stats
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message: "Task Bridge API",
		Version: h.version,
		Health:  "/health",
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Services:  map[string]string{"webhook": "connected"},
	}

	status := http.StatusOK
	if err := h.gateway.HealthCheck(r.Context()); err != nil {
		response.Status = "degraded"
		response.Services["webhook"] = "disconnected"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, response)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	var filter task.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := task.ParseStatus(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		filter = parsed
	}

	tasks, err := h.gateway.ListTasks(r.Context(), filter)
	if err != nil {
		gatewayError(w, "list tasks", err)
		return
	}

	if tasks == nil {
		tasks = []task.Task{}
	}
	writeJSON(w, http.StatusOK, taskListResponse{
		Tasks:     tasks,
		Count:     len(tasks),
		Timestamp: time.Now().UTC(),
	})
}

type createTaskRequest struct {
	Name        string `json:"task_name"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "task_name is required")
		return
	}

	status := task.StatusTodo
	if req.Status != "" {
		parsed, err := task.ParseStatus(req.Status)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		status = parsed
	}

	if err := task.ValidateDeadline(req.Deadline); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := h.gateway.CreateTask(r.Context(), task.Task{
		Name:        req.Name,
		Status:      status,
		Description: req.Description,
		Deadline:    req.Deadline,
	})
	if err != nil {
		gatewayError(w, "create task", err)
		return
	}

	writeJSON(w, http.StatusCreated, taskResponse{
		Success:   true,
		Message:   fmt.Sprintf("Task %q created successfully", created.Name),
		Data:      created,
		Timestamp: time.Now().UTC(),
	})
}

type updateTaskRequest struct {
	Status      *string `json:"status"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	update := task.Update{
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if req.Status != nil {
		parsed, err := task.ParseStatus(*req.Status)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		update.Status = &parsed
	}
	if req.Deadline != nil {
		if err := task.ValidateDeadline(*req.Deadline); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	if update.IsZero() {
		writeError(w, http.StatusBadRequest, "no fields to update provided")
		return
	}

	updated, err := h.gateway.UpdateTask(r.Context(), name, update)
	if err != nil {
		gatewayError(w, "update task", err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{
		Success:   true,
		Message:   fmt.Sprintf("Task %q updated successfully", name),
		Data:      updated,
		Timestamp: time.Now().UTC(),
	})
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if err := h.gateway.DeleteTask(r.Context(), name); err != nil {
		gatewayError(w, "delete task", err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{
		Success:   true,
		Message:   fmt.Sprintf("Task %q deleted successfully", name),
		Data:      map[string]string{"task_name": name},
		Timestamp: time.Now().UTC(),
	})
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	if req.Message == "" {
		writeError(w, http.StatusUnprocessableEntity, "message is required")
		return
	}

	reply, err := h.gateway.SendMessage(r.Context(), req.Message, req.SessionID)
	if err != nil {
		gatewayError(w, "send message", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Response:  reply,
		SessionID: req.SessionID,
		Timestamp: time.Now().UTC(),
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.gateway.GetStats(r.Context())
	if err != nil {
		gatewayError(w, "get stats", err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Stats:     stats,
		Timestamp: time.Now().UTC(),
	})
}
