// Package apiclient is the CLI's HTTP client for the taskbridge REST API.
// It speaks the exact same contract the API layer exposes; there is no
// separate protocol between the two.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kvisle/taskbridge/backend/task"
)

// DefaultTimeout bounds a CLI call to the API. It exceeds the server's own
// webhook timeout so the server can answer with a proper 502 first.
const DefaultTimeout = 45 * time.Second

// APIError is a non-2xx response from the API, carrying the server's error
// envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsUpstreamFailure reports whether err means the API could not reach the
// automation behind it.
func IsUpstreamFailure(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.StatusCode == http.StatusBadGateway || apiErr.StatusCode == http.StatusGatewayTimeout)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Health reports the API's view of the external store. A degraded body is
// a valid answer, not an error; only transport failures return an error.
type Health struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return Health{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Health{}, err
	}
	defer resp.Body.Close()

	var health Health
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return Health{}, fmt.Errorf("decoding health response: %w", err)
	}
	return health, nil
}

type taskListResponse struct {
	Tasks []task.Task `json:"tasks"`
	Count int         `json:"count"`
}

func (c *Client) ListTasks(ctx context.Context, status string) ([]task.Task, error) {
	path := "/api/v1/tasks"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var response taskListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, err
	}
	return response.Tasks, nil
}

type taskResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    task.Task `json:"data"`
}

func (c *Client) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	var response taskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", t, &response); err != nil {
		return task.Task{}, err
	}
	return response.Data, nil
}

func (c *Client) UpdateTask(ctx context.Context, name string, update task.Update) (task.Task, error) {
	var response taskResponse
	path := "/api/v1/tasks/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodPut, path, update, &response); err != nil {
		return task.Task{}, err
	}
	return response.Data, nil
}

func (c *Client) DeleteTask(ctx context.Context, name string) error {
	path := "/api/v1/tasks/" + url.PathEscape(name)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

type messageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type messageResponse struct {
	Response string `json:"response"`
}

func (c *Client) SendMessage(ctx context.Context, text, sessionID string) (string, error) {
	var response messageResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/message", messageRequest{
		Message:   text,
		SessionID: sessionID,
	}, &response)
	if err != nil {
		return "", err
	}
	return response.Response, nil
}

func (c *Client) Stats(ctx context.Context) (task.Stats, error) {
	var stats task.Stats
	if err := c.do(ctx, http.MethodGet, "/api/v1/stats", nil, &stats); err != nil {
		return task.Stats{}, err
	}
	return stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) *APIError {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return &APIError{StatusCode: status, Message: envelope.Error}
	}
	return &APIError{StatusCode: status, Message: http.StatusText(status)}
}
