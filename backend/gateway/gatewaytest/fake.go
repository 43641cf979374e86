// Package gatewaytest provides an in-memory stand-in for the webhook
// gateway so the API layer and the CLI can be tested without a reachable
// automation endpoint.
package gatewaytest

import (
	"context"
	"sort"
	"sync"

	"github.com/kvisle/taskbridge/backend/gateway"
	"github.com/kvisle/taskbridge/backend/task"
)

var _ gateway.Client = (*Fake)(nil)

// Fake implements gateway.Client against a map of canned tasks. Behaviors
// can be overridden per call by setting the error fields.
type Fake struct {
	mu    sync.Mutex
	tasks map[string]task.Task

	// Reply is returned by SendMessage.
	Reply string

	// Unavailable makes every call fail with ErrUpstreamUnavailable,
	// simulating an unreachable webhook.
	Unavailable bool

	// Err, when set, is returned by the next call regardless of input.
	Err error

	// Calls records the operations performed, in order.
	Calls []string
}

func NewFake(tasks ...task.Task) *Fake {
	fake := &Fake{
		tasks: make(map[string]task.Task, len(tasks)),
		Reply: "ok",
	}
	for _, t := range tasks {
		fake.tasks[t.Name] = t
	}
	return fake
}

func (f *Fake) fail(op string) error {
	f.Calls = append(f.Calls, op)
	if f.Unavailable {
		return gateway.ErrUpstreamUnavailable
	}
	return f.Err
}

func (f *Fake) ListTasks(_ context.Context, status task.Status) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("listTasks"); err != nil {
		return nil, err
	}

	var tasks []task.Task
	for _, t := range f.tasks {
		if status == "" || t.Status == status {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Name < tasks[j].Name })
	return tasks, nil
}

func (f *Fake) CreateTask(_ context.Context, t task.Task) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("createTask"); err != nil {
		return task.Task{}, err
	}

	f.tasks[t.Name] = t
	return t, nil
}

func (f *Fake) UpdateTask(_ context.Context, name string, update task.Update) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("updateTask"); err != nil {
		return task.Task{}, err
	}

	existing, ok := f.tasks[name]
	if !ok {
		return task.Task{}, gateway.ErrNotFound
	}
	updated := update.Apply(existing)
	f.tasks[name] = updated
	return updated, nil
}

func (f *Fake) DeleteTask(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("deleteTask"); err != nil {
		return err
	}

	if _, ok := f.tasks[name]; !ok {
		return gateway.ErrNotFound
	}
	delete(f.tasks, name)
	return nil
}

func (f *Fake) SendMessage(_ context.Context, text, sessionID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("sendMessage"); err != nil {
		return "", err
	}
	return f.Reply, nil
}

func (f *Fake) GetStats(_ context.Context) (task.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("getStats"); err != nil {
		return task.Stats{}, err
	}

	tasks := make([]task.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		tasks = append(tasks, t)
	}
	return task.StatsFromTasks(tasks), nil
}

func (f *Fake) HealthCheck(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail("healthCheck")
}
