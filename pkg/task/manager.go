package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status shows what state a task is in
type Status string

const (
	StatusPending    Status = "pending"    // waiting to start
	StatusProcessing Status = "processing" // currently running
	StatusCompleted  Status = "completed"  // finished successfully
	StatusFailed     Status = "failed"     // something went wrong
)

// Task represents a batch job that might take a while, like pulling
// transcripts for a whole playlist
type Task struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`                    // what kind of task
	Status       Status      `json:"status"`                  // current state
	Progress     float32     `json:"progress"`                // 0-100 percent done
	CreatedAt    time.Time   `json:"created_at"`              // when it started
	StartedAt    time.Time   `json:"started_at,omitempty"`    // when processing began
	CompletedAt  time.Time   `json:"completed_at,omitempty"`  // when it finished
	Message      string      `json:"message,omitempty"`       // status updates
	ErrorMessage string      `json:"error_message,omitempty"` // what went wrong
	Result       interface{} `json:"result,omitempty"`        // final results
}

// Manager keeps track of tasks. Constructed and passed where needed rather
// than held in a package global.
type Manager struct {
	tasks map[string]*Task
	mu    sync.RWMutex // for thread safety
}

// NewManager sets up an empty task manager
func NewManager() *Manager {
	return &Manager{
		tasks: make(map[string]*Task),
	}
}

// Create makes a new task and returns its ID
func (m *Manager) Create(taskType string) string {
	taskID := uuid.New().String()
	t := &Task{
		ID:        taskID,
		Type:      taskType,
		Status:    StatusPending,
		Progress:  0,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.tasks[taskID] = t
	m.mu.Unlock()

	return taskID
}

// Get retrieves task info by ID
func (m *Manager) Get(taskID string) (*Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, exists := m.tasks[taskID]
	return t, exists
}

// List returns all known tasks, in no particular order
func (m *Manager) List() []*Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	return out
}

// UpdateStatus changes the task status
func (m *Manager) UpdateStatus(taskID string, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, exists := m.tasks[taskID]
	if !exists {
		return
	}

	t.Status = status
	if status == StatusProcessing && t.StartedAt.IsZero() {
		t.StartedAt = time.Now()
	}
	if status == StatusCompleted || status == StatusFailed {
		t.CompletedAt = time.Now()
	}
}

// UpdateProgress updates how much of the task is done
func (m *Manager) UpdateProgress(taskID string, progress float32, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, exists := m.tasks[taskID]
	if !exists {
		return
	}

	t.Progress = progress
	t.Message = message
}

// SetError marks task as failed with error message
func (m *Manager) SetError(taskID string, errorMessage string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, exists := m.tasks[taskID]
	if !exists {
		return
	}

	t.Status = StatusFailed
	t.ErrorMessage = errorMessage
	t.CompletedAt = time.Now()
}

// SetResult stores the final result and marks the task completed
func (m *Manager) SetResult(taskID string, result interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, exists := m.tasks[taskID]
	if !exists {
		return
	}

	t.Result = result
	t.Status = StatusCompleted
	t.CompletedAt = time.Now()
}
