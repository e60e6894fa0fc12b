package queue

import "time"

// TaskStatus is the lifecycle state of a queued task.
type TaskStatus string

const (
	// TaskPending means enqueued, not yet picked up by a worker.
	TaskPending TaskStatus = "pending"
	// TaskRunning means a worker is executing the pipeline.
	TaskRunning TaskStatus = "running"
	// TaskSuccess means the pipeline finished and the protocol exists.
	TaskSuccess TaskStatus = "success"
	// TaskFailure means the pipeline failed; Error holds the message.
	TaskFailure TaskStatus = "failure"
)

// Task is the wire format pushed onto the Redis list.
type Task struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// TaskState is the queryable state of a task, kept in Redis under the
// task ID. Terminal states carry either the protocol path or the error
// message, never both.
type TaskState struct {
	ID           string     `json:"id"`
	URL          string     `json:"url"`
	Status       TaskStatus `json:"status"`
	ProtocolPath string     `json:"protocol_file,omitempty"`
	Error        string     `json:"error,omitempty"`
	EnqueuedAt   time.Time  `json:"enqueued_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// Terminal reports whether the task has finished, successfully or not.
func (s *TaskState) Terminal() bool {
	return s.Status == TaskSuccess || s.Status == TaskFailure
}
