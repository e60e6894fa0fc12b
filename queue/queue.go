package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/protokoll/logger"
	"github.com/skillsenselab/protokoll/redis"
)

const (
	// DefaultListKey is the Redis list the queue pushes tasks onto.
	DefaultListKey = "protokoll:tasks"
	// DefaultStatePrefix prefixes per-task state keys.
	DefaultStatePrefix = "protokoll:task"
	// DefaultStateTTL bounds how long terminal task state is kept.
	DefaultStateTTL = 7 * 24 * time.Hour
)

// Options tunes a Queue. Zero values get the package defaults.
type Options struct {
	ListKey     string
	StatePrefix string
	StateTTL    time.Duration
	Logger      *logger.Logger
}

// Queue enqueues pipeline tasks on a Redis list and tracks their state.
type Queue struct {
	client   *redis.Client
	states   *redis.TypedStore[TaskState]
	listKey  string
	stateTTL time.Duration
	log      *logger.Logger
	now      func() time.Time
}

// New creates a Queue over the given Redis client.
func New(client *redis.Client, opts Options) *Queue {
	if opts.ListKey == "" {
		opts.ListKey = DefaultListKey
	}
	if opts.StatePrefix == "" {
		opts.StatePrefix = DefaultStatePrefix
	}
	if opts.StateTTL == 0 {
		opts.StateTTL = DefaultStateTTL
	}
	if opts.Logger == nil {
		opts.Logger = logger.WithComponent("queue")
	}
	return &Queue{
		client:   client,
		states:   redis.NewTypedStore[TaskState](client, opts.StatePrefix),
		listKey:  opts.ListKey,
		stateTTL: opts.StateTTL,
		log:      opts.Logger,
		now:      time.Now,
	}
}

// Enqueue creates a pending task for the URL and pushes it onto the
// list. The returned state carries the task ID clients poll with.
func (q *Queue) Enqueue(ctx context.Context, url string) (*TaskState, error) {
	state := &TaskState{
		ID:         uuid.NewString(),
		URL:        url,
		Status:     TaskPending,
		EnqueuedAt: q.now().UTC(),
	}
	if err := q.states.Save(ctx, state.ID, state, q.stateTTL); err != nil {
		return nil, fmt.Errorf("queue enqueue: %w", err)
	}

	data, err := json.Marshal(Task{ID: state.ID, URL: state.URL})
	if err != nil {
		return nil, fmt.Errorf("queue enqueue marshal: %w", err)
	}
	if err := q.client.LPush(ctx, q.listKey, string(data)); err != nil {
		return nil, fmt.Errorf("queue enqueue push: %w", err)
	}

	q.log.Info("task enqueued", logger.Fields(
		logger.FieldTaskID, state.ID,
		logger.FieldURL, url,
	))
	return state, nil
}

// Dequeue blocks up to timeout for the next task. It returns (nil, nil)
// when the timeout elapses with an empty list.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Task, error) {
	res, err := q.client.BRPop(ctx, timeout, q.listKey)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("queue dequeue: %w", err)
	}
	// BRPop returns [key, value]
	if len(res) != 2 {
		return nil, fmt.Errorf("queue dequeue: unexpected reply of %d elements", len(res))
	}

	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("queue dequeue unmarshal: %w", err)
	}
	return &task, nil
}

// State returns the state for a task ID, or (nil, nil) if unknown.
func (q *Queue) State(ctx context.Context, id string) (*TaskState, error) {
	return q.states.Load(ctx, id)
}

// SetState overwrites a task's state.
func (q *Queue) SetState(ctx context.Context, state *TaskState) error {
	return q.states.Save(ctx, state.ID, state, q.stateTTL)
}

// Len returns the number of pending tasks on the list.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.listKey)
}

// IsAvailable reports whether the backing Redis is reachable.
func (q *Queue) IsAvailable(ctx context.Context) bool {
	return q.client.IsAvailable(ctx)
}
