package queue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/skillsenselab/protokoll/logger"
	"github.com/skillsenselab/protokoll/redis"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mini.Close() })

	client, err := redis.New(redis.Config{
		Enabled: true,
		Addr:    mini.Addr(),
	}, logger.NewDefault("queue-test"))
	if err != nil {
		t.Fatalf("failed to create redis client: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return New(client, Options{})
}

func TestEnqueueDequeue(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	state, err := q.Enqueue(ctx, "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if state.ID == "" {
		t.Fatal("Enqueue returned empty task ID")
	}
	if state.Status != TaskPending {
		t.Errorf("Status = %q, want pending", state.Status)
	}

	n, err := q.Len(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Len = %d, err %v, want 1", n, err)
	}

	task, err := q.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if task == nil {
		t.Fatal("Dequeue returned nil task")
	}
	if task.ID != state.ID || task.URL != "https://youtu.be/abc" {
		t.Errorf("task = %+v, want id %s", task, state.ID)
	}
}

func TestDequeueOrder(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	first, _ := q.Enqueue(ctx, "https://youtu.be/one")
	second, _ := q.Enqueue(ctx, "https://youtu.be/two")

	got1, err := q.Dequeue(ctx, time.Second)
	if err != nil || got1 == nil {
		t.Fatalf("Dequeue 1: %v %v", got1, err)
	}
	got2, err := q.Dequeue(ctx, time.Second)
	if err != nil || got2 == nil {
		t.Fatalf("Dequeue 2: %v %v", got2, err)
	}
	if got1.ID != first.ID || got2.ID != second.ID {
		t.Errorf("dequeue order = %s, %s; want FIFO %s, %s", got1.ID, got2.ID, first.ID, second.ID)
	}
}

func TestStateRoundTrip(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	state, err := q.Enqueue(ctx, "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	got, err := q.State(ctx, state.ID)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if got == nil || got.Status != TaskPending || got.URL != state.URL {
		t.Fatalf("State = %+v", got)
	}
	if got.Terminal() {
		t.Error("pending task reported terminal")
	}

	now := time.Now().UTC()
	got.Status = TaskSuccess
	got.ProtocolPath = "/data/20260901_Demo/protocol.json"
	got.FinishedAt = &now
	if err := q.SetState(ctx, got); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	final, err := q.State(ctx, state.ID)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if final.Status != TaskSuccess || !final.Terminal() {
		t.Errorf("final = %+v, want terminal success", final)
	}
	if final.ProtocolPath != got.ProtocolPath {
		t.Errorf("ProtocolPath = %q", final.ProtocolPath)
	}
}

func TestStateUnknownID(t *testing.T) {
	q := newTestQueue(t)
	got, err := q.State(context.Background(), "no-such-task")
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if got != nil {
		t.Fatalf("State = %+v, want nil for unknown ID", got)
	}
}
