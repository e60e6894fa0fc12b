// Package redis provides a Redis client wrapper built on go-redis with
// structured logging and connection pooling.
//
// The queue package uses it as the task broker (list push/pop) and as
// the task state backend. TypedStore layers generic JSON-serialized
// get/set operations on top:
//
//	store := redis.NewTypedStore[queue.TaskState](client, "tasks")
//	store.Save(ctx, taskID, &state, 0)
//
// For ad-hoc typed operations, use GetJSON/SetJSON on the Client directly.
package redis
