// Package queue provides the Redis-backed task queue that runs pipeline
// jobs asynchronously.
//
// Submitting a URL enqueues a task on a Redis list and records its
// state under a task ID. A Worker pops tasks with a blocking read, runs
// the pipeline, and writes the terminal state back, so clients can poll
// task status while the job runs. Retry policy lives here, not in the
// pipeline: the driver never retries, and the default worker does not
// either, it records the failure verbatim.
package queue
