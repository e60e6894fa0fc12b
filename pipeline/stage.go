package pipeline

// StageStatus describes how a stage produced its value.
type StageStatus string

const (
	// StageSkipped means the stage's artifact already existed and the
	// cached value was loaded instead of recomputed.
	StageSkipped StageStatus = "skipped"
	// StageComputed means the stage did its work and persisted a fresh
	// artifact.
	StageComputed StageStatus = "computed"
	// StageFailed means the stage failed. Value is the zero value.
	StageFailed StageStatus = "failed"
)

// StageResult is the outcome of one pipeline stage. Resumability is a
// first-class return value: callers can tell a cache hit from a fresh
// computation without re-checking the store.
type StageResult[T any] struct {
	Status StageStatus
	Value  T
	Err    error
}

// Skipped wraps a cached value.
func Skipped[T any](v T) StageResult[T] {
	return StageResult[T]{Status: StageSkipped, Value: v}
}

// Computed wraps a freshly computed value.
func Computed[T any](v T) StageResult[T] {
	return StageResult[T]{Status: StageComputed, Value: v}
}

// Failed wraps a stage error.
func Failed[T any](err error) StageResult[T] {
	return StageResult[T]{Status: StageFailed, Err: err}
}
