package pipeline

// Status is the terminal outcome of a pipeline run.
type Status string

const (
	// StatusSuccess means the protocol was persisted (or already existed).
	StatusSuccess Status = "success"
	// StatusFailure means the run failed before the protocol was persisted.
	StatusFailure Status = "failure"
)

// State names a pipeline driver state.
type State string

const (
	StateAcquiring    State = "ACQUIRING"
	StateDiarizing    State = "DIARIZING"
	StateTranscribing State = "TRANSCRIBING"
	StateDone         State = "DONE"
	StateFailed       State = "FAILED"
)

// RunResult is the external surface of one pipeline run, consumed by
// the task queue worker and the CLI.
type RunResult struct {
	// Status is success or failure.
	Status Status `json:"status"`
	// JobDir is the job working directory, when one was resolved. It is
	// set even on failure so callers can inspect partial artifacts.
	JobDir string `json:"job_dir,omitempty"`
	// ProtocolPath is the path of the persisted protocol.json. Set only
	// on success.
	ProtocolPath string `json:"protocol_file,omitempty"`
	// Error is the human-readable failure message. Set only on failure.
	Error string `json:"error,omitempty"`
}
