package job

// Artifact identifies a fixed-name file inside a job directory.
type Artifact string

const (
	// ArtifactMeta is the source metadata file.
	ArtifactMeta Artifact = "meta_info.json"
	// ArtifactRawAudio is the downloaded audio-only stream.
	ArtifactRawAudio Artifact = "audio.m4a"
	// ArtifactWAVAudio is the converted waveform file fed to the models.
	ArtifactWAVAudio Artifact = "audio.wav"
	// ArtifactDiarization is the cached raw diarization result.
	ArtifactDiarization Artifact = "diarization.json"
	// ArtifactProtocol is the canonical job result. Its existence is the
	// single source of truth for "job complete".
	ArtifactProtocol Artifact = "protocol.json"
	// ArtifactProtocolText is the human-readable protocol rendering.
	ArtifactProtocolText Artifact = "protocol.txt"
)

// SpeakersDir is the subdirectory holding per-turn audio and transcript
// artifacts, one child directory per speaker label.
const SpeakersDir = "speakers"

// Store is the artifact store for one job directory. Exactly one stage
// writes a given artifact; no locking is provided, so callers must
// serialize pipeline runs per job directory.
type Store interface {
	// Dir returns the job directory path this store is keyed by.
	Dir() string
	// Has reports whether the artifact exists.
	Has(a Artifact) bool
	// Load reads the artifact contents.
	Load(a Artifact) ([]byte, error)
	// Save writes the artifact, overwriting any previous contents.
	Save(a Artifact, data []byte) error
	// Path returns the artifact's path without checking existence.
	Path(a Artifact) string
	// SpeakerFile resolves the path for a per-turn artifact under
	// speakers/{speaker}/, creating the speaker directory if needed.
	// Creation is idempotent.
	SpeakerFile(speaker, name string) (string, error)
	// SaveSpeakerFile writes a per-turn artifact under speakers/{speaker}/.
	SaveSpeakerFile(speaker, name string, data []byte) error
}
