package job

import (
	"fmt"
	"os"
	"path/filepath"
)

// FSStore is the disk-backed Store used by real pipeline runs.
type FSStore struct {
	dir string
}

// NewFSStore creates the job directory if needed and returns a store
// keyed by it.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create job directory %s: %w", dir, err)
	}
	return &FSStore{dir: dir}, nil
}

// Dir returns the job directory path.
func (s *FSStore) Dir() string { return s.dir }

// Has reports whether the artifact file exists.
func (s *FSStore) Has(a Artifact) bool {
	_, err := os.Stat(s.Path(a))
	return err == nil
}

// Load reads the artifact file.
func (s *FSStore) Load(a Artifact) ([]byte, error) {
	data, err := os.ReadFile(s.Path(a))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", a, err)
	}
	return data, nil
}

// Save writes the artifact file, overwriting any previous contents.
func (s *FSStore) Save(a Artifact, data []byte) error {
	if err := os.WriteFile(s.Path(a), data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", a, err)
	}
	return nil
}

// Path returns the artifact's path inside the job directory.
func (s *FSStore) Path(a Artifact) string {
	return filepath.Join(s.dir, string(a))
}

// SpeakerFile resolves a per-turn artifact path, creating the speaker
// directory if it does not exist yet.
func (s *FSStore) SpeakerFile(speaker, name string) (string, error) {
	dir := filepath.Join(s.dir, SpeakersDir, speaker)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create speaker directory %s: %w", dir, err)
	}
	return filepath.Join(dir, name), nil
}

// SaveSpeakerFile writes a per-turn artifact under speakers/{speaker}/.
func (s *FSStore) SaveSpeakerFile(speaker, name string, data []byte) error {
	path, err := s.SpeakerFile(speaker, name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// compile-time interface check
var _ Store = (*FSStore)(nil)
