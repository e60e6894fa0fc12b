package job

import (
	"fmt"
	"path/filepath"
	"sync"
)

// MemoryStore is an in-memory Store for tests. It mirrors FSStore's
// path layout so path-derived assertions hold without touching disk.
type MemoryStore struct {
	mu       sync.RWMutex
	dir      string
	files    map[Artifact][]byte
	speakers map[string][]byte // relative path -> contents
}

// NewMemoryStore creates an empty in-memory store keyed by dir.
func NewMemoryStore(dir string) *MemoryStore {
	return &MemoryStore{
		dir:      dir,
		files:    make(map[Artifact][]byte),
		speakers: make(map[string][]byte),
	}
}

// Dir returns the virtual job directory path.
func (s *MemoryStore) Dir() string { return s.dir }

// Has reports whether the artifact was saved.
func (s *MemoryStore) Has(a Artifact) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[a]
	return ok
}

// Load returns the saved artifact contents.
func (s *MemoryStore) Load(a Artifact) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[a]
	if !ok {
		return nil, fmt.Errorf("load %s: artifact not present", a)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save stores the artifact contents.
func (s *MemoryStore) Save(a Artifact, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.files[a] = cp
	return nil
}

// Path returns the virtual artifact path.
func (s *MemoryStore) Path(a Artifact) string {
	return filepath.Join(s.dir, string(a))
}

// SpeakerFile returns the virtual per-turn artifact path.
func (s *MemoryStore) SpeakerFile(speaker, name string) (string, error) {
	return filepath.Join(s.dir, SpeakersDir, speaker, name), nil
}

// SaveSpeakerFile stores a per-turn artifact.
func (s *MemoryStore) SaveSpeakerFile(speaker, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.speakers[filepath.Join(SpeakersDir, speaker, name)] = cp
	return nil
}

// SpeakerFiles returns the relative paths of all saved per-turn
// artifacts, for test assertions.
func (s *MemoryStore) SpeakerFiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.speakers))
	for p := range s.speakers {
		out = append(out, p)
	}
	return out
}

// compile-time interface check
var _ Store = (*MemoryStore)(nil)
