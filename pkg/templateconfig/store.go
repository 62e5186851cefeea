package templateconfig

import (
	"fmt"
	"sync"
)

// Store is the in-memory config being edited.
type Store struct {
	mu  sync.RWMutex
	cfg TemplateConfig
}

// NewStore returns a Store holding the defaults.
func NewStore() *Store {
	return &Store{cfg: Defaults()}
}

// Set validates and stores value at path and returns the field it addressed.
func (s *Store) Set(path, value string) (Field, string, error) {
	f, ok := Lookup(path)
	if !ok {
		return Field{}, "", fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	norm, visible, err := Normalize(f, value)
	if err != nil {
		return f, "", err
	}

	s.mu.Lock()
	s.cfg.set(f, norm, visible)
	s.mu.Unlock()
	return f, norm, nil
}

// Get returns the string form of the value at path.
func (s *Store) Get(path string) (string, error) {
	f, ok := Lookup(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, _ := s.cfg.Value(f)
	return v, nil
}

// Image returns the image stored for slot, if any.
func (s *Store) Image(slot string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.cfg.Images[slot]
	return v, ok && v != ""
}

// Snapshot returns a deep copy of the current config.
func (s *Store) Snapshot() TemplateConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Replace swaps in a complete config, as produced by Merge.
func (s *Store) Replace(cfg TemplateConfig) {
	s.mu.Lock()
	s.cfg = cfg.Clone()
	s.mu.Unlock()
}
