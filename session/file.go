package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/logging"
)

// FileStore persists session context as one JSON document on disk, mapping
// session id to a flat key/value object. Every mutation rewrites the whole
// document, but the load-mutate-store cycle is serialized through a
// store-level mutex so concurrent turns cannot lose each other's updates.
//
// A missing, empty or corrupt backing file is treated as an empty document:
// the store logs, resets and continues.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger logging.Logger
}

var _ core.Store = (*FileStore)(nil)

// FileStoreOptions configure a FileStore.
type FileStoreOptions struct {
	Logger logging.Logger
}

// NewFileStore creates a store backed by the JSON document at path.
func NewFileStore(path string, optFns ...func(o *FileStoreOptions)) *FileStore {
	opts := FileStoreOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &FileStore{path: path, logger: opts.Logger}
}

// load reads and parses the backing document; caller must hold mu.
// Corruption self-heals to an empty document.
func (s *FileStore) load() map[string]map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("session file unreadable, resetting", "path", s.path, "error", err)
		}
		return map[string]map[string]string{}
	}
	if len(data) == 0 {
		return map[string]map[string]string{}
	}
	var doc map[string]map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("session file corrupted, resetting", "path", s.path, "error", err)
		return map[string]map[string]string{}
	}
	if doc == nil {
		doc = map[string]map[string]string{}
	}
	return doc
}

func (s *FileStore) save(doc map[string]map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write session document: %w", err)
	}
	return nil
}

// Get returns the value for a key, or "" when session or key is absent.
func (s *FileStore) Get(sessionID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()[sessionID][key], nil
}

// Set stores a key/value pair, creating the session implicitly.
func (s *FileStore) Set(sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	sess, ok := doc[sessionID]
	if !ok {
		sess = map[string]string{}
		doc[sessionID] = sess
	}
	sess[key] = value
	return s.save(doc)
}

// GetAll returns a copy of the session's full context mapping.
func (s *FileStore) GetAll(sessionID string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]string{}
	for k, v := range s.load()[sessionID] {
		out[k] = v
	}
	return out, nil
}

// Clear removes the session's entire mapping from the document.
func (s *FileStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	if _, ok := doc[sessionID]; !ok {
		return nil
	}
	delete(doc, sessionID)
	return s.save(doc)
}
