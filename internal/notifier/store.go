package notifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"phonechecker/platform/apperr"
)

const opAppend = "notifier.store.append"

// MessageStore persists sent messages.
type MessageStore interface {
	Append(msg Message) error
	Path() string
}

// FileStore appends one JSON document per line to a file. Lines from
// concurrent processes may interleave; within a process appends are serialized.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Append(msg Message) error {
	line, err := encodeLine(msg)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "encode message", err).WithOp(opAppend)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create message log dir: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open message log: %w", err)
	}

	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("write message log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close message log: %w", err)
	}
	return nil
}

// encodeLine renders msg as a single JSON line, keeping non-ASCII text verbatim.
func encodeLine(msg Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
