package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/juju/errors"
	uuid "github.com/satori/go.uuid"
)

const uploadsFile = "uploads.json"

// Store manages persistence of upload records and log files.
type Store struct {
	root string
	mu   sync.Mutex
}

// New creates a Store rooted at the given directory (typically .avrup/).
func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) historyDir() string {
	return filepath.Join(s.root, "history")
}

func (s *Store) logsDir() string {
	return filepath.Join(s.root, "logs")
}

// AddUpload appends an upload record, assigning an ID if it has none.
func (s *Store) AddUpload(r UploadRecord) (UploadRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewV4().String()
	}
	if err := s.appendRecord(uploadsFile, r); err != nil {
		return r, err
	}
	return r, nil
}

// Uploads returns all upload records in insertion order.
func (s *Store) Uploads() ([]UploadRecord, error) {
	var records []UploadRecord
	err := s.loadRecords(uploadsFile, &records)
	return records, err
}

// RecentUploads returns up to n records, newest first.
func (s *Store) RecentUploads(n int) ([]UploadRecord, error) {
	records, err := s.Uploads()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}

// LogsDir returns the path to the logs directory, creating it if needed.
func (s *Store) LogsDir() (string, error) {
	dir := s.logsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Trace(err)
	}
	return dir, nil
}

func (s *Store) appendRecord(filename string, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.historyDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Trace(err)
	}

	path := filepath.Join(dir, filename)

	var records []json.RawMessage
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(data) > 0 {
			if err := json.Unmarshal(data, &records); err != nil {
				return errors.Annotatef(err, "decoding %s", path)
			}
		}
	case !os.IsNotExist(err):
		return errors.Trace(err)
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return errors.Trace(err)
	}
	records = append(records, raw)

	data, err = json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Annotatef(os.WriteFile(path, data, 0o644), "writing %s", path)
}

func (s *Store) loadRecords(filename string, dest any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.historyDir(), filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Trace(err)
	}
	return errors.Annotatef(json.Unmarshal(data, dest), "decoding %s", path)
}
