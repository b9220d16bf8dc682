package snapshot

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/madarasa/gradebook/core/roster"
)

// FileStore reads and writes whole-roster snapshots as indented JSON files.
// Saves are plain overwrites; atomicity is not guaranteed.
type FileStore struct{}

var _ roster.SnapshotStore = (*FileStore)(nil)

func NewFileStore() *FileStore {
	return &FileStore{}
}

func (fs *FileStore) Write(path string, snap roster.Snapshot) error {
	if snap.Students == nil {
		snap.Students = make(map[string]roster.StudentSnapshot)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return &PersistenceError{Path: path, Err: errors.Wrap(err, "encoding snapshot")}
	}
	data = append(data, '\n')
	if err = os.WriteFile(path, data, 0644); err != nil {
		return &PersistenceError{Path: path, Err: errors.Wrap(err, "writing snapshot")}
	}
	return nil
}

func (fs *FileStore) Read(path string) (roster.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return roster.Snapshot{}, &PersistenceError{Path: path, Err: errors.Wrap(err, "reading snapshot")}
	}
	var snap roster.Snapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return roster.Snapshot{}, &PersistenceError{Path: path, Err: errors.Wrap(err, "decoding snapshot")}
	}
	return snap, nil
}

// PersistenceError wraps any IO or decoding failure of the backing file.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return "persistence failure on " + e.Path + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistenceError reports whether err is a backing-file failure.
func IsPersistenceError(err error) bool {
	var perr *PersistenceError
	return errors.As(err, &perr)
}
