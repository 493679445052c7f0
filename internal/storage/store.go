// ============================================================================
// internal/storage/store.go
// Whole-file JSON array persistence shared by every collection store
// ============================================================================

package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"studentdesk/internal/shared"
)

// readArray reads a JSON array-of-objects file. A missing file yields an
// empty collection; when createIfMissing is set an empty file is written
// so later saves have a home. A file that exists but does not parse as the
// expected structure also yields an empty collection — the tool must never
// block the operator on one bad file — with a logged warning.
func readArray[T any](path string, createIfMissing bool) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, &shared.StorageError{Op: "read", Path: path, Err: err}
		}
		if createIfMissing {
			if werr := writeArray(path, []T{}); werr != nil {
				return nil, werr
			}
		}
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Warning: %s is not a valid collection file, treating as empty: %v", path, err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// writeArray serializes the full collection and replaces the backing file.
// The write goes to a temp file in the same directory followed by a
// rename, so a load can never observe a partially written collection.
func writeArray[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return &shared.StorageError{Op: "encode", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &shared.StorageError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &shared.StorageError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &shared.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &shared.StorageError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &shared.StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
