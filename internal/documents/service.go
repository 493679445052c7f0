// ============================================================================
// internal/documents/service.go
// Per-student document storage: file copies plus a JSON metadata collection
// ============================================================================

package documents

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"studentdesk/internal/shared"
	"studentdesk/internal/storage"
)

// Service stores student documents. The bytes live in dir under a
// generated name; the metadata collection records ownership and origin.
type Service struct {
	meta     *storage.DocumentStore
	students *storage.StudentStore
	dir      string

	now func() time.Time
}

// NewService creates a document service. dir is created on first attach.
func NewService(meta *storage.DocumentStore, students *storage.StudentStore, dir string) *Service {
	return &Service{
		meta:     meta,
		students: students,
		dir:      dir,
		now:      time.Now,
	}
}

// Attach copies the file at srcPath into the document directory and
// records its metadata. The owning student must exist.
func (s *Service) Attach(rollNo, docType, srcPath string) (shared.Document, error) {
	docType = strings.TrimSpace(docType)
	if docType == "" {
		return shared.Document{}, shared.NewValidationError("doc_type", "cannot be empty")
	}

	students, err := s.students.Load()
	if err != nil {
		return shared.Document{}, err
	}
	if !studentExists(students, rollNo) {
		return shared.Document{}, shared.ErrNotFound
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return shared.Document{}, &shared.StorageError{Op: "open", Path: srcPath, Err: err}
	}
	defer src.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return shared.Document{}, &shared.StorageError{Op: "mkdir", Path: s.dir, Err: err}
	}

	id := uuid.NewString()
	storedName := id + filepath.Ext(srcPath)
	destPath := filepath.Join(s.dir, storedName)

	dest, err := os.Create(destPath)
	if err != nil {
		return shared.Document{}, &shared.StorageError{Op: "create", Path: destPath, Err: err}
	}
	size, err := io.Copy(dest, src)
	if cerr := dest.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(destPath)
		return shared.Document{}, &shared.StorageError{Op: "write", Path: destPath, Err: err}
	}

	doc := shared.Document{
		ID:         id,
		RollNo:     rollNo,
		DocType:    docType,
		Filename:   filepath.Base(srcPath),
		StoredName: storedName,
		Size:       size,
		UploadedAt: s.now(),
	}

	docs, err := s.meta.Load()
	if err != nil {
		os.Remove(destPath)
		return shared.Document{}, err
	}
	docs = append(docs, doc)
	if err := s.meta.Save(docs); err != nil {
		os.Remove(destPath)
		return shared.Document{}, err
	}
	return doc, nil
}

// List returns document metadata, optionally filtered by roll number
// and/or document type. Empty filters match everything.
func (s *Service) List(rollNo, docType string) ([]shared.Document, error) {
	docs, err := s.meta.Load()
	if err != nil {
		return nil, err
	}

	var matches []shared.Document
	for _, d := range docs {
		if rollNo != "" && d.RollNo != rollNo {
			continue
		}
		if docType != "" && !strings.EqualFold(d.DocType, docType) {
			continue
		}
		matches = append(matches, d)
	}
	return matches, nil
}

// Path returns the on-disk location of a stored document.
func (s *Service) Path(doc shared.Document) string {
	return filepath.Join(s.dir, doc.StoredName)
}

// Delete removes a document's metadata and its stored file. A missing
// file is tolerated; the metadata removal is what matters.
func (s *Service) Delete(id string) error {
	docs, err := s.meta.Load()
	if err != nil {
		return err
	}

	for i, d := range docs {
		if d.ID != id {
			continue
		}
		docs = append(docs[:i], docs[i+1:]...)
		if err := s.meta.Save(docs); err != nil {
			return err
		}
		if err := os.Remove(filepath.Join(s.dir, d.StoredName)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return &shared.StorageError{Op: "remove", Path: d.StoredName, Err: err}
		}
		return nil
	}
	return shared.ErrNotFound
}

func studentExists(students []shared.Student, rollNo string) bool {
	for _, st := range students {
		if st.RollNo == rollNo {
			return true
		}
	}
	return false
}
