// ============================================================================
// internal/storage/collections.go
// Stores for the remaining collection files: courses, teacher credentials,
// timetable, and document metadata
// ============================================================================

package storage

import (
	"studentdesk/internal/shared"
)

// ============================================================================
// Course Reference Store (read-only)
// ============================================================================

// CourseStore reads the externally supplied course reference file. The
// core validates registrations against it but never writes it, so a
// missing file is simply an empty catalog.
type CourseStore struct {
	path string
}

// NewCourseStore creates a store backed by the given file path.
func NewCourseStore(path string) *CourseStore {
	return &CourseStore{path: path}
}

// Load reads the course catalog.
func (s *CourseStore) Load() ([]shared.Course, error) {
	return readArray[shared.Course](s.path, false)
}

// Get returns the course with the given id.
func (s *CourseStore) Get(courseID string) (shared.Course, error) {
	courses, err := s.Load()
	if err != nil {
		return shared.Course{}, err
	}
	for _, c := range courses {
		if c.CourseID == courseID {
			return c, nil
		}
	}
	return shared.Course{}, shared.ErrNotFound
}

// ============================================================================
// Teacher Credential Store
// ============================================================================

// TeacherStore owns the teacher credential file. Structurally identical to
// the student store but for authentication records.
type TeacherStore struct {
	path string
}

// NewTeacherStore creates a store backed by the given file path.
func NewTeacherStore(path string) *TeacherStore {
	return &TeacherStore{path: path}
}

// Load reads the full credential collection, creating an empty file when
// absent.
func (s *TeacherStore) Load() ([]shared.TeacherAccount, error) {
	return readArray[shared.TeacherAccount](s.path, true)
}

// Save overwrites the credential file with the given records.
func (s *TeacherStore) Save(teachers []shared.TeacherAccount) error {
	return writeArray(s.path, teachers)
}

// ============================================================================
// Timetable Store (read-only)
// ============================================================================

// TimetableStore reads the timetable file maintained outside the core.
type TimetableStore struct {
	path string
}

// NewTimetableStore creates a store backed by the given file path.
func NewTimetableStore(path string) *TimetableStore {
	return &TimetableStore{path: path}
}

// Load reads all scheduled class slots.
func (s *TimetableStore) Load() ([]shared.TimetableEntry, error) {
	return readArray[shared.TimetableEntry](s.path, false)
}

// ByDay groups the timetable by weekday, preserving file order within
// each day.
func (s *TimetableStore) ByDay() (map[string][]shared.TimetableEntry, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]shared.TimetableEntry)
	for _, e := range entries {
		grouped[e.Day] = append(grouped[e.Day], e)
	}
	return grouped, nil
}

// ============================================================================
// Document Metadata Store
// ============================================================================

// DocumentStore owns the document metadata file. The document bytes
// themselves live in the documents directory, not in this collection.
type DocumentStore struct {
	path string
}

// NewDocumentStore creates a store backed by the given file path.
func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

// Load reads all document metadata records, creating an empty file when
// absent.
func (s *DocumentStore) Load() ([]shared.Document, error) {
	return readArray[shared.Document](s.path, true)
}

// Save overwrites the metadata file with the given records.
func (s *DocumentStore) Save(docs []shared.Document) error {
	return writeArray(s.path, docs)
}
