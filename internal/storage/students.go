// ============================================================================
// internal/storage/students.go
// Student collection store with idempotent load-time backfill
// ============================================================================

package storage

import (
	"studentdesk/internal/grading"
	"studentdesk/internal/shared"
)

// StudentStore owns the student collection file. Every operation reloads
// the full collection before mutating; nothing is cached between calls.
type StudentStore struct {
	path string
}

// NewStudentStore creates a store backed by the given file path.
func NewStudentStore(path string) *StudentStore {
	return &StudentStore{path: path}
}

// Path returns the backing file path.
func (s *StudentStore) Path() string { return s.path }

// Load reads the full student collection, creating an empty file when
// absent. Legacy records missing a grade get one derived from marks
// (F when marks are not coercible to a number), and records missing
// registered_courses get an empty set. Any backfill is persisted before
// returning so the repair happens once.
func (s *StudentStore) Load() ([]shared.Student, error) {
	students, err := readArray[shared.Student](s.path, true)
	if err != nil {
		return nil, err
	}

	changed := false
	for i := range students {
		if !students[i].Marks.IsValid() {
			students[i].Marks = 0
			students[i].Grade = grading.GradeF
			changed = true
		}
		if students[i].Grade == "" {
			students[i].Grade = grading.LetterOrDefault(float64(students[i].Marks))
			changed = true
		}
		if students[i].RegisteredCourses == nil {
			students[i].RegisteredCourses = []string{}
			changed = true
		}
	}

	if changed {
		if err := s.Save(students); err != nil {
			return nil, err
		}
	}
	return students, nil
}

// Save overwrites the collection file with the given records.
func (s *StudentStore) Save(students []shared.Student) error {
	return writeArray(s.path, students)
}

// Reset replaces the collection with an empty one. Irreversible; the
// caller layer is responsible for any confirmation gating.
func (s *StudentStore) Reset() error {
	return writeArray(s.path, []shared.Student{})
}
