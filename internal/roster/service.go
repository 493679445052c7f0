// ============================================================================
// internal/roster/service.go
// Mutation operations over the student collection. Each operation is one
// load -> validate -> mutate -> save cycle; validation failures return
// before anything touches storage.
// ============================================================================

package roster

import (
	"math"
	"strconv"
	"strings"
	"time"

	"studentdesk/internal/grading"
	"studentdesk/internal/shared"
	"studentdesk/internal/storage"
)

// Service executes record mutations against the student store, consulting
// the read-only course catalog for registration checks.
type Service struct {
	students *storage.StudentStore
	courses  *storage.CourseStore

	now func() time.Time
}

// NewService creates a roster service over the given stores.
func NewService(students *storage.StudentStore, courses *storage.CourseStore) *Service {
	return &Service{
		students: students,
		courses:  courses,
		now:      time.Now,
	}
}

// ============================================================================
// Queries
// ============================================================================

// List returns the full student collection.
func (s *Service) List() ([]shared.Student, error) {
	return s.students.Load()
}

// Get returns the student with the given roll number.
func (s *Service) Get(rollNo string) (shared.Student, error) {
	students, err := s.students.Load()
	if err != nil {
		return shared.Student{}, err
	}
	if i := findByRoll(students, rollNo); i >= 0 {
		return students[i], nil
	}
	return shared.Student{}, shared.ErrNotFound
}

// Search returns students whose name or roll number contains the query
// (case-insensitive), or whose grade equals it exactly.
func (s *Service) Search(query string) ([]shared.Student, error) {
	students, err := s.students.Load()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return students, nil
	}

	var matches []shared.Student
	for _, st := range students {
		if strings.Contains(strings.ToLower(st.Name), q) ||
			strings.Contains(strings.ToLower(st.RollNo), q) ||
			strings.EqualFold(st.Grade, q) {
			matches = append(matches, st)
		}
	}
	return matches, nil
}

// ============================================================================
// Record Mutations
// ============================================================================

// AddStudent appends a new record with a derived grade and an empty course
// set. Name and roll number are trimmed; the roll number must be unique
// (case-sensitive exact match) and marks must lie in [0,100].
func (s *Service) AddStudent(name, rollNo string, marks float64) (shared.Student, error) {
	name = strings.TrimSpace(name)
	rollNo = strings.TrimSpace(rollNo)

	if name == "" {
		return shared.Student{}, shared.NewValidationError("name", "cannot be empty")
	}
	if rollNo == "" {
		return shared.Student{}, shared.NewValidationError("roll_no", "cannot be empty")
	}
	if marks < 0 || marks > 100 {
		return shared.Student{}, shared.NewValidationError("marks", "must be between 0 and 100")
	}

	letter, err := grading.Letter(marks)
	if err != nil {
		return shared.Student{}, err
	}

	students, err := s.students.Load()
	if err != nil {
		return shared.Student{}, err
	}
	if findByRoll(students, rollNo) >= 0 {
		return shared.Student{}, &shared.DuplicateKeyError{Field: "roll_no", Value: rollNo}
	}

	student := shared.Student{
		Name:              name,
		RollNo:            rollNo,
		Marks:             shared.Score(marks),
		Grade:             letter,
		RegisteredCourses: []string{},
	}

	students = append(students, student)
	if err := s.students.Save(students); err != nil {
		return shared.Student{}, err
	}
	return student, nil
}

// UpdateMarks sets a student's overall marks and recomputes the grade.
// Once any course grade exists the overall marks are derived from the
// course-grade mean and direct edits are rejected. Setting the current
// value is a no-op that skips the write.
func (s *Service) UpdateMarks(rollNo string, marks float64) (shared.Student, error) {
	if marks < 0 || marks > 100 {
		return shared.Student{}, shared.NewValidationError("marks", "must be between 0 and 100")
	}

	letter, err := grading.Letter(marks)
	if err != nil {
		return shared.Student{}, err
	}

	students, err := s.students.Load()
	if err != nil {
		return shared.Student{}, err
	}
	i := findByRoll(students, rollNo)
	if i < 0 {
		return shared.Student{}, shared.ErrNotFound
	}
	if len(students[i].CourseGrades) > 0 {
		return shared.Student{}, shared.ErrMarksDerived
	}
	if float64(students[i].Marks) == marks {
		return students[i], nil
	}

	students[i].Marks = shared.Score(marks)
	students[i].Grade = letter

	if err := s.students.Save(students); err != nil {
		return shared.Student{}, err
	}
	return students[i], nil
}

// DeleteStudent removes the matching record. Deleting an absent roll
// number succeeds without touching storage: the desired end state already
// holds.
func (s *Service) DeleteStudent(rollNo string) error {
	students, err := s.students.Load()
	if err != nil {
		return err
	}
	i := findByRoll(students, rollNo)
	if i < 0 {
		return nil
	}

	students = append(students[:i], students[i+1:]...)
	return s.students.Save(students)
}

// BulkImport adds rows from a parsed tabular source in one batch. Rows
// missing any required field or whose marks do not parse into [0,100]
// count as errors; rows whose roll number already exists (in the store or
// earlier in the batch) count as skipped. A single save persists the
// batch, and only when at least one row was added.
func (s *Service) BulkImport(rows []shared.ImportRow) (shared.ImportReport, error) {
	students, err := s.students.Load()
	if err != nil {
		return shared.ImportReport{}, err
	}

	seen := make(map[string]bool, len(students))
	for _, st := range students {
		seen[st.RollNo] = true
	}

	var report shared.ImportReport
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		rollNo := strings.TrimSpace(row.RollNo)
		if name == "" || rollNo == "" || strings.TrimSpace(row.Marks) == "" {
			report.Errors++
			continue
		}

		marks, err := strconv.ParseFloat(strings.TrimSpace(row.Marks), 64)
		if err != nil || math.IsNaN(marks) || marks < 0 || marks > 100 {
			report.Errors++
			continue
		}

		if seen[rollNo] {
			report.Skipped++
			continue
		}

		students = append(students, shared.Student{
			Name:              name,
			RollNo:            rollNo,
			Marks:             shared.Score(marks),
			Grade:             grading.LetterOrDefault(marks),
			RegisteredCourses: []string{},
		})
		seen[rollNo] = true
		report.Added++
	}

	if report.Added > 0 {
		if err := s.students.Save(students); err != nil {
			return shared.ImportReport{}, err
		}
	}
	return report, nil
}

// ResetAll unconditionally empties the student collection. The core runs
// it immediately when invoked; confirmation gating belongs to the caller.
func (s *Service) ResetAll() error {
	return s.students.Reset()
}

// ============================================================================
// Course Registration
// ============================================================================

// RegisterCourse adds a course to the student's registered set. The
// registrant count is recomputed from the live collection on every
// attempt — the student collection is the sole source of truth for
// enrollment, so nothing is cached between calls.
func (s *Service) RegisterCourse(rollNo, courseID string) error {
	course, err := s.courses.Get(courseID)
	if err != nil {
		return err
	}

	students, err := s.students.Load()
	if err != nil {
		return err
	}
	i := findByRoll(students, rollNo)
	if i < 0 {
		return shared.ErrNotFound
	}
	if students[i].IsRegistered(courseID) {
		return shared.ErrAlreadyRegistered
	}

	registered := 0
	for _, st := range students {
		if st.IsRegistered(courseID) {
			registered++
		}
	}
	if course.SeatsAvailable(registered) == 0 {
		return &shared.CapacityError{CourseID: courseID, MaxStudents: course.MaxStudents}
	}

	students[i].RegisteredCourses = append(students[i].RegisteredCourses, courseID)
	return s.students.Save(students)
}

// DropCourse removes a course from the student's registered set. Dropping
// a course the student never registered reports ErrNotRegistered without
// touching storage.
func (s *Service) DropCourse(rollNo, courseID string) error {
	students, err := s.students.Load()
	if err != nil {
		return err
	}
	i := findByRoll(students, rollNo)
	if i < 0 {
		return shared.ErrNotFound
	}

	kept := students[i].RegisteredCourses[:0]
	found := false
	for _, id := range students[i].RegisteredCourses {
		if id == courseID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return shared.ErrNotRegistered
	}

	students[i].RegisteredCourses = kept
	return s.students.Save(students)
}

// ============================================================================
// Attendance
// ============================================================================

// MarkAttendance upserts the attendance entry for (course, date). An
// existing entry for that exact date gets its status and time overwritten;
// otherwise a new entry is appended.
func (s *Service) MarkAttendance(rollNo, courseID, date, status string) error {
	if !shared.IsValidAttendanceStatus(status) {
		return shared.NewValidationError("status", "must be Present, Absent or Late")
	}
	if strings.TrimSpace(date) == "" {
		return shared.NewValidationError("date", "cannot be empty")
	}

	students, err := s.students.Load()
	if err != nil {
		return err
	}
	i := findByRoll(students, rollNo)
	if i < 0 {
		return shared.ErrNotFound
	}

	if students[i].Attendance == nil {
		students[i].Attendance = make(map[string][]shared.AttendanceEntry)
	}

	markedAt := s.now().Format("15:04:05")
	entries := students[i].Attendance[courseID]
	updated := false
	for j := range entries {
		if entries[j].Date == date {
			entries[j].Status = status
			entries[j].Time = markedAt
			updated = true
			break
		}
	}
	if !updated {
		entries = append(entries, shared.AttendanceEntry{Date: date, Status: status, Time: markedAt})
	}
	students[i].Attendance[courseID] = entries

	return s.students.Save(students)
}

// ============================================================================
// Course Grades
// ============================================================================

// UpdateCourseGrade sets one course grade and re-derives the overall marks
// as the arithmetic mean of all course grades, with the letter grade
// recomputed from that mean. Callers clamp scores to [0,100] by
// convention; the core stores what it is given.
func (s *Service) UpdateCourseGrade(rollNo, courseID string, score float64) (shared.Student, error) {
	students, err := s.students.Load()
	if err != nil {
		return shared.Student{}, err
	}
	i := findByRoll(students, rollNo)
	if i < 0 {
		return shared.Student{}, shared.ErrNotFound
	}

	if students[i].CourseGrades == nil {
		students[i].CourseGrades = make(map[string]float64)
	}
	students[i].CourseGrades[courseID] = score
	rederiveMarks(&students[i])

	if err := s.students.Save(students); err != nil {
		return shared.Student{}, err
	}
	return students[i], nil
}

// AdjustMarksInRange shifts the overall marks of every student currently
// inside [min,max] by delta, clamped to [0,100], and recomputes grades.
// Returns how many records changed; storage is untouched when none did.
func (s *Service) AdjustMarksInRange(min, max, delta float64) (int, error) {
	students, err := s.students.Load()
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range students {
		marks := float64(students[i].Marks)
		if marks < min || marks > max {
			continue
		}
		next := clamp(marks+delta, 0, 100)
		if next == marks {
			continue
		}
		students[i].Marks = shared.Score(next)
		students[i].Grade = grading.LetterOrDefault(next)
		updated++
	}

	if updated == 0 {
		return 0, nil
	}
	return updated, s.students.Save(students)
}

// AdjustCourseGrade shifts one course's grade by delta for every student
// holding that course, clamped to [0,100], re-deriving each student's
// overall marks. Returns how many records changed.
func (s *Service) AdjustCourseGrade(courseID string, delta float64) (int, error) {
	students, err := s.students.Load()
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range students {
		current, ok := students[i].CourseGrades[courseID]
		if !ok {
			continue
		}
		next := clamp(current+delta, 0, 100)
		if next == current {
			continue
		}
		students[i].CourseGrades[courseID] = next
		rederiveMarks(&students[i])
		updated++
	}

	if updated == 0 {
		return 0, nil
	}
	return updated, s.students.Save(students)
}

// ============================================================================
// Internal Helpers
// ============================================================================

func findByRoll(students []shared.Student, rollNo string) int {
	for i := range students {
		if students[i].RollNo == rollNo {
			return i
		}
	}
	return -1
}

// rederiveMarks recomputes overall marks as the mean of all course grades.
// Callers guarantee at least one course grade exists.
func rederiveMarks(st *shared.Student) {
	var sum float64
	for _, score := range st.CourseGrades {
		sum += score
	}
	mean := sum / float64(len(st.CourseGrades))
	mean = math.Round(mean*100) / 100

	st.Marks = shared.Score(mean)
	st.Grade = grading.LetterOrDefault(mean)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
