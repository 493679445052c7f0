// ============================================================================
// internal/shared/models.go
// Shared data models for the JSON collection files
// ============================================================================

package shared

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// Student Models
// ============================================================================

// Score holds an overall or per-course mark on the 0-100 scale. Legacy
// files sometimes carry marks as quoted strings; unmarshalling coerces
// those, and anything non-numeric becomes NaN so the load-time backfill
// can repair the record instead of failing the whole collection.
type Score float64

// UnmarshalJSON accepts a JSON number or a numeric string.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = Score(math.NaN())
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			*s = Score(math.NaN())
			return nil
		}
		*s = Score(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*s = Score(math.NaN())
		return nil
	}
	*s = Score(v)
	return nil
}

// IsValid reports whether the score is an actual number.
func (s Score) IsValid() bool {
	return !math.IsNaN(float64(s)) && !math.IsInf(float64(s), 0)
}

// AttendanceEntry is one attendance mark for a course on a given date.
// At most one entry exists per date per course; re-marking the same date
// overwrites status and time.
type AttendanceEntry struct {
	Date   string `json:"date"`   // YYYY-MM-DD
	Status string `json:"status"` // Present, Absent, Late
	Time   string `json:"time"`   // HH:MM:SS, when the mark was recorded
}

// Student represents one record in the student collection file.
type Student struct {
	Name              string                       `json:"name"`
	RollNo            string                       `json:"roll_no"`
	Marks             Score                        `json:"marks"`
	Grade             string                       `json:"grade,omitempty"`
	RegisteredCourses []string                     `json:"registered_courses"`
	Attendance        map[string][]AttendanceEntry `json:"attendance,omitempty"`
	CourseGrades      map[string]float64           `json:"course_grades,omitempty"`

	// Contact fields produced by the seeder; optional on manual entry.
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	EnrollmentStatus string `json:"enrollment_status,omitempty"`
	EnrollmentDate   string `json:"enrollment_date,omitempty"`
}

// IsRegistered reports whether the student holds the given course.
func (s *Student) IsRegistered(courseID string) bool {
	for _, id := range s.RegisteredCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// AttendancePercent returns the share of Present or Late marks across all
// courses. ok is false when the student has no attendance records at all.
func (s *Student) AttendancePercent() (pct float64, ok bool) {
	var present, total int
	for _, entries := range s.Attendance {
		for _, e := range entries {
			total++
			if e.Status == StatusPresent || e.Status == StatusLate {
				present++
			}
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(present) / float64(total) * 100, true
}

// ============================================================================
// Course Models
// ============================================================================

// Course represents one record in the course reference file. The core
// reads this collection but never writes it.
type Course struct {
	CourseID    string `json:"course_id"`
	CourseName  string `json:"course_name"`
	Instructor  string `json:"instructor"`
	Credits     int    `json:"credits"`
	MaxStudents int    `json:"max_students"`
	Schedule    string `json:"schedule,omitempty"`
	Room        string `json:"room,omitempty"`
}

// SeatsAvailable returns remaining capacity given the live registrant
// count. Registrant counts are always recomputed from the student
// collection, never cached on the course.
func (c *Course) SeatsAvailable(registered int) int {
	available := c.MaxStudents - registered
	if available < 0 {
		return 0
	}
	return available
}

// TimetableEntry is one scheduled class slot in the timetable file.
type TimetableEntry struct {
	CourseID string `json:"course_id"`
	Day      string `json:"day"`
	Time     string `json:"time"`
	Room     string `json:"room"`
}

// ============================================================================
// Teacher Credential Models
// ============================================================================

// TeacherAccount represents one record in the teacher credential file.
// PasswordHash is always the salted digest of the plaintext under Salt;
// plaintext is never persisted.
type TeacherAccount struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Salt         string    `json:"salt"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicTeacher is the view of a teacher account safe to hand to callers.
type PublicTeacher struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the credential material from an account.
func (t *TeacherAccount) Public() PublicTeacher {
	return PublicTeacher{Email: t.Email, Name: t.Name, CreatedAt: t.CreatedAt}
}

// ============================================================================
// Document Models
// ============================================================================

// Document is the metadata record for a stored student document. The file
// itself lives in the documents directory under StoredName.
type Document struct {
	ID         string    `json:"id"`
	RollNo     string    `json:"roll_no"`
	DocType    string    `json:"doc_type"`
	Filename   string    `json:"filename"`
	StoredName string    `json:"stored_name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ============================================================================
// Import Models
// ============================================================================

// ImportRow is one tuple from an externally parsed tabular source. Fields
// arrive as raw text; coercion and validation happen during import.
type ImportRow struct {
	Name   string
	RollNo string
	Marks  string
}

// ImportReport summarizes a bulk import batch.
type ImportReport struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// ============================================================================
// Constants
// ============================================================================

const (
	// Attendance statuses
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLate    = "Late"

	// Enrollment statuses
	EnrollmentActive   = "active"
	EnrollmentInactive = "inactive"
)

// Weekdays lists timetable days in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// IsValidAttendanceStatus reports whether status is one of the three
// accepted attendance values.
func IsValidAttendanceStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}
