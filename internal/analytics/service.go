// ============================================================================
// internal/analytics/service.go
// Aggregate reporting over the live student collection
// ============================================================================

package analytics

import (
	"sort"

	"github.com/montanaflynn/stats"

	"studentdesk/internal/grading"
	"studentdesk/internal/shared"
	"studentdesk/internal/storage"
)

// minCorrelationSamples is the floor below which a correlation over
// attendance and marks is not meaningful.
const minCorrelationSamples = 4

// Service computes roster statistics. Every call reloads the collection;
// nothing is cached between invocations.
type Service struct {
	students *storage.StudentStore
}

// NewService creates an analytics service over the student store.
func NewService(students *storage.StudentStore) *Service {
	return &Service{students: students}
}

// Summary holds the headline roster statistics.
type Summary struct {
	TotalStudents int     `json:"total_students"`
	AverageMarks  float64 `json:"average_marks"`
	MedianMarks   float64 `json:"median_marks"`
	HighestMarks  float64 `json:"highest_marks"`
	LowestMarks   float64 `json:"lowest_marks"`
	StdDevMarks   float64 `json:"std_dev_marks"`
	PassCount     int     `json:"pass_count"`
	FailCount     int     `json:"fail_count"`
	PassRate      float64 `json:"pass_rate"` // percentage
}

// Summary computes the headline statistics for the full roster.
func (s *Service) Summary() (Summary, error) {
	students, err := s.students.Load()
	if err != nil {
		return Summary{}, err
	}
	if len(students) == 0 {
		return Summary{}, shared.ErrInsufficientData
	}

	marks := make([]float64, len(students))
	passCount := 0
	for i, st := range students {
		marks[i] = float64(st.Marks)
		if grading.IsPassing(st.Grade) {
			passCount++
		}
	}

	mean, err := stats.Mean(marks)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(marks)
	if err != nil {
		return Summary{}, err
	}
	highest, err := stats.Max(marks)
	if err != nil {
		return Summary{}, err
	}
	lowest, err := stats.Min(marks)
	if err != nil {
		return Summary{}, err
	}
	stdDev, err := stats.StandardDeviation(marks)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		TotalStudents: len(students),
		AverageMarks:  mean,
		MedianMarks:   median,
		HighestMarks:  highest,
		LowestMarks:   lowest,
		StdDevMarks:   stdDev,
		PassCount:     passCount,
		FailCount:     len(students) - passCount,
		PassRate:      float64(passCount) / float64(len(students)) * 100,
	}, nil
}

// GradeDistribution counts students per letter grade.
func (s *Service) GradeDistribution() (map[string]int, error) {
	students, err := s.students.Load()
	if err != nil {
		return nil, err
	}

	dist := make(map[string]int)
	for _, st := range students {
		dist[st.Grade]++
	}
	return dist, nil
}

// Band is one labeled marks range with its student count.
type Band struct {
	Label string  `json:"label"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"` // exclusive upper bound except the last band
	Count int     `json:"count"`
}

// PerformanceRanges buckets the roster into the dashboard's fixed marks
// ranges.
func (s *Service) PerformanceRanges() ([]Band, error) {
	students, err := s.students.Load()
	if err != nil {
		return nil, err
	}

	bands := []Band{
		{Label: "0-40 (Fail)", Low: 0, High: 40},
		{Label: "40-60 (Poor)", Low: 40, High: 60},
		{Label: "60-70 (Average)", Low: 60, High: 70},
		{Label: "70-80 (Good)", Low: 70, High: 80},
		{Label: "80-90 (Very Good)", Low: 80, High: 90},
		{Label: "90-100 (Excellent)", Low: 90, High: 100},
	}

	for _, st := range students {
		marks := float64(st.Marks)
		for i := range bands {
			last := i == len(bands)-1
			if marks >= bands[i].Low && (marks < bands[i].High || (last && marks <= bands[i].High)) {
				bands[i].Count++
				break
			}
		}
	}
	return bands, nil
}

// TopPerformers returns up to n students ordered by marks descending.
func (s *Service) TopPerformers(n int) ([]shared.Student, error) {
	return s.rankedPerformers(n, true)
}

// BottomPerformers returns up to n students ordered by marks ascending.
func (s *Service) BottomPerformers(n int) ([]shared.Student, error) {
	return s.rankedPerformers(n, false)
}

func (s *Service) rankedPerformers(n int, descending bool) ([]shared.Student, error) {
	students, err := s.students.Load()
	if err != nil {
		return nil, err
	}

	ranked := make([]shared.Student, len(students))
	copy(ranked, students)
	sort.SliceStable(ranked, func(i, j int) bool {
		if descending {
			return ranked[i].Marks > ranked[j].Marks
		}
		return ranked[i].Marks < ranked[j].Marks
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n], nil
}

// CorrelationReport describes the relationship between attendance
// percentage and overall marks across students holding attendance records.
type CorrelationReport struct {
	Samples   int     `json:"samples"`
	R         float64 `json:"r"`
	RSquared  float64 `json:"r_squared"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// AttendanceCorrelation computes the Pearson correlation between each
// student's attendance percentage and overall marks, with a least-squares
// trend line. Students without attendance records are excluded; fewer than
// four usable samples reports ErrInsufficientData.
func (s *Service) AttendanceCorrelation() (CorrelationReport, error) {
	students, err := s.students.Load()
	if err != nil {
		return CorrelationReport{}, err
	}

	var attendance, marks []float64
	for _, st := range students {
		pct, ok := st.AttendancePercent()
		if !ok {
			continue
		}
		attendance = append(attendance, pct)
		marks = append(marks, float64(st.Marks))
	}

	if len(attendance) < minCorrelationSamples {
		return CorrelationReport{}, shared.ErrInsufficientData
	}

	r, err := stats.Pearson(attendance, marks)
	if err != nil {
		return CorrelationReport{}, err
	}

	sdX, err := stats.StandardDeviation(attendance)
	if err != nil {
		return CorrelationReport{}, err
	}
	sdY, err := stats.StandardDeviation(marks)
	if err != nil {
		return CorrelationReport{}, err
	}
	meanX, err := stats.Mean(attendance)
	if err != nil {
		return CorrelationReport{}, err
	}
	meanY, err := stats.Mean(marks)
	if err != nil {
		return CorrelationReport{}, err
	}

	slope := 0.0
	if sdX != 0 {
		slope = r * sdY / sdX
	}

	return CorrelationReport{
		Samples:   len(attendance),
		R:         r,
		RSquared:  r * r,
		Slope:     slope,
		Intercept: meanY - slope*meanX,
	}, nil
}

// CourseAttendanceSummary aggregates attendance marks for one course
// across the whole roster.
type CourseAttendanceSummary struct {
	CourseID string `json:"course_id"`
	Present  int    `json:"present"`
	Absent   int    `json:"absent"`
	Late     int    `json:"late"`
	Students int    `json:"students"` // students with at least one mark
}

// CourseAttendance tallies attendance statuses recorded for a course.
func (s *Service) CourseAttendance(courseID string) (CourseAttendanceSummary, error) {
	students, err := s.students.Load()
	if err != nil {
		return CourseAttendanceSummary{}, err
	}

	summary := CourseAttendanceSummary{CourseID: courseID}
	for _, st := range students {
		entries := st.Attendance[courseID]
		if len(entries) == 0 {
			continue
		}
		summary.Students++
		for _, e := range entries {
			switch e.Status {
			case shared.StatusPresent:
				summary.Present++
			case shared.StatusAbsent:
				summary.Absent++
			case shared.StatusLate:
				summary.Late++
			}
		}
	}
	return summary, nil
}
