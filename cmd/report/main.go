// ============================================================================
// cmd/report/main.go
// Terminal report over the roster: statistics, grade distribution, top and
// bottom performers, attendance correlation, and the weekly timetable.
// ============================================================================

package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"studentdesk/internal/analytics"
	"studentdesk/internal/shared"
	"studentdesk/internal/storage"
)

func main() {
	if err := shared.LoadEnv(".env"); err != nil {
		log.Println("Continuing with system environment")
	}
	cfg := shared.LoadConfig()

	students := storage.NewStudentStore(cfg.StudentsPath())
	svc := analytics.NewService(students)

	printSummary(svc)
	printGradeDistribution(svc)
	printPerformers(svc)
	printCorrelation(svc)
	printTimetable(storage.NewTimetableStore(cfg.TimetablePath()))
}

func printSummary(svc *analytics.Service) {
	color.Cyan("\n=== Roster Summary ===")

	summary, err := svc.Summary()
	if errors.Is(err, shared.ErrInsufficientData) {
		color.Yellow("No student records found.")
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("Failed to compute summary: %v", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Total Students", fmt.Sprintf("%d", summary.TotalStudents)})
	table.Append([]string{"Average Marks", fmt.Sprintf("%.2f", summary.AverageMarks)})
	table.Append([]string{"Median Marks", fmt.Sprintf("%.2f", summary.MedianMarks)})
	table.Append([]string{"Highest Marks", fmt.Sprintf("%.2f", summary.HighestMarks)})
	table.Append([]string{"Lowest Marks", fmt.Sprintf("%.2f", summary.LowestMarks)})
	table.Append([]string{"Std Deviation", fmt.Sprintf("%.2f", summary.StdDevMarks)})
	table.Append([]string{"Passing", fmt.Sprintf("%d", summary.PassCount)})
	table.Append([]string{"Failing", fmt.Sprintf("%d", summary.FailCount)})
	table.Append([]string{"Pass Rate", fmt.Sprintf("%.1f%%", summary.PassRate)})
	table.Render()
}

func printGradeDistribution(svc *analytics.Service) {
	color.Yellow("\nGrade Distribution")

	dist, err := svc.GradeDistribution()
	if err != nil {
		log.Fatalf("Failed to compute grade distribution: %v", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Grade", "Students"})
	for _, grade := range []string{"A", "B", "C", "D", "F"} {
		table.Append([]string{grade, fmt.Sprintf("%d", dist[grade])})
	}
	table.Render()
}

func printPerformers(svc *analytics.Service) {
	top, err := svc.TopPerformers(5)
	if err != nil {
		log.Fatalf("Failed to rank students: %v", err)
	}
	bottom, err := svc.BottomPerformers(5)
	if err != nil {
		log.Fatalf("Failed to rank students: %v", err)
	}

	color.Yellow("\nTop 5 Performers")
	renderStudents(top)
	color.Yellow("\nBottom 5 Performers")
	renderStudents(bottom)
}

func renderStudents(students []shared.Student) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Roll No", "Name", "Marks", "Grade"})
	for i, st := range students {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			st.RollNo,
			st.Name,
			fmt.Sprintf("%.2f", float64(st.Marks)),
			st.Grade,
		})
	}
	table.Render()
}

func printCorrelation(svc *analytics.Service) {
	color.Yellow("\nAttendance vs Performance")

	report, err := svc.AttendanceCorrelation()
	if errors.Is(err, shared.ErrInsufficientData) {
		color.Yellow("Not enough attendance data for a correlation (need at least 4 students with records).")
		return
	}
	if err != nil {
		log.Fatalf("Failed to compute correlation: %v", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Samples", fmt.Sprintf("%d", report.Samples)})
	table.Append([]string{"Pearson r", fmt.Sprintf("%.3f", report.R)})
	table.Append([]string{"R squared", fmt.Sprintf("%.3f", report.RSquared)})
	table.Append([]string{"Trend slope", fmt.Sprintf("%.3f", report.Slope)})
	table.Append([]string{"Trend intercept", fmt.Sprintf("%.3f", report.Intercept)})
	table.Render()
}

func printTimetable(store *storage.TimetableStore) {
	grouped, err := store.ByDay()
	if err != nil {
		log.Fatalf("Failed to load timetable: %v", err)
	}
	if len(grouped) == 0 {
		return
	}

	color.Cyan("\n=== Weekly Timetable ===")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Day", "Course", "Time", "Room"})
	for _, day := range shared.Weekdays {
		for _, e := range grouped[day] {
			table.Append([]string{day, e.CourseID, e.Time, e.Room})
		}
	}
	table.Render()
}
