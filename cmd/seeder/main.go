// ============================================================================
// cmd/seeder/main.go
// Generates a plausible student roster and a default course catalog for
// local development and demos.
// ============================================================================

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"studentdesk/internal/grading"
	"studentdesk/internal/shared"
	"studentdesk/internal/storage"
)

var firstNames = []string{
	"John", "Jane", "Alice", "Bob", "Charlie", "David", "Eve", "Frank", "Grace", "Henry",
	"Ivy", "Jack", "Kate", "Liam", "Mia", "Noah", "Olivia", "Peter", "Quinn", "Ryan",
	"Sophia", "Tyler", "Uma", "Victor", "Wendy", "Xander", "Yara", "Zoe", "Aaron", "Bella",
	"Caleb", "Daisy", "Ethan", "Fiona", "Gabriel", "Hannah", "Isaac", "Julia", "Kevin", "Lily",
	"Mason", "Nora", "Owen", "Piper", "Riley", "Samuel", "Tessa", "Ulysses", "Violet",
	"William", "Xena", "Yusuf", "Zara", "Adam", "Beth", "Carter", "Diana", "Eli", "Faith",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
	"Walker", "Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell", "Carter", "Roberts",
	"Gomez", "Phillips", "Evans", "Turner", "Diaz", "Parker", "Cruz", "Edwards", "Collins", "Reyes",
}

func main() {
	log.Println("Starting roster seeder...")

	if err := shared.LoadEnv(".env"); err != nil {
		log.Println("Continuing with system environment")
	}

	cfg := shared.LoadConfig()
	count := shared.GetIntEnv("SEED_COUNT", 70)

	seedStudents(cfg, count)
	if shared.GetBoolEnv("SEED_COURSES", true) {
		seedCourses(cfg)
	}

	log.Println("Seeding completed successfully.")
}

func seedStudents(cfg shared.Config, count int) {
	log.Printf("--- Seeding %d students ---", count)

	students := make([]shared.Student, 0, count)
	enrollmentDate := time.Now().Format("2006-01-02")

	for i := 1; i <= count; i++ {
		first := firstNames[rand.IntN(len(firstNames))]
		last := lastNames[rand.IntN(len(lastNames))]
		marks := float64(int(rand.Float64()*10000)) / 100 // two decimal places

		students = append(students, shared.Student{
			Name:              first + " " + last,
			RollNo:            fmt.Sprintf("S%03d", i),
			Marks:             shared.Score(marks),
			Grade:             grading.LetterOrDefault(marks),
			RegisteredCourses: []string{},
			Email:             fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last)),
			Phone:             fmt.Sprintf("+1%d", 1000000000+rand.Int64N(9000000000)),
			EnrollmentStatus:  shared.EnrollmentActive,
			EnrollmentDate:    enrollmentDate,
		})
	}

	store := storage.NewStudentStore(cfg.StudentsPath())
	if err := store.Save(students); err != nil {
		log.Fatalf("Failed to write student collection: %v", err)
	}
	log.Printf("Wrote %d student records to %s", len(students), cfg.StudentsPath())
}

// seedCourses writes a default catalog unless one already exists. The
// catalog file belongs to external tooling, so the seeder writes it
// directly rather than going through the read-only course store.
func seedCourses(cfg shared.Config) {
	log.Println("--- Seeding course catalog ---")

	if _, err := os.Stat(cfg.CoursesPath()); err == nil {
		log.Printf("Course catalog %s already exists, leaving it alone", cfg.CoursesPath())
		return
	}

	courses := []shared.Course{
		{CourseID: "CS101", CourseName: "Introduction to Programming", Instructor: "Dr. Jane Professor", Credits: 3, MaxStudents: 40, Schedule: "MWF 9:00-10:00", Room: "SCI-101"},
		{CourseID: "CS201", CourseName: "Data Structures", Instructor: "Dr. Jane Professor", Credits: 3, MaxStudents: 30, Schedule: "TTH 14:00-15:30", Room: "SCI-204"},
		{CourseID: "MATH101", CourseName: "Calculus I", Instructor: "Prof. Alan Turing", Credits: 4, MaxStudents: 50, Schedule: "MW 11:00-12:30", Room: "MATH-12"},
		{CourseID: "PHY101", CourseName: "Physics I", Instructor: "Dr. Marie Curie", Credits: 4, MaxStudents: 35, Schedule: "TTH 9:00-10:30", Room: "PHY-1"},
		{CourseID: "ENG101", CourseName: "Academic Writing", Instructor: "Prof. Mary Shelley", Credits: 2, MaxStudents: 45, Schedule: "F 13:00-15:00", Room: "HUM-7"},
		{CourseID: "HIS101", CourseName: "World History", Instructor: "Prof. Howard Zinn", Credits: 3, MaxStudents: 45, Schedule: "MWF 13:00-14:00", Room: "HUM-3"},
	}

	data, err := json.MarshalIndent(courses, "", "    ")
	if err != nil {
		log.Fatalf("Failed to encode course catalog: %v", err)
	}
	if err := os.WriteFile(cfg.CoursesPath(), data, 0o644); err != nil {
		log.Fatalf("Failed to write course catalog: %v", err)
	}
	log.Printf("Wrote %d courses to %s", len(courses), cfg.CoursesPath())
}
