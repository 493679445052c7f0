// ============================================================================
// cmd/assigncourses/main.go
// Batch-assigns courses to students at random while honoring catalog
// capacity. Tops every student up to two registered courses.
// ============================================================================

package main

import (
	"log"
	"math/rand/v2"

	"studentdesk/internal/shared"
	"studentdesk/internal/storage"
)

// coursesPerStudent is the target registration count per student.
const coursesPerStudent = 2

func main() {
	log.Println("Starting batch course assignment...")

	if err := shared.LoadEnv(".env"); err != nil {
		log.Println("Continuing with system environment")
	}
	cfg := shared.LoadConfig()

	students := storage.NewStudentStore(cfg.StudentsPath())
	courses := storage.NewCourseStore(cfg.CoursesPath())

	roster, err := students.Load()
	if err != nil {
		log.Fatalf("Failed to load students: %v", err)
	}
	catalog, err := courses.Load()
	if err != nil {
		log.Fatalf("Failed to load course catalog: %v", err)
	}
	if len(catalog) == 0 {
		log.Fatalf("Course catalog %s is empty, nothing to assign", cfg.CoursesPath())
	}

	// Capacity per course, and live enrollment counts from the roster —
	// the student collection is the source of truth for enrollment.
	limits := make(map[string]int, len(catalog))
	enrolled := make(map[string]int, len(catalog))
	for _, c := range catalog {
		limits[c.CourseID] = c.MaxStudents
		enrolled[c.CourseID] = 0
	}
	for _, st := range roster {
		for _, id := range st.RegisteredCourses {
			if _, ok := enrolled[id]; ok {
				enrolled[id]++
			}
		}
	}

	assigned := 0
	for i := range roster {
		available := make([]string, 0, len(catalog))
		for _, c := range catalog {
			if enrolled[c.CourseID] < limits[c.CourseID] && !roster[i].IsRegistered(c.CourseID) {
				available = append(available, c.CourseID)
			}
		}

		need := coursesPerStudent - len(roster[i].RegisteredCourses)
		if need > len(available) {
			need = len(available)
		}
		if need <= 0 {
			continue
		}

		rand.Shuffle(len(available), func(a, b int) {
			available[a], available[b] = available[b], available[a]
		})
		for _, id := range available[:need] {
			roster[i].RegisteredCourses = append(roster[i].RegisteredCourses, id)
			enrolled[id]++
			assigned++
		}
	}

	if assigned == 0 {
		log.Println("All students already hold their target registrations, nothing to do.")
		return
	}

	if err := students.Save(roster); err != nil {
		log.Fatalf("Failed to save students: %v", err)
	}
	log.Printf("Assigned %d registrations across %d students.", assigned, len(roster))
}
