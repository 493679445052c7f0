// ============================================================================
// cmd/importroster/main.go
// Imports student records from a .csv or .xlsx roster file through the
// duplicate-safe bulk import.
// ============================================================================

package main

import (
	"flag"
	"log"

	"github.com/fatih/color"

	"studentdesk/internal/importer"
	"studentdesk/internal/roster"
	"studentdesk/internal/shared"
	"studentdesk/internal/storage"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("Usage: importroster <file.csv|file.xlsx>")
	}
	path := flag.Arg(0)

	if err := shared.LoadEnv(".env"); err != nil {
		log.Println("Continuing with system environment")
	}
	cfg := shared.LoadConfig()

	rows, err := importer.ParseFile(path)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}
	log.Printf("Parsed %d rows from %s", len(rows), path)

	svc := roster.NewService(
		storage.NewStudentStore(cfg.StudentsPath()),
		storage.NewCourseStore(cfg.CoursesPath()),
	)

	report, err := svc.BulkImport(rows)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	color.Cyan("Import results for %s", path)
	color.Green("  Added:   %d", report.Added)
	color.Yellow("  Skipped: %d (duplicate roll numbers)", report.Skipped)
	if report.Errors > 0 {
		color.Red("  Errors:  %d (rows dropped for missing or invalid fields)", report.Errors)
	}
}
