// ============================================================================
// internal/shared/config.go
// Data-file configuration and environment variable helpers
// ============================================================================

package shared

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Collection file names. These are the contract other tooling (e.g. the
// batch course-assignment utility) depends on; the core never renames them.
const (
	StudentsFile  = "students.json"
	CoursesFile   = "courses.json"
	TeachersFile  = "teachers.json"
	TimetableFile = "timetable.json"
	DocumentsFile = "documents.json"

	// DocumentsDir holds the stored document files themselves.
	DocumentsDir = "documents"
)

// Config holds the location of the collection files. The core library
// receives paths through constructors; only commands read the environment.
type Config struct {
	DataDir string
}

// LoadConfig builds a Config from the environment. The default places all
// collection files in the working directory, the way the original
// single-operator deployment ran.
func LoadConfig() Config {
	return Config{DataDir: GetEnv("DATA_DIR", ".")}
}

// StudentsPath returns the student collection file path.
func (c Config) StudentsPath() string { return filepath.Join(c.DataDir, StudentsFile) }

// CoursesPath returns the course reference file path.
func (c Config) CoursesPath() string { return filepath.Join(c.DataDir, CoursesFile) }

// TeachersPath returns the teacher credential file path.
func (c Config) TeachersPath() string { return filepath.Join(c.DataDir, TeachersFile) }

// TimetablePath returns the timetable file path.
func (c Config) TimetablePath() string { return filepath.Join(c.DataDir, TimetableFile) }

// DocumentsPath returns the document metadata file path.
func (c Config) DocumentsPath() string { return filepath.Join(c.DataDir, DocumentsFile) }

// DocumentsDirPath returns the directory holding stored document files.
func (c Config) DocumentsDirPath() string { return filepath.Join(c.DataDir, DocumentsDir) }

// ============================================================================
// Environment Variable Helpers
// ============================================================================

// LoadEnv loads environment variables from a .env file.
func LoadEnv(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Warning: %s file not found, using system environment variables", envFile)
		return err
	}

	return nil
}

// GetEnv retrieves an environment variable or returns a default value.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntEnv retrieves an integer environment variable or returns a default value.
func GetIntEnv(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// GetBoolEnv retrieves a boolean environment variable or returns a default value.
func GetBoolEnv(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}
