package documents

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"studentdesk/internal/shared"
	"studentdesk/internal/storage"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()

	students := storage.NewStudentStore(filepath.Join(dir, "students.json"))
	if err := students.Save([]shared.Student{
		{Name: "Alice", RollNo: "S001", Marks: 75, Grade: "C", RegisteredCourses: []string{}},
	}); err != nil {
		t.Fatalf("Failed to write student fixture: %v", err)
	}

	meta := storage.NewDocumentStore(filepath.Join(dir, "documents.json"))
	return NewService(meta, students, filepath.Join(dir, "documents")), dir
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}
	return path
}

func TestAttach(t *testing.T) {
	svc, dir := newTestService(t)
	src := writeSource(t, dir, "transcript.pdf", "pdf bytes")

	t.Run("Attach Success", func(t *testing.T) {
		doc, err := svc.Attach("S001", "transcript", src)
		if err != nil {
			t.Fatalf("Attach failed: %v", err)
		}
		if doc.RollNo != "S001" || doc.Filename != "transcript.pdf" {
			t.Errorf("Unexpected metadata: %+v", doc)
		}
		if doc.Size != int64(len("pdf bytes")) {
			t.Errorf("Size = %d, want %d", doc.Size, len("pdf bytes"))
		}
		if filepath.Ext(doc.StoredName) != ".pdf" {
			t.Errorf("Stored name should keep the extension: %s", doc.StoredName)
		}

		data, err := os.ReadFile(svc.Path(doc))
		if err != nil {
			t.Fatalf("Stored file missing: %v", err)
		}
		if string(data) != "pdf bytes" {
			t.Errorf("Stored bytes = %q", data)
		}
	})

	t.Run("Unknown Student", func(t *testing.T) {
		if _, err := svc.Attach("S999", "transcript", src); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Empty Doc Type", func(t *testing.T) {
		_, err := svc.Attach("S001", "  ", src)
		var verr *shared.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Expected ValidationError, got %v", err)
		}
	})

	t.Run("Missing Source File", func(t *testing.T) {
		_, err := svc.Attach("S001", "transcript", filepath.Join(dir, "absent.pdf"))
		var serr *shared.StorageError
		if !errors.As(err, &serr) {
			t.Errorf("Expected StorageError, got %v", err)
		}
	})
}

func TestListAndDelete(t *testing.T) {
	svc, dir := newTestService(t)
	src1 := writeSource(t, dir, "transcript.pdf", "one")
	src2 := writeSource(t, dir, "id-card.png", "two")

	doc1, err := svc.Attach("S001", "transcript", src1)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if _, err := svc.Attach("S001", "id", src2); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	t.Run("List All For Student", func(t *testing.T) {
		docs, err := svc.List("S001", "")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(docs) != 2 {
			t.Errorf("Expected 2 documents, got %d", len(docs))
		}
	})

	t.Run("List Filtered By Type", func(t *testing.T) {
		docs, err := svc.List("S001", "Transcript")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(docs) != 1 || docs[0].ID != doc1.ID {
			t.Errorf("Type filter mismatch: %+v", docs)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := svc.Delete(doc1.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := os.Stat(svc.Path(doc1)); !os.IsNotExist(err) {
			t.Error("Stored file still present after delete")
		}
		docs, _ := svc.List("S001", "")
		if len(docs) != 1 {
			t.Errorf("Expected 1 document after delete, got %d", len(docs))
		}
	})

	t.Run("Delete Unknown ID", func(t *testing.T) {
		if err := svc.Delete("nope"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
