package snippets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestEmptyStore verifies that a missing file yields an empty store.
func TestEmptyStore(t *testing.T) {
	s := newStore(filepath.Join(t.TempDir(), "snippets.json"))

	if got := s.Len(); got != 0 {
		t.Errorf("expected empty store, got %d snippets", got)
	}
	if names := s.List(); len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
	if _, err := s.Get("greeting"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestSaveGetDelete verifies the snippet lifecycle.
func TestSaveGetDelete(t *testing.T) {
	s := newStore(filepath.Join(t.TempDir(), "snippets.json"))

	if err := s.Save("greeting", "Hello there!"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save("sig", "Best regards,\nJohn"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	text, err := s.Get("greeting")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if text != "Hello there!" {
		t.Errorf("expected snippet text, got %q", text)
	}

	names := s.List()
	if len(names) != 2 || names[0] != "greeting" || names[1] != "sig" {
		t.Errorf("expected sorted names [greeting sig], got %v", names)
	}

	if err := s.Delete("greeting"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("greeting"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete("greeting"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for double delete, got %v", err)
	}
}

// TestPersistence verifies that snippets survive a store reopen and that
// no temp file is left behind.
func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.json")

	s := newStore(path)
	if err := s.Save("addr", "221B Baker Street"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	fresh := newStore(path)
	text, err := fresh.Get("addr")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if text != "221B Baker Street" {
		t.Errorf("expected persisted text, got %q", text)
	}
}

// TestSaveValidation verifies that blank names and empty texts are
// rejected.
func TestSaveValidation(t *testing.T) {
	s := newStore(filepath.Join(t.TempDir(), "snippets.json"))

	if err := s.Save("  ", "text"); err == nil {
		t.Error("expected error for blank name")
	}
	if err := s.Save("name", "   \n"); err == nil {
		t.Error("expected error for empty text")
	}
	if got := s.Len(); got != 0 {
		t.Errorf("rejected saves must not be stored, got %d", got)
	}
}

// TestOverwrite verifies that saving an existing name replaces the text.
func TestOverwrite(t *testing.T) {
	s := newStore(filepath.Join(t.TempDir(), "snippets.json"))

	if err := s.Save("note", "first"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save("note", "second"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	text, err := s.Get("note")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if text != "second" {
		t.Errorf("expected overwritten text, got %q", text)
	}
	if got := s.Len(); got != 1 {
		t.Errorf("expected a single snippet, got %d", got)
	}
}

// TestCorruptFile verifies that unparseable JSON yields an empty store.
func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.json")
	if err := os.WriteFile(path, []byte("oops"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	s := newStore(path)
	if got := s.Len(); got != 0 {
		t.Errorf("expected empty store on corrupt file, got %d", got)
	}
}
