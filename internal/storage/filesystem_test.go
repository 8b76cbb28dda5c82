package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pantryworks/recipedb/internal/storage"
)

// TestFileStoreSave tests blob persistence and reference format
func TestFileStoreSave(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewFileStore(root)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ref, err := store.Save("png", []byte("blob"))
	if err != nil {
		t.Fatalf("Failed to save blob: %v", err)
	}
	if filepath.Ext(ref) != ".png" {
		t.Errorf("Expected .png extension, got %q", ref)
	}
	if filepath.Base(ref) != ref {
		t.Errorf("Expected a bare file name reference, got %q", ref)
	}

	data, err := os.ReadFile(filepath.Join(root, ref))
	if err != nil {
		t.Fatalf("Failed to read blob back: %v", err)
	}
	if string(data) != "blob" {
		t.Errorf("Blob contents mismatch: %q", data)
	}

	// References are unique per save
	other, err := store.Save("png", []byte("blob"))
	if err != nil {
		t.Fatalf("Failed to save second blob: %v", err)
	}
	if other == ref {
		t.Error("Expected distinct references for separate saves")
	}

	if _, err := store.Save("png", nil); err == nil {
		t.Error("Expected error for empty blob")
	}
}

// TestFileStoreRemove tests removal semantics
func TestFileStoreRemove(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewFileStore(root)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ref, err := store.Save("jpg", []byte("blob"))
	if err != nil {
		t.Fatalf("Failed to save blob: %v", err)
	}

	if err := store.Remove(ref); err != nil {
		t.Fatalf("Failed to remove blob: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ref)); !os.IsNotExist(err) {
		t.Error("Expected blob file to be gone")
	}

	// Missing blobs are not an error
	if err := store.Remove(ref); err != nil {
		t.Errorf("Expected nil for a missing blob, got %v", err)
	}

	// Path-like references are rejected
	if err := store.Remove("../escape.png"); err == nil {
		t.Error("Expected error for a path-like reference")
	}
	if err := store.Remove(""); err == nil {
		t.Error("Expected error for an empty reference")
	}
}

// TestNewFileStoreCreatesRoot tests root directory creation
func TestNewFileStoreCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "media")
	if _, err := storage.NewFileStore(root); err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		t.Errorf("Expected root directory to exist: %v", err)
	}

	if _, err := storage.NewFileStore(""); err == nil {
		t.Error("Expected error for empty root")
	}
}
