package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreWritesContent(t *testing.T) {
	s := NewInDir(t.TempDir())

	path, err := s.Store(strings.NewReader("fake audio bytes"), ".wav")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	defer s.Release(path)

	if filepath.Ext(path) != ".wav" {
		t.Errorf("expected .wav extension, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake audio bytes" {
		t.Errorf("stored content mismatch: %q", data)
	}
}

func TestStoreDefaultSuffix(t *testing.T) {
	s := NewInDir(t.TempDir())

	path, err := s.Store(strings.NewReader("x"), "")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	defer s.Release(path)

	if filepath.Ext(path) != ".webm" {
		t.Errorf("expected default .webm extension, got %s", path)
	}
}

func TestStoreUniqueNames(t *testing.T) {
	s := NewInDir(t.TempDir())

	first, err := s.Store(strings.NewReader("a"), ".mp3")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	second, err := s.Store(strings.NewReader("b"), ".mp3")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if first == second {
		t.Errorf("expected unique paths, both were %s", first)
	}
	s.Release(first)
	s.Release(second)
}

func TestReleaseRemovesFile(t *testing.T) {
	s := NewInDir(t.TempDir())

	path, err := s.Store(strings.NewReader("x"), ".wav")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := s.Release(path); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to be removed, stat err: %v", err)
	}
}

func TestReleaseMissingPathIsNoOp(t *testing.T) {
	s := New()

	if err := s.Release(filepath.Join(t.TempDir(), "never-created.wav")); err != nil {
		t.Errorf("expected nil for missing path, got %v", err)
	}
}
