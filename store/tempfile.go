// Package store persists uploaded audio streams to uniquely named temporary
// files for the duration of a single request. Every stored file must be
// released by the caller on all exit paths, typically with defer.
package store

import (
	"fmt"
	"io"
	"os"
)

// defaultSuffix is used when the upload carries no usable file extension.
// Browser MediaRecorder uploads are webm unless told otherwise.
const defaultSuffix = ".webm"

type TempFileStore struct {
	dir string // empty means the OS temp dir
}

func New() *TempFileStore {
	return &TempFileStore{}
}

// NewInDir places temp files under dir instead of the OS temp dir.
func NewInDir(dir string) *TempFileStore {
	return &TempFileStore{dir: dir}
}

// Store writes the full stream to a new uniquely named file and returns its
// path. suffixHint is kept as the file extension when non-empty so the
// transcription service can recognise the container format.
func (s *TempFileStore) Store(r io.Reader, suffixHint string) (string, error) {
	suffix := suffixHint
	if suffix == "" {
		suffix = defaultSuffix
	}

	f, err := os.CreateTemp(s.dir, "upload-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), nil
}

// Release deletes the file at path. Releasing a path that no longer exists is
// a no-op, so double releases and failed stores are both safe.
func (s *TempFileStore) Release(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove temp file: %w", err)
	}
	return nil
}
