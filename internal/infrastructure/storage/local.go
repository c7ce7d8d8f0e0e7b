package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrFileTypeNotAllowed = errors.New("file type is not allowed")
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrEmptyFilename      = errors.New("filename is empty")
)

// Extensions accepted per upload kind.
var (
	MedicalRecordExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".pdf": true, ".dcm": true,
	}
	HealthDataExtensions = map[string]bool{
		".csv": true, ".json": true, ".txt": true,
	}
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// LocalStore persists uploaded files under a base directory on local disk.
type LocalStore struct {
	baseDir  string
	maxBytes int64
	log      *logrus.Logger
}

func NewLocalStore(baseDir string, maxBytes int64, log *logrus.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir, maxBytes: maxBytes, log: log}, nil
}

// Save writes the uploaded content to <baseDir>/<subdir> under a
// timestamped, sanitized filename and returns the stored path relative
// to the base directory.
func (s *LocalStore) Save(subdir, originalName string, allowed map[string]bool, src io.Reader) (string, error) {
	name := sanitizeFilename(originalName)
	if name == "" {
		return "", ErrEmptyFilename
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !allowed[ext] {
		return "", ErrFileTypeNotAllowed
	}

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	storedName := fmt.Sprintf("%s_%s", time.Now().Format("20060102150405"), name)
	fullPath := filepath.Join(dir, storedName)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	limited := io.LimitReader(src, s.maxBytes+1)
	written, err := io.Copy(dst, limited)
	if err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(fullPath)
		return "", ErrFileTooLarge
	}

	return filepath.Join(subdir, storedName), nil
}

// Open returns a reader for a previously stored file.
func (s *LocalStore) Open(storedPath string) (*os.File, error) {
	return os.Open(filepath.Join(s.baseDir, storedPath))
}

// Remove deletes a stored file. A missing file is not an error.
func (s *LocalStore) Remove(storedPath string) error {
	err := os.Remove(filepath.Join(s.baseDir, storedPath))
	if err != nil && !os.IsNotExist(err) {
		s.log.Warnf("Failed to remove file %s: %+v", storedPath, err)
		return err
	}
	return nil
}

// FullPath resolves a stored path to its absolute location on disk.
func (s *LocalStore) FullPath(storedPath string) string {
	return filepath.Join(s.baseDir, storedPath)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	return name
}
