package expense

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Archive stores the source images of scanned receipts so an entry can show
// the receipt it came from.
type Archive interface {
	// Save stores a file and returns the name to fetch it by.
	Save(filename string, data []byte) (string, error)

	// Get retrieves a stored file.
	Get(name string) ([]byte, error)

	// Delete removes a stored file.
	Delete(name string) error
}

// LocalArchive implements Archive on a local directory.
type LocalArchive struct {
	basePath string
}

// NewLocalArchive creates the directory if needed.
func NewLocalArchive(basePath string) (*LocalArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	return &LocalArchive{
		basePath: basePath,
	}, nil
}

// Save writes a file into the archive.
func (l *LocalArchive) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(l.basePath, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filename, nil
}

// Get reads a file from the archive.
func (l *LocalArchive) Get(name string) ([]byte, error) {
	path := filepath.Join(l.basePath, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes a file from the archive.
func (l *LocalArchive) Delete(name string) error {
	path := filepath.Join(l.basePath, name)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// sanitizeFilename tames phone-generated filenames: special characters
// stripped, whitespace collapsed, base truncated, extension kept.
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	base = unsafeChars.ReplaceAllString(base, "")
	base = multiSpace.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "receipt"
	}

	return base + ext
}
