package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// OutputStore keeps rendered plan files in one directory under random names.
type OutputStore struct {
	Dir string
}

// NewOutputStore returns a store rooted at dir.
func NewOutputStore(dir string) *OutputStore {
	return &OutputStore{Dir: dir}
}

// Save creates a new file name with the given extension (".png", ".pdf")
// and calls write with its full path. It returns the bare file name, which
// is what clients use to fetch the file. A failed write leaves no file.
func (s *OutputStore) Save(ext string, write func(path string) error) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	name := uuid.New().String() + ext
	path := filepath.Join(s.Dir, name)
	if err := write(path); err != nil {
		os.Remove(path)
		return "", err
	}
	return name, nil
}

// Path returns the full path of a stored file.
func (s *OutputStore) Path(name string) string {
	return filepath.Join(s.Dir, filepath.Base(name))
}
