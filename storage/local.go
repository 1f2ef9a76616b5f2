package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoredFile is one entry of a store listing. The modification time lets
// sweepers leave freshly written files alone.
type StoredFile struct {
	Path    string
	ModTime time.Time
}

// Store is the file backend the document service talks to. Paths are
// relative to the store root so database rows stay location independent.
type Store interface {
	Save(departmentID uint, extension string, src io.Reader) (string, error)
	Delete(path string) error
	Exists(path string) bool
	AbsPath(path string) string
	// ListFiles returns every stored file with its relative path.
	ListFiles() ([]StoredFile, error)
}

type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// Save writes the stream under dept_<id>/<uuid><ext> and returns the
// relative path. Department 0 maps to the shared "public" directory.
func (s *LocalStore) Save(departmentID uint, extension string, src io.Reader) (string, error) {
	dir := "dept_public"
	if departmentID > 0 {
		dir = fmt.Sprintf("dept_%d", departmentID)
	}
	if err := os.MkdirAll(filepath.Join(s.basePath, dir), 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + strings.ToLower(extension)
	relPath := filepath.Join(dir, name)

	dst, err := os.Create(filepath.Join(s.basePath, relPath))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(filepath.Join(s.basePath, relPath))
		return "", err
	}
	return relPath, nil
}

func (s *LocalStore) Delete(path string) error {
	return os.Remove(filepath.Join(s.basePath, path))
}

func (s *LocalStore) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, path))
	return err == nil
}

func (s *LocalStore) AbsPath(path string) string {
	return filepath.Join(s.basePath, path)
}

func (s *LocalStore) ListFiles() ([]StoredFile, error) {
	var files []StoredFile
	err := filepath.WalkDir(s.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, StoredFile{Path: rel, ModTime: info.ModTime()})
		return nil
	})
	return files, err
}
