package storage

import (
	"errors"
	"fmt"
	"mapgen-server/internal/domain"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound - карты с таким ID нет в хранилище
var ErrNotFound = errors.New("level not found")

// Store - хранилище сгенерированных карт
type Store interface {
	SaveLevel(rec *domain.LevelRecord) error
	LoadLevel(id string) (*domain.LevelRecord, error)
	Close() error
}

// FileStore хранит каждую карту в отдельном .bspm файле
type FileStore struct {
	Dir string
}

// NewFileStore создает хранилище и папку под него
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\.`) {
		return "", fmt.Errorf("invalid level id %q", id)
	}
	return filepath.Join(s.Dir, id+FileExt), nil
}

func (s *FileStore) SaveLevel(rec *domain.LevelRecord) error {
	path, err := s.path(rec.ID)
	if err != nil {
		return err
	}
	return SaveFile(path, rec)
}

func (s *FileStore) LoadLevel(id string) (*domain.LevelRecord, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	rec, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (s *FileStore) Close() error {
	return nil
}
