package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/biaslens/biaslens/internal/models"
)

// FileStore keeps one JSON file per entry, named by the key hash.
// Entries are never expired or evicted.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("[FileCache] failed to create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, hashKey(key)+".json")
}

func (s *FileStore) Get(_ context.Context, key string) (models.AnalysisResult, bool, error) {
	var result models.AnalysisResult

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return result, false, nil
	}
	if err != nil {
		return result, false, fmt.Errorf("[FileCache] read failed: %w", err)
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return result, false, fmt.Errorf("[FileCache] corrupt entry: %w", err)
	}
	return result, true, nil
}

func (s *FileStore) Put(_ context.Context, key string, result models.AnalysisResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("[FileCache] marshal failed: %w", err)
	}

	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("[FileCache] write failed: %w", err)
	}
	return nil
}
