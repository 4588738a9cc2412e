package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"github.com/biaslens/biaslens/internal/clients"
	"github.com/biaslens/biaslens/internal/models"
)

// Store is a keyed cache of analysis results. Keys are logical request
// keys; implementations address entries by the key's hash. Writes are
// whole-value replacements, so concurrent analyses of the same key may
// both miss and both write.
type Store interface {
	Get(ctx context.Context, key string) (models.AnalysisResult, bool, error)
	Put(ctx context.Context, key string, result models.AnalysisResult) error
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// NewFromEnv selects a backend via CACHE_BACKEND (file | memory | valkey).
// The valkey backend requires clients.InitValkey to have run.
func NewFromEnv() (Store, error) {
	switch os.Getenv("CACHE_BACKEND") {
	case "valkey":
		return NewValkeyStore(clients.GetValkeyClient(), 24*time.Hour), nil
	case "memory":
		return NewMemoryStore(1024, 24*time.Hour), nil
	default:
		dir := os.Getenv("CACHE_DIR")
		if dir == "" {
			dir = "cache"
		}
		return NewFileStore(dir)
	}
}
