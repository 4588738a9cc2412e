package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/biaslens/biaslens/internal/clients"
	"github.com/biaslens/biaslens/internal/models"
)

const valkeyKeyPrefix = "biaslens:analysis:"

// ValkeyStore keeps entries in Valkey under a namespaced key with a ttl,
// so cached analyses age out instead of living forever.
type ValkeyStore struct {
	vc  *clients.ValkeyClient
	ttl time.Duration
}

func NewValkeyStore(vc *clients.ValkeyClient, ttl time.Duration) *ValkeyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ValkeyStore{vc: vc, ttl: ttl}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (models.AnalysisResult, bool, error) {
	var result models.AnalysisResult

	cmd := s.vc.Client.B().Get().Key(valkeyKeyPrefix + hashKey(key)).Build()
	res := s.vc.DoWithRetry(ctx, cmd, 3)
	if err := res.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return result, false, nil
		}
		return result, false, fmt.Errorf("[ValkeyCache] get failed: %w", err)
	}

	raw, err := res.AsBytes()
	if err != nil {
		return result, false, fmt.Errorf("[ValkeyCache] read failed: %w", err)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, false, fmt.Errorf("[ValkeyCache] corrupt entry: %w", err)
	}
	return result, true, nil
}

func (s *ValkeyStore) Put(ctx context.Context, key string, result models.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("[ValkeyCache] marshal failed: %w", err)
	}

	cmd := s.vc.Client.B().Set().
		Key(valkeyKeyPrefix + hashKey(key)).
		Value(string(data)).
		Ex(s.ttl).
		Build()

	res := s.vc.DoWithRetry(ctx, cmd, 3)
	if err := res.Error(); err != nil {
		return fmt.Errorf("[ValkeyCache] set failed: %w", err)
	}
	return nil
}
