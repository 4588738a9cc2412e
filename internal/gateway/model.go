package gateway

import (
	"strings"
	"sync"
	"time"
)

// modelKeywordPreference ranks discovered models: chat-capable families
// first, most preferred keyword first.
var modelKeywordPreference = []string{"llama", "mixtral", "chat"}

// ModelConfig holds the completion model id: an optional fixed override
// plus the id discovered from the model list and when it was stored.
// Discovery happens once; re-resolution only through Reset.
type ModelConfig struct {
	mu         sync.Mutex
	override   string
	resolvedID string
	resolvedAt time.Time
}

func NewModelConfig(override string) *ModelConfig {
	return &ModelConfig{override: strings.TrimSpace(override)}
}

// Current returns the id completions should use right now. The second
// return is false when discovery is still needed.
func (m *ModelConfig) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.override != "" {
		return m.override, true
	}
	if m.resolvedID != "" {
		return m.resolvedID, true
	}
	return "", false
}

func (m *ModelConfig) Store(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resolvedID = id
	m.resolvedAt = time.Now()
}

// ResolvedAt reports when discovery last stored an id; zero when nothing
// has been discovered yet.
func (m *ModelConfig) ResolvedAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolvedAt
}

// Reset clears the discovered id so the next completion re-resolves.
// An override is permanent and unaffected.
func (m *ModelConfig) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resolvedID = ""
	m.resolvedAt = time.Time{}
}

// preferredModel picks the first id containing the most preferred keyword,
// falling back to the first listed id.
func preferredModel(ids []string) string {
	for _, keyword := range modelKeywordPreference {
		for _, id := range ids {
			if strings.Contains(strings.ToLower(id), keyword) {
				return id
			}
		}
	}

	if len(ids) > 0 {
		return ids[0]
	}
	return ""
}
