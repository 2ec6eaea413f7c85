package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store persists one sparse override map per settings domain. A missing
// domain is not an error: it simply means "all defaults".
type Store interface {
	Get(ctx context.Context, domain Domain) (map[string]any, error)
	Set(ctx context.Context, domain Domain, values map[string]any) error
}

// ErrUnknownDomain is returned when a caller addresses a domain the cascade
// does not know about.
var ErrUnknownDomain = errors.New("settings: unknown domain")

// RedisStore keeps each domain as a JSON document under a namespaced key.
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

func (s RedisStore) key(domain Domain) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "settings"
	}
	return prefix + ":" + string(domain)
}

// Get loads the sparse override map for domain.
func (s RedisStore) Get(ctx context.Context, domain Domain) (map[string]any, error) {
	if !domain.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	if s.Client == nil {
		return nil, errors.New("settings: redis client not configured")
	}
	data, err := s.Client.Get(ctx, s.key(domain)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("settings: load %s: %w", domain, err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt document behaves like an absent one; the cascade falls
		// back to defaults rather than failing the render.
		return nil, nil
	}
	return values, nil
}

// Set stores the sparse override map for domain.
func (s RedisStore) Set(ctx context.Context, domain Domain, values map[string]any) error {
	if !domain.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	if s.Client == nil {
		return errors.New("settings: redis client not configured")
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", domain, err)
	}
	if err := s.Client.Set(ctx, s.key(domain), data, 0).Err(); err != nil {
		return fmt.Errorf("settings: store %s: %w", domain, err)
	}
	return nil
}

// MemoryStore is an in-process Store used by tests and the seeder.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[Domain]map[string]any
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[Domain]map[string]any)}
}

// Get returns the stored map for domain, or nil when absent.
func (s *MemoryStore) Get(_ context.Context, domain Domain) (map[string]any, error) {
	if !domain.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.values[domain]
	if !ok {
		return nil, nil
	}
	out := make(map[string]any, len(stored))
	for k, v := range stored {
		out[k] = v
	}
	return out, nil
}

// Set replaces the stored map for domain.
func (s *MemoryStore) Set(_ context.Context, domain Domain, values map[string]any) error {
	if !domain.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	s.values[domain] = copied
	return nil
}
