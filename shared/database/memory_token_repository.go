package database

import (
	"context"
	"sync"
	"time"

	"marina-server/shared/interfaces"
)

var _ interfaces.TokenRepository = (*memoryTokenRepository)(nil)

// memoryTokenRepository is used when no Redis is configured. Revocations do
// not survive a restart and are not shared between instances.
type memoryTokenRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenRepository() interfaces.TokenRepository {
	return &memoryTokenRepository{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *memoryTokenRepository) RevokeToken(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	// Expired entries are swept on write so the map stays bounded by live tokens.
	for id, until := range r.revoked {
		if !now.Before(until) {
			delete(r.revoked, id)
		}
	}
	r.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (r *memoryTokenRepository) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !r.now().Before(until) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
