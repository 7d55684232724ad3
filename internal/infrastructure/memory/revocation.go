package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

var _ ports.RevocationStore = (*Revocations)(nil)

// Revocations sesiones revocadas en memoria (sin Redis configurado).
type Revocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewRevocations crea la lista vacía.
func NewRevocations() *Revocations {
	return &Revocations{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marca la sesión como revocada durante ttl.
func (r *Revocations) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[sessionID] = r.now().Add(ttl)
	for id, until := range r.revoked {
		if r.now().After(until) {
			delete(r.revoked, id)
		}
	}
	return nil
}

// IsRevoked indica si la sesión sigue revocada.
func (r *Revocations) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[sessionID]
	if !ok {
		return false, nil
	}
	if r.now().After(until) {
		delete(r.revoked, sessionID)
		return false, nil
	}
	return true, nil
}
