// Package redis implementa la lista de sesiones revocadas sobre Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

// KeyRevokedSession revoked_session:{jti} -> "1", con TTL hasta la expiración del token.
const KeyRevokedSession = "revoked_session:%s"

var _ ports.RevocationStore = (*RevocationStore)(nil)

// RevocationStore implementa ports.RevocationStore con claves que expiran solas.
type RevocationStore struct {
	rdb goredis.UniversalClient
}

// NewClient crea el cliente y comprueba la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRevocationStore construye el store sobre un cliente existente.
func NewRevocationStore(rdb goredis.UniversalClient) *RevocationStore {
	return &RevocationStore{rdb: rdb}
}

// Revoke marca la sesión como revocada durante ttl. Un ttl ya vencido no escribe nada.
func (s *RevocationStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, fmt.Sprintf(KeyRevokedSession, sessionID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis: revocar sesión: %w", err)
	}
	return nil
}

// IsRevoked indica si la sesión sigue en la lista.
func (s *RevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, fmt.Sprintf(KeyRevokedSession, sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: consultar revocación: %w", err)
	}
	return n > 0, nil
}
