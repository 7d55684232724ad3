package ports

import (
	"context"
	"time"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// AuthEventKind tipo de cambio de sesión notificado por el backend.
type AuthEventKind int

const (
	AuthSignedIn AuthEventKind = iota + 1
	AuthSignedOut
	AuthExpired // expirada o revocada en el servidor
)

func (k AuthEventKind) String() string {
	switch k {
	case AuthSignedIn:
		return "signed_in"
	case AuthSignedOut:
		return "signed_out"
	case AuthExpired:
		return "expired"
	}
	return "unknown"
}

// AuthEvent cambio de sesión. Identity es nil salvo en AuthSignedIn.
type AuthEvent struct {
	Kind     AuthEventKind
	Identity *entity.Identity
}

// AuthClient puerto de salida hacia el servicio de autenticación del backend.
// Cualquier adaptador (HTTP remoto, memoria) debe implementar esta interfaz.
type AuthClient interface {
	// SignIn autentica con email y password. El error conserva el mensaje del backend.
	SignIn(ctx context.Context, email, password string) (*entity.Identity, error)
	// SignOut revoca la sesión actual en el servidor.
	SignOut(ctx context.Context) error
	// GetSession devuelve la sesión persistida o (nil, nil) si no hay ninguna.
	GetSession(ctx context.Context) (*entity.Identity, error)
	// IsAdmin consulta el registro de privilegios de la identidad.
	IsAdmin(ctx context.Context, userID string) (bool, error)
	// OnAuthChange registra fn para los cambios de sesión; devuelve la función para darse de baja.
	OnAuthChange(fn func(AuthEvent)) (unsubscribe func())
}

// RevocationStore lista de sesiones revocadas hasta su expiración natural.
type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
