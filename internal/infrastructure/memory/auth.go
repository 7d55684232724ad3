package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

var _ ports.AuthClient = (*Auth)(nil)

// Auth servicio de autenticación en proceso con una única sesión actual.
type Auth struct {
	users *Users
	ttl   time.Duration

	mu         sync.Mutex
	current    *entity.Identity
	signOutErr error
	listeners  map[int]func(ports.AuthEvent)
	nextID     int
}

// NewAuth crea el servicio sobre users. ttl es la duración de las sesiones.
func NewAuth(users *Users, ttl time.Duration) *Auth {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Auth{users: users, ttl: ttl, listeners: make(map[int]func(ports.AuthEvent))}
}

// SignIn verifica email/password con bcrypt y abre una sesión.
func (a *Auth) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, &domain.BackendError{Code: "INVALID_CREDENTIALS", Message: "Email o contraseña incorrectos", Err: domain.ErrInvalidCredentials}
	}
	if user.Status != entity.UserStatusActive {
		return nil, &domain.BackendError{Code: "FORBIDDEN", Message: "Cuenta desactivada", Err: domain.ErrForbidden}
	}
	id := &entity.Identity{
		ID:        user.ID,
		Email:     user.Email,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(a.ttl),
	}
	a.mu.Lock()
	a.current = id
	a.mu.Unlock()

	cp := *id
	a.emit(ports.AuthEvent{Kind: ports.AuthSignedIn, Identity: &cp})
	return id, nil
}

// SignOut cierra la sesión actual.
func (a *Auth) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	if a.signOutErr != nil {
		err := a.signOutErr
		a.mu.Unlock()
		return err
	}
	had := a.current != nil
	a.current = nil
	a.mu.Unlock()
	if had {
		a.emit(ports.AuthEvent{Kind: ports.AuthSignedOut})
	}
	return nil
}

// GetSession sesión actual o (nil, nil); una sesión caducada se descarta.
func (a *Auth) GetSession(ctx context.Context) (*entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil, nil
	}
	if time.Now().After(a.current.ExpiresAt) {
		a.current = nil
		return nil, nil
	}
	cp := *a.current
	return &cp, nil
}

// IsAdmin consulta el registro de privilegios.
func (a *Auth) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return a.users.HasRole(ctx, userID, entity.RoleAdmin)
}

// OnAuthChange registra fn; devuelve la función para darse de baja.
func (a *Auth) OnAuthChange(fn func(ports.AuthEvent)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

// Expire simula que el servidor revoca o caduca la sesión actual.
func (a *Auth) Expire() {
	a.mu.Lock()
	had := a.current != nil
	a.current = nil
	a.mu.Unlock()
	if had {
		a.emit(ports.AuthEvent{Kind: ports.AuthExpired})
	}
}

// FailSignOut hace fallar la revocación remota hasta que se llame con nil.
func (a *Auth) FailSignOut(err error) {
	a.mu.Lock()
	a.signOutErr = err
	a.mu.Unlock()
}

func (a *Auth) emit(ev ports.AuthEvent) {
	a.mu.Lock()
	fns := make([]func(ports.AuthEvent), 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
