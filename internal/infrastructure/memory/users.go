package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*Users)(nil)
	_ repository.RoleRepository = (*Users)(nil)
)

// Users cuentas y registros de privilegio en memoria.
type Users struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	roles   map[string]map[string]bool // userID -> role
	roleErr error                      // error inyectado para la búsqueda de privilegios
}

// NewUsers crea el almacén vacío.
func NewUsers() *Users {
	return &Users{byID: make(map[string]*entity.User), roles: make(map[string]map[string]bool)}
}

// Create persiste un nuevo usuario; ErrDuplicate si el email existe.
func (u *Users) Create(_ context.Context, user *entity.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, o := range u.byID {
		if strings.EqualFold(o.Email, user.Email) {
			return fmt.Errorf("%w: el email ya está registrado", domain.ErrDuplicate)
		}
	}
	cp := *user
	u.byID[user.ID] = &cp
	return nil
}

// GetByID obtiene un usuario o (nil, nil).
func (u *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if usr, ok := u.byID[id]; ok {
		cp := *usr
		return &cp, nil
	}
	return nil, nil
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas) o (nil, nil).
func (u *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, usr := range u.byID {
		if strings.EqualFold(usr.Email, email) {
			cp := *usr
			return &cp, nil
		}
	}
	return nil, nil
}

// Assign registra el privilegio.
func (u *Users) Assign(_ context.Context, a *entity.RoleAssignment) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.roles[a.UserID] == nil {
		u.roles[a.UserID] = make(map[string]bool)
	}
	u.roles[a.UserID][a.Role] = true
	return nil
}

// Revoke elimina el privilegio.
func (u *Users) Revoke(userID, role string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.roles[userID], role)
}

// HasRole false si no hay registro.
func (u *Users) HasRole(ctx context.Context, userID, role string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.roleErr != nil {
		return false, u.roleErr
	}
	return u.roles[userID][role], nil
}

// FailRoleLookup hace fallar la búsqueda de privilegios hasta que se llame con nil.
func (u *Users) FailRoleLookup(err error) {
	u.mu.Lock()
	u.roleErr = err
	u.mu.Unlock()
}
