package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
	"github.com/jhoicas/afrispot-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, logout, sesión y búsqueda de privilegios.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	revocations ports.RevocationStore
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, revocations ports.RevocationStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, revocations: revocations, jwtCfg: jwtCfg}
}

// Login verifica email/password y emite un token con un ID de sesión nuevo.
// Usuario inexistente o password incorrecta dan el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, uuid.New().String(), user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.IdentityResponse{ID: user.ID, Email: user.Email},
	}, nil
}

// Authenticate valida el token y comprueba que la sesión no fue revocada.
// Token inválido, caducado o revocado → ErrSessionExpired.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*jwt.Session, error) {
	s, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}
	revoked, err := uc.revocations.IsRevoked(ctx, s.SessionID)
	if err != nil {
		return nil, fmt.Errorf("consultar revocación: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: sesión revocada", domain.ErrSessionExpired)
	}
	return s, nil
}

// Logout revoca la sesión hasta su expiración natural.
func (uc *AuthUseCase) Logout(ctx context.Context, s *jwt.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return uc.revocations.Revoke(ctx, s.SessionID, ttl)
}

// Session datos públicos de la sesión vigente.
func (uc *AuthUseCase) Session(s *jwt.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		User:      dto.IdentityResponse{ID: s.UserID, Email: s.Email},
		ExpiresAt: s.ExpiresAt,
	}
}

// IsAdmin consulta el registro de roles de la identidad.
func (uc *AuthUseCase) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return uc.roleRepo.HasRole(ctx, userID, entity.RoleAdmin)
}
