package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/guard"
	"github.com/jhoicas/afrispot-api/internal/application/session"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/pkg/jwt"
)

// Locals keys de la sesión autenticada en Fiber.
const (
	LocalSession = "session"
	LocalUserID  = "user_id"
)

// authenticator valida tokens (JWT + lista de revocación). Lo implementa *auth.AuthUseCase.
type authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Session, error)
}

// privilegeChecker búsqueda de privilegios. Lo implementa *auth.AuthUseCase.
type privilegeChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// AuthMiddleware valida el Bearer Token y deja la sesión en c.Locals.
// Token ausente → 401 UNAUTHORIZED; inválido, caducado o revocado → 401 SESSION_EXPIRED.
func AuthMiddleware(auth authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return respondError(c, dto.CodeUnauthorized, "Authorization header requerido")
		}
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return respondError(c, dto.CodeUnauthorized, "formato: Bearer <token>")
		}
		s, err := auth.Authenticate(c.Context(), strings.TrimSpace(token))
		if err != nil {
			code := dto.CodeFor(err)
			if code == dto.CodeInternal {
				return respondError(c, code, "no se pudo validar la sesión")
			}
			return respondError(c, dto.CodeSessionExpired, "la sesión expiró o fue revocada")
		}
		c.Locals(LocalSession, s)
		c.Locals(LocalUserID, s.UserID)
		return c.Next()
	}
}

// RequireAdmin aplica la misma decisión que el guard del back-office sobre la identidad
// del token: sin sesión → 401, sin privilegio → 403. Un fallo de la búsqueda cuenta como
// sin privilegio. Debe usarse DESPUÉS de AuthMiddleware.
func RequireAdmin(checker privilegeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := session.Snapshot{State: session.StateAnonymous}
		if s := GetSession(c); s != nil {
			snap.Identity = &entity.Identity{ID: s.UserID, Email: s.Email}
			snap.State = session.StateAuthenticatedUser
			if isAdmin, err := checker.IsAdmin(c.Context(), s.UserID); err == nil && isAdmin {
				snap.State = session.StateAuthenticatedAdmin
			}
		}
		switch guard.Decide(snap, guard.RequireAdmin) {
		case guard.Render:
			return c.Next()
		case guard.RedirectLogin:
			return respondError(c, dto.CodeUnauthorized, "sesión requerida")
		default:
			return respondError(c, dto.CodeForbidden, "se requieren permisos de administrador")
		}
	}
}

// GetSession devuelve la sesión del contexto (después de AuthMiddleware) o nil.
func GetSession(c *fiber.Ctx) *jwt.Session {
	s, _ := c.Locals(LocalSession).(*jwt.Session)
	return s
}

// GetUserID devuelve el UserID del contexto (después de AuthMiddleware).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
