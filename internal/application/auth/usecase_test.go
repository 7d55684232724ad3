package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afrispot-api/internal/application/auth"
	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const password = "secreto123"

func newUseCase(t *testing.T) (*auth.AuthUseCase, *memory.Backend, string) {
	t.Helper()
	b := memory.NewBackend()
	adminID, err := b.AddUser(context.Background(), "chef@afrispot.test", password, true)
	require.NoError(t, err)
	_, err = b.AddUser(context.Background(), "serveur@afrispot.test", password, false)
	require.NoError(t, err)
	uc := auth.NewAuthUseCase(b.Users, b.Users, b.Revocations, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "afrispot-test",
	})
	return uc, b, adminID
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenValidoYSesion(t *testing.T) {
	ctx := context.Background()
	uc, _, adminID := newUseCase(t)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "chef@afrispot.test", Password: password})
	require.NoError(t, err)
	assert.Equal(t, adminID, res.User.ID)

	s, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, adminID, s.UserID)
	assert.NotEmpty(t, s.SessionID)
	assert.Equal(t, "chef@afrispot.test", uc.Session(s).User.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUseCase(t)

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "chef@afrispot.test", Password: "otra"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@afrispot.test", Password: password})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials), "usuario inexistente no se distingue")

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "no-es-email", Password: password})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLogin_CadaLoginEsUnaSesionDistinta(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUseCase(t)
	in := dto.LoginRequest{Email: "chef@afrispot.test", Password: password}

	a, err := uc.Login(ctx, in)
	require.NoError(t, err)
	b, err := uc.Login(ctx, in)
	require.NoError(t, err)

	sa, err := uc.Authenticate(ctx, a.Token)
	require.NoError(t, err)
	sb, err := uc.Authenticate(ctx, b.Token)
	require.NoError(t, err)
	assert.NotEqual(t, sa.SessionID, sb.SessionID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout y revocación
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_RevocaSoloEsaSesion(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUseCase(t)
	in := dto.LoginRequest{Email: "chef@afrispot.test", Password: password}
	first, err := uc.Login(ctx, in)
	require.NoError(t, err)
	second, err := uc.Login(ctx, in)
	require.NoError(t, err)
	s, err := uc.Authenticate(ctx, first.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, s))

	_, err = uc.Authenticate(ctx, first.Token)
	assert.True(t, errors.Is(err, domain.ErrSessionExpired))
	_, err = uc.Authenticate(ctx, second.Token)
	assert.NoError(t, err, "otras sesiones del mismo usuario siguen vigentes")
}

func TestAuthenticate_TokenBasura(t *testing.T) {
	uc, _, _ := newUseCase(t)
	_, err := uc.Authenticate(context.Background(), "no.es.un.jwt")
	assert.True(t, errors.Is(err, domain.ErrSessionExpired))
}

// ──────────────────────────────────────────────────────────────────────────────
// Privilegios
// ──────────────────────────────────────────────────────────────────────────────

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()
	uc, b, adminID := newUseCase(t)

	ok, err := uc.IsAdmin(ctx, adminID)
	require.NoError(t, err)
	assert.True(t, ok)

	user, err := b.Users.GetByEmail(ctx, "serveur@afrispot.test")
	require.NoError(t, err)
	ok, err = uc.IsAdmin(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
