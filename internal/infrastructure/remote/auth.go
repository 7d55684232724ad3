package remote

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

var _ ports.AuthClient = (*Client)(nil)

// SignIn inicia sesión, la persiste y programa su expiración.
func (c *Client) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, fiber.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if err := c.saveSession(out); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo guardar la sesión; no sobrevivirá a un reinicio")
	}
	id := out.ToIdentity()
	c.setCurrent(id)
	cp := *id
	c.emit(ports.AuthEvent{Kind: ports.AuthSignedIn, Identity: &cp})
	return id, nil
}

// SignOut borra la sesión local y después la revoca en el servidor.
// El error devuelto es solo el de la revocación remota.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	prev := c.current
	c.clearLocked()
	c.mu.Unlock()
	c.removeSession()
	if prev == nil {
		return nil
	}
	c.emit(ports.AuthEvent{Kind: ports.AuthSignedOut})

	err := c.doAs(ctx, prev.Token, fiber.MethodPost, "/api/auth/logout")
	var be *domain.BackendError
	if errors.As(err, &be) && be.Status == fiber.StatusUnauthorized {
		// ya revocada o caducada
		return nil
	}
	return err
}

// GetSession recupera la sesión persistida y la valida con el servidor.
// Sin sesión, caducada o rechazada por el servidor → (nil, nil).
func (c *Client) GetSession(ctx context.Context) (*entity.Identity, error) {
	c.mu.Lock()
	if c.current != nil {
		cp := *c.current
		c.mu.Unlock()
		return &cp, nil
	}
	c.mu.Unlock()

	stored, err := c.loadSession()
	if err != nil || stored == nil {
		return nil, err
	}
	if !stored.ExpiresAt.After(time.Now()) {
		c.removeSession()
		return nil, nil
	}
	id := stored.ToIdentity()
	c.setCurrent(id)

	var out dto.SessionResponse
	if err := c.do(ctx, fiber.MethodGet, "/api/auth/session", nil, nil, &out); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrUnauthorized) {
			c.mu.Lock()
			c.clearLocked()
			c.mu.Unlock()
			c.removeSession()
			return nil, nil
		}
		c.mu.Lock()
		c.clearLocked()
		c.mu.Unlock()
		return nil, err
	}
	cp := *id
	return &cp, nil
}

// IsAdmin consulta el privilegio de userID. Solo se puede consultar la identidad de la
// sesión actual; cualquier otra cuenta se responde como sin privilegio.
func (c *Client) IsAdmin(ctx context.Context, userID string) (bool, error) {
	c.mu.Lock()
	cur := c.current
	c.mu.Unlock()
	if cur == nil || cur.ID != userID {
		return false, nil
	}
	var out dto.AdminResponse
	if err := c.do(ctx, fiber.MethodGet, "/api/auth/admin", nil, nil, &out); err != nil {
		return false, err
	}
	return out.IsAdmin, nil
}

// OnAuthChange registra fn; devuelve la función para darse de baja.
func (c *Client) OnAuthChange(fn func(ports.AuthEvent)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// doAs petición sin cuerpo con un token distinto del actual (logout tras limpiar la sesión).
func (c *Client) doAs(ctx context.Context, token, method, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.cfg.BaseURL + path)
	a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	a.Timeout(c.cfg.Timeout)
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return err
	}
	status, body, errs := a.Bytes()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if status >= fiber.StatusBadRequest {
		// token ya no es el actual: backendError no debe cerrar nada
		return c.backendError("", status, body)
	}
	return nil
}

// setCurrent fija la sesión y programa su expiración local.
func (c *Client) setCurrent(id *entity.Identity) {
	cp := *id
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
	c.current = &cp
	if left := time.Until(cp.ExpiresAt); !cp.ExpiresAt.IsZero() && left > 0 {
		token := cp.Token
		c.timer = time.AfterFunc(left, func() { c.expire(token) })
	}
}

// expire cierra la sesión si token sigue siendo el actual y avisa con AuthExpired.
func (c *Client) expire(token string) {
	c.mu.Lock()
	if c.current == nil || c.current.Token != token {
		c.mu.Unlock()
		return
	}
	c.clearLocked()
	c.mu.Unlock()
	c.removeSession()
	c.log.Info().Msg("sesión expirada o revocada por el servidor")
	c.emit(ports.AuthEvent{Kind: ports.AuthExpired})
}

func (c *Client) clearLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = nil
}

func (c *Client) emit(ev ports.AuthEvent) {
	c.mu.Lock()
	fns := make([]func(ports.AuthEvent), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
