// Package remote cliente HTTP del backend de Afrispot: autenticación por sesión y CRUD por tabla.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

const defaultTimeout = 10 * time.Second

// Config configuración del cliente.
type Config struct {
	BaseURL     string        // p. ej. http://localhost:8080
	SessionFile string        // vacío = la sesión no sobrevive a un reinicio
	Timeout     time.Duration // por petición
}

// Client cliente del backend. Guarda la sesión actual y la notifica a los suscriptores.
type Client struct {
	cfg Config
	log zerolog.Logger

	mu        sync.Mutex
	current   *entity.Identity
	timer     *time.Timer
	listeners map[int]func(ports.AuthEvent)
	nextID    int
}

// New crea el cliente. No hace I/O hasta la primera llamada.
func New(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:       cfg,
		log:       log.With().Str("component", "remote").Logger(),
		listeners: make(map[int]func(ports.AuthEvent)),
	}
}

// do ejecuta la petición y decodifica la respuesta en out (si no es nil).
// El Agent de fiber no acepta context: la cancelación se aplica antes de enviar y el
// plazo efectivo es el menor entre Timeout y el deadline de ctx.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := c.cfg.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			if left <= 0 {
				return context.DeadlineExceeded
			}
			timeout = left
		}
	}

	uri := c.cfg.BaseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	token := c.token()

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if in != nil {
		a.JSON(in)
	}
	a.Timeout(timeout)
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	status, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}
	if status >= fiber.StatusBadRequest {
		return c.backendError(token, status, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: respuesta inválida: %w", method, path, err)
	}
	return nil
}

// backendError convierte el cuerpo de error del servidor. Un SESSION_EXPIRED con la
// sesión que hizo la petición cierra esa sesión localmente.
func (c *Client) backendError(token string, status int, body []byte) error {
	var payload dto.ErrorResponse
	_ = json.Unmarshal(body, &payload)
	be := &domain.BackendError{Status: status, Code: payload.Code, Message: payload.Message}
	be.Err = dto.ErrorForCode(payload.Code)
	if be.Err == nil {
		be.Err = fmt.Errorf("backend respondió %d", status)
	}
	if payload.Code == dto.CodeSessionExpired && token != "" {
		c.expire(token)
	}
	return be
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ""
	}
	return c.current.Token
}
