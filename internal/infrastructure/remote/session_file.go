package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
)

// saveSession persiste la respuesta de login (token incluido) con permisos 0600.
func (c *Client) saveSession(s dto.LoginResponse) error {
	if c.cfg.SessionFile == "" {
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(c.cfg.SessionFile, raw, 0o600)
}

// loadSession lee la sesión persistida; (nil, nil) si no hay archivo.
func (c *Client) loadSession() (*dto.LoginResponse, error) {
	if c.cfg.SessionFile == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(c.cfg.SessionFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var s dto.LoginResponse
	if err := json.Unmarshal(raw, &s); err != nil || s.Token == "" {
		c.removeSession()
		return nil, nil
	}
	return &s, nil
}

func (c *Client) removeSession() {
	if c.cfg.SessionFile == "" {
		return
	}
	if err := os.Remove(c.cfg.SessionFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.log.Warn().Err(err).Msg("no se pudo borrar la sesión persistida")
	}
}
