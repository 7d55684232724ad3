package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrSessionExpired     = errors.New("la sesión expiró o fue revocada")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
)

// BackendError error devuelto por el backend remoto: conserva el código y el mensaje
// legible del servidor y se desenvuelve al error de dominio equivalente.
type BackendError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *BackendError) Unwrap() error { return e.Err }

// Message devuelve el texto a mostrar al operador para err. Prioriza el mensaje del backend,
// luego el de los errores de dominio y, si no hay ninguno, fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	for _, known := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrUnauthorized, ErrForbidden,
		ErrConflict, ErrInvalidCredentials, ErrSessionExpired, ErrInvalidTransition,
	} {
		if errors.Is(err, known) {
			return err.Error()
		}
	}
	return fallback
}
