package dto

import (
	"errors"

	"github.com/jhoicas/afrispot-api/internal/domain"
)

// Códigos estables de ErrorResponse.
const (
	CodeValidation         = "VALIDATION"
	CodeInvalidBody        = "INVALID_BODY"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicate          = "DUPLICATE"
	CodeConflict           = "CONFLICT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeSessionExpired     = "SESSION_EXPIRED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeInternal           = "INTERNAL"
)

var codeErrors = []struct {
	code string
	err  error
}{
	{CodeValidation, domain.ErrInvalidInput},
	{CodeNotFound, domain.ErrNotFound},
	{CodeDuplicate, domain.ErrDuplicate},
	{CodeConflict, domain.ErrConflict},
	{CodeInvalidCredentials, domain.ErrInvalidCredentials},
	{CodeSessionExpired, domain.ErrSessionExpired},
	{CodeInvalidTransition, domain.ErrInvalidTransition},
	{CodeUnauthorized, domain.ErrUnauthorized},
	{CodeForbidden, domain.ErrForbidden},
}

// CodeFor código de error para err; INTERNAL si no es un error de dominio.
func CodeFor(err error) string {
	for _, ce := range codeErrors {
		if errors.Is(err, ce.err) {
			return ce.code
		}
	}
	return CodeInternal
}

// ErrorForCode error de dominio de un código recibido del servidor, o nil si no tiene equivalente.
func ErrorForCode(code string) error {
	if code == CodeInvalidBody {
		return domain.ErrInvalidInput
	}
	for _, ce := range codeErrors {
		if ce.code == code {
			return ce.err
		}
	}
	return nil
}
