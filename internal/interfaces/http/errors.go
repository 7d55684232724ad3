package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
)

var codeStatus = map[string]int{
	dto.CodeValidation:         fiber.StatusBadRequest,
	dto.CodeInvalidBody:        fiber.StatusBadRequest,
	dto.CodeNotFound:           fiber.StatusNotFound,
	dto.CodeDuplicate:          fiber.StatusConflict,
	dto.CodeConflict:           fiber.StatusConflict,
	dto.CodeInvalidTransition:  fiber.StatusConflict,
	dto.CodeUnauthorized:       fiber.StatusUnauthorized,
	dto.CodeSessionExpired:     fiber.StatusUnauthorized,
	dto.CodeInvalidCredentials: fiber.StatusUnauthorized,
	dto.CodeForbidden:          fiber.StatusForbidden,
	dto.CodeInternal:           fiber.StatusInternalServerError,
}

// fail responde con el código estable de err. Los errores internos se registran y
// su detalle no sale al cliente.
func fail(c *fiber.Ctx, log zerolog.Logger, err error) error {
	code := dto.CodeFor(err)
	msg := err.Error()
	if code == dto.CodeInternal {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		msg = "error interno, intente más tarde"
	}
	return respondError(c, code, msg)
}

func respondError(c *fiber.Ctx, code, msg string) error {
	status, ok := codeStatus[code]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return respondError(c, dto.CodeInvalidBody, "cuerpo inválido")
}
