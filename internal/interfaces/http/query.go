package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// listQuery traduce ?columna=valor&order=columna.asc|desc a repository.Query.
// Solo se aceptan las columnas de filters; los valores llegan como texto y el
// repositorio los convierte al tipo de la columna.
func listQuery(c *fiber.Ctx, filters ...string) (repository.Query, error) {
	var q repository.Query
	for _, col := range filters {
		if v := c.Query(col); v != "" {
			q = q.Where(col, v)
		}
	}
	if s := c.Query("order"); s != "" {
		o, ok := repository.ParseOrder(s)
		if !ok {
			return q, fmt.Errorf("%w: order %q, se espera columna.asc o columna.desc", domain.ErrInvalidInput, s)
		}
		q.Order = o
	}
	return q, nil
}
