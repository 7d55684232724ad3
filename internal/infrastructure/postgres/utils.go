package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// Querier interfaz común de *pgxpool.Pool y pgx.Tx: los repos funcionan dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation clave foránea inexistente o fila referenciada (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isCheckViolation restricción CHECK (23514).
func isCheckViolation(err error) bool {
	return pgCode(err) == "23514"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapWriteError traduce los errores de constraint a errores de dominio.
func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// colKind tipo de una columna filtrable; los valores que llegan como texto se convierten antes de la consulta.
type colKind int

const (
	kindText colKind = iota
	kindBool
	kindInt
	kindUUID
	kindTime
)

// columns lista blanca de columnas filtrables/ordenables de una tabla (nombre público → expresión SQL).
type columns map[string]struct {
	expr string
	kind colKind
}

// buildWhereOrder traduce q a "WHERE ... ORDER BY ..." con parámetros posicionales.
// Una columna fuera de la lista blanca es ErrInvalidInput.
func buildWhereOrder(cols columns, q repository.Query, args []any) (string, []any, error) {
	var b strings.Builder
	for i, f := range q.Filters {
		c, ok := cols[f.Column]
		if !ok {
			return "", nil, fmt.Errorf("%w: columna %q no filtrable", domain.ErrInvalidInput, f.Column)
		}
		v, err := coerce(c.kind, f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, f.Column, err)
		}
		args = append(args, v)
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		fmt.Fprintf(&b, "%s = $%d", c.expr, len(args))
	}
	if q.Order != nil {
		c, ok := cols[q.Order.Column]
		if !ok {
			return "", nil, fmt.Errorf("%w: columna %q no ordenable", domain.ErrInvalidInput, q.Order.Column)
		}
		dir := "DESC"
		if q.Order.Ascending {
			dir = "ASC"
		}
		fmt.Fprintf(&b, " ORDER BY %s %s", c.expr, dir)
	}
	return b.String(), args, nil
}

func coerce(kind colKind, v any) (any, error) {
	s, isString := v.(string)
	if !isString {
		return v, nil
	}
	switch kind {
	case kindBool:
		return strconv.ParseBool(s)
	case kindInt:
		return strconv.ParseInt(s, 10, 64)
	}
	return s, nil
}
