package repository

import (
	"context"
	"strings"
)

// Filter condición de igualdad sobre una columna.
type Filter struct {
	Column string
	Value  any
}

// Order orden de una consulta.
type Order struct {
	Column    string
	Ascending bool
}

// Query filtros de igualdad + orden opcional para Select.
type Query struct {
	Filters []Filter
	Order   *Order
}

// Where devuelve una copia de q con un filtro adicional.
func (q Query) Where(column string, value any) Query {
	out := Query{Order: q.Order, Filters: make([]Filter, 0, len(q.Filters)+1)}
	out.Filters = append(out.Filters, q.Filters...)
	out.Filters = append(out.Filters, Filter{Column: column, Value: value})
	return out
}

// OrderBy devuelve una copia de q con el orden indicado.
func (q Query) OrderBy(column string, ascending bool) Query {
	q.Order = &Order{Column: column, Ascending: ascending}
	return q
}

// ParseOrder interpreta "columna.asc" o "columna.desc". Sin sufijo se asume ascendente.
func ParseOrder(s string) (*Order, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	col, dir, found := strings.Cut(s, ".")
	if col == "" {
		return nil, false
	}
	if !found {
		return &Order{Column: col, Ascending: true}, true
	}
	switch strings.ToLower(dir) {
	case "asc":
		return &Order{Column: col, Ascending: true}, true
	case "desc":
		return &Order{Column: col, Ascending: false}, true
	}
	return nil, false
}

// String formato inverso de ParseOrder.
func (o Order) String() string {
	if o.Ascending {
		return o.Column + ".asc"
	}
	return o.Column + ".desc"
}

// Table puerto genérico de una colección remota: select/insert/update/delete.
// Update fusiona solo los campos presentes en el patch. Update y Delete devuelven
// domain.ErrNotFound si no existe la fila.
type Table[T any, P any] interface {
	Select(ctx context.Context, q Query) ([]*T, error)
	Insert(ctx context.Context, record *T) (*T, error)
	Update(ctx context.Context, id string, patch P) (*T, error)
	Delete(ctx context.Context, id string) error
}
