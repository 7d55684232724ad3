// Package memory backend en proceso: tablas, usuarios, roles y sesiones sin base de datos.
// Lo usan los tests y la consola en modo demo.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// Schema describe cómo la tabla genérica accede a los campos de T.
type Schema[T any, P any] struct {
	Name string
	ID   func(*T) string
	// Prepare asigna ID y marcas de tiempo en el alta.
	Prepare func(rec *T, now time.Time)
	// Touch actualiza updated_at tras un patch.
	Touch func(rec *T, now time.Time)
	Apply func(rec *T, patch P)
	// Transition valida el paso de la fila actual a la fusionada (p. ej. estados de reserva).
	Transition func(before, after *T) error
	// Field devuelve el valor de una columna filtrable/ordenable.
	Field func(rec *T, column string) (any, bool)
	// Check restricciones sobre la propia tabla (únicos), con la tabla bloqueada; others excluye rec.
	Check func(rec *T, others []*T) error
	// References claves foráneas; se evalúa sin bloquear la tabla.
	References func(ctx context.Context, rec *T) error
	// BeforeDelete puede impedir el borrado (p. ej. categoría con platos); sin bloquear la tabla.
	BeforeDelete func(ctx context.Context, id string) error
	// Decorate completa las lecturas (p. ej. categoría del plato).
	Decorate func(rec *T)
}

// Table implementación genérica de repository.Table en memoria.
type Table[T any, P any] struct {
	schema Schema[T, P]
	clock  *Clock

	mu    sync.RWMutex
	rows  map[string]*T
	order []string // orden de inserción, desempata los ordenamientos
	fail  []error  // errores inyectados para las próximas operaciones
}

var _ repository.Table[struct{}, struct{}] = (*Table[struct{}, struct{}])(nil)

// NewTable crea una tabla vacía.
func NewTable[T any, P any](schema Schema[T, P], clock *Clock) *Table[T, P] {
	if clock == nil {
		clock = NewClock()
	}
	return &Table[T, P]{schema: schema, clock: clock, rows: make(map[string]*T)}
}

// FailNext hace que la próxima operación devuelva err (simula un fallo del backend).
func (t *Table[T, P]) FailNext(err error) {
	t.mu.Lock()
	t.fail = append(t.fail, err)
	t.mu.Unlock()
}

func (t *Table[T, P]) takeInjected() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.fail) == 0 {
		return nil
	}
	err := t.fail[0]
	t.fail = t.fail[1:]
	return err
}

// Select devuelve copias de las filas que cumplen los filtros, en el orden pedido.
func (t *Table[T, P]) Select(ctx context.Context, q repository.Query) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.takeInjected(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	rows := make([]*T, 0, len(t.rows))
	for _, id := range t.order {
		rows = append(rows, t.rows[id])
	}
	t.mu.RUnlock()

	out := make([]*T, 0, len(rows))
	for _, r := range rows {
		ok, err := t.matches(r, q.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t.copyOut(r))
		}
	}
	if q.Order != nil {
		if _, ok := t.schema.Field(new(T), q.Order.Column); !ok {
			return nil, fmt.Errorf("%w: columna de orden desconocida %q", domain.ErrInvalidInput, q.Order.Column)
		}
		col, asc := q.Order.Column, q.Order.Ascending
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := t.schema.Field(out[i], col)
			b, _ := t.schema.Field(out[j], col)
			c := compare(a, b)
			if asc {
				return c < 0
			}
			return c > 0
		})
	}
	return out, nil
}

// Get devuelve una copia de la fila o (nil, nil) si no existe.
func (t *Table[T, P]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	r, ok := t.rows[id]
	t.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return t.copyOut(r), nil
}

// Insert valida restricciones, asigna ID y marcas de tiempo y devuelve la fila creada.
func (t *Table[T, P]) Insert(ctx context.Context, record *T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: registro vacío", domain.ErrInvalidInput)
	}
	rec := *record
	if err := t.takeInjected(); err != nil {
		return nil, err
	}
	if t.schema.References != nil {
		if err := t.schema.References(ctx, &rec); err != nil {
			return nil, err
		}
	}

	t.mu.Lock()
	t.schema.Prepare(&rec, t.clock.Now())
	id := t.schema.ID(&rec)
	if _, exists := t.rows[id]; exists {
		t.mu.Unlock()
		return nil, fmt.Errorf("%w: %s %s", domain.ErrDuplicate, t.schema.Name, id)
	}
	if err := t.checkLocked(&rec, id); err != nil {
		t.mu.Unlock()
		return nil, err
	}
	stored := rec
	t.rows[id] = &stored
	t.order = append(t.order, id)
	t.mu.Unlock()

	return t.copyOut(&rec), nil
}

// Update fusiona el patch sobre la fila existente.
func (t *Table[T, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.takeInjected(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	cur, ok := t.rows[id]
	var rec T
	if ok {
		rec = *cur
	}
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, t.schema.Name, id)
	}
	before := rec
	t.schema.Apply(&rec, patch)
	if t.schema.Transition != nil {
		if err := t.schema.Transition(&before, &rec); err != nil {
			return nil, err
		}
	}
	if t.schema.References != nil {
		if err := t.schema.References(ctx, &rec); err != nil {
			return nil, err
		}
	}

	t.mu.Lock()
	if _, ok := t.rows[id]; !ok {
		t.mu.Unlock()
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, t.schema.Name, id)
	}
	if t.schema.Touch != nil {
		t.schema.Touch(&rec, t.clock.Now())
	}
	if err := t.checkLocked(&rec, id); err != nil {
		t.mu.Unlock()
		return nil, err
	}
	stored := rec
	t.rows[id] = &stored
	t.mu.Unlock()

	return t.copyOut(&rec), nil
}

// Delete elimina la fila; ErrNotFound si no existe.
func (t *Table[T, P]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.takeInjected(); err != nil {
		return err
	}
	t.mu.RLock()
	_, ok := t.rows[id]
	t.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, t.schema.Name, id)
	}
	if t.schema.BeforeDelete != nil {
		if err := t.schema.BeforeDelete(ctx, id); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, t.schema.Name, id)
	}
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len número de filas.
func (t *Table[T, P]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

func (t *Table[T, P]) checkLocked(rec *T, id string) error {
	if t.schema.Check == nil {
		return nil
	}
	others := make([]*T, 0, len(t.rows))
	for oid, r := range t.rows {
		if oid != id {
			others = append(others, r)
		}
	}
	return t.schema.Check(rec, others)
}

func (t *Table[T, P]) matches(r *T, filters []repository.Filter) (bool, error) {
	for _, f := range filters {
		v, ok := t.schema.Field(r, f.Column)
		if !ok {
			return false, fmt.Errorf("%w: columna de filtro desconocida %q", domain.ErrInvalidInput, f.Column)
		}
		if !equal(v, f.Value) {
			return false, nil
		}
	}
	return true, nil
}

func (t *Table[T, P]) copyOut(r *T) *T {
	cp := *r
	if t.schema.Decorate != nil {
		t.schema.Decorate(&cp)
	}
	return &cp
}

// equal compara valores de columna con tolerancia de tipo ("true" == true, "3" == 3).
func equal(a, b any) bool {
	return strings.EqualFold(fmt.Sprint(a), fmt.Sprint(b))
}

func compare(a, b any) int {
	switch x := a.(type) {
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	case int:
		y, _ := b.(int)
		return x - y
	case int64:
		y, _ := b.(int64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case bool:
		y, _ := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// Clock reloj estrictamente creciente: dos altas seguidas nunca comparten created_at.
type Clock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewClock reloj basado en time.Now.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Now devuelve la hora actual, al menos un microsegundo después de la anterior.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.now().UTC().Truncate(time.Microsecond)
	if !n.After(c.last) {
		n = c.last.Add(time.Microsecond)
	}
	c.last = n
	return n
}
