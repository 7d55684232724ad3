// Package store caché en cliente de una colección remota con mutaciones que recargan la lista.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/notice"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// ErrClosed el store fue cerrado; los resultados que lleguen después se descartan.
var ErrClosed = errors.New("store cerrado")

// Snapshot vista inmutable del store. Loading es true mientras haya alguna operación en curso.
type Snapshot[T any] struct {
	Items   []*T
	Loading bool
	Err     error
}

// Messages textos de los avisos al operador.
type Messages struct {
	LoadFailed string // error al recargar (el detalle va al log)
	Failed     string // fallback de mutaciones sin mensaje del backend
	Created    string
	Updated    string
	Deleted    string
}

// Options configuración de un store.
type Options[T any, P any] struct {
	Name          string           // nombre para logs
	Query         repository.Query // orden canónico (y filtros fijos)
	ID            func(*T) string
	Validate      func(*T) error // validación previa al alta; un error impide llamar al backend
	ValidatePatch func(P) error
	Notifier      notice.Notifier
	Logger        zerolog.Logger
	Messages      Messages
}

// Store caché de una colección. Toda mutación se hace en el backend y, si tiene éxito,
// se recarga la colección completa antes de volver. La caché refleja la última recarga
// que terminó, no la última que se lanzó.
type Store[T any, P any] struct {
	table repository.Table[T, P]
	opts  Options[T, P]
	log   zerolog.Logger

	mu       sync.Mutex
	items    []*T
	err      error
	inflight int
	epoch    uint64 // se incrementa en cada Reset
	closed   bool
	subs     map[int]func(Snapshot[T])
	nextSub  int
}

// New crea el store sobre table. No carga nada hasta el primer Refetch.
func New[T any, P any](table repository.Table[T, P], opts Options[T, P]) *Store[T, P] {
	if opts.Notifier == nil {
		opts.Notifier = notice.Discard{}
	}
	if opts.Messages.LoadFailed == "" {
		opts.Messages.LoadFailed = "No se pudieron cargar los datos"
	}
	if opts.Messages.Failed == "" {
		opts.Messages.Failed = "Ocurrió un error inesperado"
	}
	return &Store[T, P]{
		table: table,
		opts:  opts,
		log:   opts.Logger.With().Str("store", opts.Name).Logger(),
		subs:  make(map[int]func(Snapshot[T])),
	}
}

// List devuelve la caché actual (posiblemente desactualizada), el flag de carga y el último error.
func (s *Store[T, P]) List() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Find busca en la caché por ID.
func (s *Store[T, P]) Find(id string) (*T, bool) {
	if s.opts.ID == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if s.opts.ID(it) == id {
			cp := *it
			return &cp, true
		}
	}
	return nil, false
}

// Refetch consulta la colección completa. Con éxito reemplaza la caché de una vez y limpia el error;
// con error conserva la caché, guarda el error y avisa al operador.
func (s *Store[T, P]) Refetch(ctx context.Context) error {
	if !s.begin() {
		return ErrClosed
	}
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()
	items, err := s.table.Select(ctx, s.opts.Query)

	s.mu.Lock()
	s.inflight--
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.epoch != epoch {
		// la caché se vació mientras tanto: la respuesta pertenece a la identidad anterior
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.publish(snap)
		return nil
	}
	if err != nil {
		s.err = err
	} else {
		s.items = items
		s.err = nil
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("op", "refetch").Msg("error al recargar la colección")
		s.opts.Notifier.Notify(notice.Failure(err, s.opts.Messages.LoadFailed))
	}
	s.publish(snap)
	return err
}

// Create valida el registro, lo inserta y recarga la colección antes de volver.
// Si la validación falla no se llama al backend. Con error la caché no se toca.
func (s *Store[T, P]) Create(ctx context.Context, record *T) (*T, error) {
	if s.opts.Validate != nil {
		if err := s.opts.Validate(record); err != nil {
			s.fail("create", err)
			return nil, err
		}
	}
	if !s.begin() {
		return nil, ErrClosed
	}
	defer s.end()

	created, err := s.table.Insert(ctx, record)
	if err != nil {
		s.fail("create", err)
		return nil, err
	}
	_ = s.Refetch(ctx)
	s.succeed(s.opts.Messages.Created)
	return created, nil
}

// Insert da de alta sin recargar la colección, para envíos de quien no puede leerla.
// Publica Loading mientras dure; los avisos quedan a cargo de quien llama.
func (s *Store[T, P]) Insert(ctx context.Context, record *T) (*T, error) {
	if !s.begin() {
		return nil, ErrClosed
	}
	defer s.end()

	created, err := s.table.Insert(ctx, record)
	if err != nil {
		s.log.Error().Err(err).Str("op", "insert").Msg("alta rechazada")
		return nil, err
	}
	return created, nil
}

// Update fusiona en el backend solo los campos del patch y recarga la colección.
func (s *Store[T, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	if s.opts.ValidatePatch != nil {
		if err := s.opts.ValidatePatch(patch); err != nil {
			s.fail("update", err)
			return nil, err
		}
	}
	if !s.begin() {
		return nil, ErrClosed
	}
	defer s.end()

	updated, err := s.table.Update(ctx, id, patch)
	if err != nil {
		s.fail("update", err)
		return nil, err
	}
	_ = s.Refetch(ctx)
	s.succeed(s.opts.Messages.Updated)
	return updated, nil
}

// Delete elimina la fila en el backend y recarga la colección.
func (s *Store[T, P]) Delete(ctx context.Context, id string) error {
	if !s.begin() {
		return ErrClosed
	}
	defer s.end()

	if err := s.table.Delete(ctx, id); err != nil {
		s.fail("delete", err)
		return err
	}
	_ = s.Refetch(ctx)
	s.succeed(s.opts.Messages.Deleted)
	return nil
}

// Reset vacía la caché y el error. Las recargas en curso se descartan al llegar.
func (s *Store[T, P]) Reset() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.epoch++
	s.items = nil
	s.err = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
}

// Subscribe registra fn para cada cambio de estado; devuelve la función para darse de baja.
func (s *Store[T, P]) Subscribe(fn func(Snapshot[T])) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close desconecta el store: las respuestas pendientes se descartan al llegar y no se notifican más cambios.
func (s *Store[T, P]) Close() {
	s.mu.Lock()
	s.closed = true
	s.subs = make(map[int]func(Snapshot[T]))
	s.mu.Unlock()
}

func (s *Store[T, P]) begin() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.inflight++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
	return true
}

func (s *Store[T, P]) end() {
	s.mu.Lock()
	s.inflight--
	if s.closed {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(snap)
}

func (s *Store[T, P]) fail(op string, err error) {
	s.log.Error().Err(err).Str("op", op).Msg("operación rechazada")
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if !closed {
		s.opts.Notifier.Notify(notice.Failure(err, s.opts.Messages.Failed))
	}
}

func (s *Store[T, P]) succeed(msg string) {
	if msg == "" {
		return
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if !closed {
		s.opts.Notifier.Notify(notice.Success(msg))
	}
}

func (s *Store[T, P]) snapshotLocked() Snapshot[T] {
	items := make([]*T, len(s.items))
	for i, it := range s.items {
		cp := *it
		items[i] = &cp
	}
	return Snapshot[T]{Items: items, Loading: s.inflight > 0, Err: s.err}
}

func (s *Store[T, P]) publish(snap Snapshot[T]) {
	s.mu.Lock()
	subs := make([]func(Snapshot[T]), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
