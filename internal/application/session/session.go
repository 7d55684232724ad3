// Package session fuente única de la identidad actual y de su privilegio de administrador.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/notice"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// State estado de la sesión.
type State int

const (
	StateInitializing State = iota
	StateAnonymous
	StateAuthenticated      // privilegio aún desconocido (búsqueda en curso)
	StateAuthenticatedUser  // confirmado sin privilegio
	StateAuthenticatedAdmin // confirmado administrador
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateAuthenticatedUser:
		return "authenticated-non-admin"
	case StateAuthenticatedAdmin:
		return "authenticated-admin"
	}
	return "unknown"
}

// Snapshot vista inmutable de la sesión.
type Snapshot struct {
	State    State
	Identity *entity.Identity // nil si anónimo
	Loading  bool             // inicialización, login o logout en curso
	Err      error            // último error de login
}

// IsAdmin true solo con privilegio confirmado para la identidad actual.
func (s Snapshot) IsAdmin() bool { return s.State == StateAuthenticatedAdmin }

// IsAuthenticated true en cualquier estado autenticado.
func (s Snapshot) IsAuthenticated() bool {
	return s.State == StateAuthenticated || s.State == StateAuthenticatedUser || s.State == StateAuthenticatedAdmin
}

// AdminKnown true cuando el privilegio de la identidad actual ya está resuelto.
func (s Snapshot) AdminKnown() bool {
	return s.State == StateAuthenticatedUser || s.State == StateAuthenticatedAdmin
}

// Manager única parte del sistema que modifica la identidad actual.
// Cada cambio de identidad incrementa gen: un resultado de privilegio de una identidad anterior se descarta.
type Manager struct {
	auth     ports.AuthClient
	notifier notice.Notifier
	log      zerolog.Logger

	mu       sync.Mutex
	state    State
	identity *entity.Identity
	gen      uint64
	ops      int
	err      error
	closed   bool
	subs     map[int]func(Snapshot)
	nextSub  int
	unsub    func()
}

// NewManager crea el gestor en estado initializing y se suscribe a los eventos del backend.
func NewManager(auth ports.AuthClient, notifier notice.Notifier, log zerolog.Logger) *Manager {
	if notifier == nil {
		notifier = notice.Discard{}
	}
	m := &Manager{
		auth:     auth,
		notifier: notifier,
		log:      log.With().Str("component", "session").Logger(),
		state:    StateInitializing,
		subs:     make(map[int]func(Snapshot)),
	}
	m.unsub = auth.OnAuthChange(m.handleAuthEvent)
	return m
}

// Snapshot estado actual.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// CurrentIdentity identidad actual o nil.
func (m *Manager) CurrentIdentity() *entity.Identity { return m.Snapshot().Identity }

// IsAdmin privilegio confirmado de la identidad actual.
func (m *Manager) IsAdmin() bool { return m.Snapshot().IsAdmin() }

// Loading operación de sesión en curso.
func (m *Manager) Loading() bool { return m.Snapshot().Loading }

// Init recupera la sesión persistida. Sin sesión (o con error al leerla) queda anónimo.
// Con sesión pasa a authenticated y resuelve el privilegio antes de volver.
func (m *Manager) Init(ctx context.Context) {
	m.beginOp()
	defer m.endOp()

	id, err := m.auth.GetSession(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("no se pudo recuperar la sesión persistida")
	}
	m.mu.Lock()
	if m.closed || m.state != StateInitializing {
		// un login o un evento externo ya fijó la identidad
		m.mu.Unlock()
		return
	}
	gen := m.setIdentityLocked(id)
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snap)

	if id != nil {
		m.resolvePrivilege(ctx, gen, id.ID)
	}
}

// SignIn autentica con el backend. Con éxito fija la identidad y resuelve el privilegio antes de volver.
// Con error el estado queda anónimo y el error del backend se devuelve sin modificar.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	m.beginOp()
	defer m.endOp()

	id, err := m.auth.SignIn(ctx, email, password)
	if err != nil {
		m.mu.Lock()
		if !m.closed {
			m.err = err
			if m.state == StateInitializing {
				m.state = StateAnonymous
			}
		}
		m.mu.Unlock()
		m.log.Warn().Err(err).Str("email", email).Msg("login rechazado")
		m.notifier.Notify(notice.Failure(err, "No se pudo iniciar sesión"))
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.err = nil
	gen := m.gen
	if !id.Same(m.identity) || !m.authenticatedLocked() {
		gen = m.setIdentityLocked(id)
	}
	resolved := m.state != StateAuthenticated
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snap)

	if !resolved {
		m.resolvePrivilege(ctx, gen, id.ID)
	}
	return nil
}

// SignOut borra primero la identidad local y el privilegio en caché; luego revoca en el backend.
// Siempre termina anónimo aunque la revocación remota falle (el error solo se registra).
func (m *Manager) SignOut(ctx context.Context) {
	m.beginOp()
	defer m.endOp()

	m.mu.Lock()
	if !m.closed {
		m.setIdentityLocked(nil)
		m.err = nil
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snap)

	if err := m.auth.SignOut(ctx); err != nil {
		m.log.Warn().Err(err).Msg("fallo al revocar la sesión remota; sesión local cerrada")
	}
}

// Subscribe registra fn para cada cambio; devuelve la función para darse de baja.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Close libera la suscripción al backend. Los resultados pendientes se descartan.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.gen++
	m.subs = make(map[int]func(Snapshot))
	unsub := m.unsub
	m.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// handleAuthEvent cambios de sesión iniciados fuera de este gestor (expiración, revocación, otra pestaña).
func (m *Manager) handleAuthEvent(ev ports.AuthEvent) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	switch ev.Kind {
	case ports.AuthSignedOut, ports.AuthExpired:
		if m.identity == nil {
			m.mu.Unlock()
			return
		}
		m.setIdentityLocked(nil)
		snap := m.snapshotLocked()
		m.mu.Unlock()
		m.log.Info().Str("event", ev.Kind.String()).Msg("sesión cerrada por el backend")
		if ev.Kind == ports.AuthExpired {
			m.notifier.Notify(notice.Info("La sesión expiró, vuelva a iniciar sesión"))
		}
		m.publish(snap)
	case ports.AuthSignedIn:
		// con un login o Init local en curso, esa operación fija la identidad y resuelve el privilegio
		if ev.Identity == nil || ev.Identity.Same(m.identity) || m.ops > 0 {
			m.mu.Unlock()
			return
		}
		gen := m.setIdentityLocked(ev.Identity)
		snap := m.snapshotLocked()
		m.mu.Unlock()
		m.publish(snap)
		go m.resolvePrivilege(context.Background(), gen, ev.Identity.ID)
	default:
		m.mu.Unlock()
	}
}

// resolvePrivilege consulta el registro de privilegios. Un error o la falta de registro
// se tratan como "no admin". Si la identidad cambió mientras tanto, el resultado se descarta.
func (m *Manager) resolvePrivilege(ctx context.Context, gen uint64, userID string) {
	isAdmin, err := m.auth.IsAdmin(ctx, userID)
	if err != nil {
		m.log.Warn().Err(err).Str("user_id", userID).Msg("búsqueda de privilegios fallida; se asume sin privilegio")
		isAdmin = false
	}
	m.mu.Lock()
	if m.closed || m.gen != gen || m.identity == nil || m.identity.ID != userID {
		m.mu.Unlock()
		return
	}
	if isAdmin {
		m.state = StateAuthenticatedAdmin
	} else {
		m.state = StateAuthenticatedUser
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snap)
}

// setIdentityLocked cambia la identidad e invalida cualquier privilegio previo.
func (m *Manager) setIdentityLocked(id *entity.Identity) uint64 {
	m.gen++
	if id == nil {
		m.identity = nil
		m.state = StateAnonymous
		return m.gen
	}
	cp := *id
	m.identity = &cp
	m.state = StateAuthenticated
	return m.gen
}

func (m *Manager) authenticatedLocked() bool {
	return m.state == StateAuthenticated || m.state == StateAuthenticatedUser || m.state == StateAuthenticatedAdmin
}

func (m *Manager) beginOp() {
	m.mu.Lock()
	m.ops++
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snap)
}

func (m *Manager) endOp() {
	m.mu.Lock()
	m.ops--
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.publish(snap)
}

func (m *Manager) snapshotLocked() Snapshot {
	var id *entity.Identity
	if m.identity != nil {
		cp := *m.identity
		id = &cp
	}
	return Snapshot{
		State:    m.state,
		Identity: id,
		Loading:  m.state == StateInitializing || m.ops > 0,
		Err:      m.err,
	}
}

func (m *Manager) publish(snap Snapshot) {
	m.mu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
