// Package notice avisos transitorios para el operador (equivalente a los toasts del panel).
package notice

import (
	"sync"
	"time"

	"github.com/jhoicas/afrispot-api/internal/domain"
)

// Level gravedad del aviso.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice aviso mostrado al operador.
type Notice struct {
	Level   Level
	Title   string
	Message string
	At      time.Time
}

// Notifier destino de los avisos.
type Notifier interface {
	Notify(n Notice)
}

// Success construye un aviso de éxito.
func Success(message string) Notice {
	return Notice{Level: LevelSuccess, Title: "Éxito", Message: message, At: time.Now()}
}

// Info construye un aviso informativo.
func Info(message string) Notice {
	return Notice{Level: LevelInfo, Title: "Info", Message: message, At: time.Now()}
}

// Failure construye un aviso de error con el mensaje del backend o, si no hay, fallback.
func Failure(err error, fallback string) Notice {
	return Notice{Level: LevelError, Title: "Error", Message: domain.Message(err, fallback), At: time.Now()}
}

// Discard descarta todos los avisos.
type Discard struct{}

// Notify implementa Notifier.
func (Discard) Notify(Notice) {}

// Feed guarda los últimos avisos y los reenvía a los suscriptores.
type Feed struct {
	mu     sync.Mutex
	max    int
	items  []Notice
	subs   map[int]func(Notice)
	nextID int
}

// NewFeed crea un feed que conserva como máximo max avisos.
func NewFeed(max int) *Feed {
	if max <= 0 {
		max = 50
	}
	return &Feed{max: max, subs: make(map[int]func(Notice))}
}

// Notify implementa Notifier.
func (f *Feed) Notify(n Notice) {
	if n.At.IsZero() {
		n.At = time.Now()
	}
	f.mu.Lock()
	f.items = append(f.items, n)
	if len(f.items) > f.max {
		f.items = append([]Notice(nil), f.items[len(f.items)-f.max:]...)
	}
	subs := make([]func(Notice), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Recent devuelve los últimos n avisos, del más antiguo al más reciente.
func (f *Feed) Recent(n int) []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 || n > len(f.items) {
		n = len(f.items)
	}
	return append([]Notice(nil), f.items[len(f.items)-n:]...)
}

// Subscribe registra fn para cada aviso nuevo; devuelve la función para darse de baja.
func (f *Feed) Subscribe(fn func(Notice)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}
