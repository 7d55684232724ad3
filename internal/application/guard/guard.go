// Package guard decide si un contenido protegido puede mostrarse con la sesión actual.
package guard

import "github.com/jhoicas/afrispot-api/internal/application/session"

// Requirement privilegio requerido por el contenido.
type Requirement int

const (
	RequireNone Requirement = iota
	RequireAuthenticated
	RequireAdmin
)

// Decision resultado de Decide; la navegación la hace quien llama.
type Decision int

const (
	Render Decision = iota
	RedirectLogin
	RedirectHome
	Await
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect-to-login"
	case RedirectHome:
		return "redirect-to-home"
	case Await:
		return "await"
	}
	return "unknown"
}

// Rutas de redirección del back-office.
const (
	LoginPath = "/admin-login"
	HomePath  = "/"
)

// Decide función pura sobre el estado de sesión:
//   - await mientras la sesión se inicializa, o mientras el privilegio requerido aún no se conoce
//   - redirect-to-login si se requiere sesión y es anónima
//   - redirect-to-home si se requiere admin y la identidad está confirmada sin privilegio
//   - render en el resto de casos
func Decide(s session.Snapshot, req Requirement) Decision {
	if req == RequireNone {
		return Render
	}
	switch s.State {
	case session.StateInitializing:
		return Await
	case session.StateAnonymous:
		return RedirectLogin
	}
	if req == RequireAuthenticated {
		return Render
	}
	switch s.State {
	case session.StateAuthenticatedAdmin:
		return Render
	case session.StateAuthenticatedUser:
		return RedirectHome
	}
	// privilegio pendiente: nunca se muestra contenido de admin con un valor no confirmado
	return Await
}

// Target ruta a la que navegar para d, o "" si no hay redirección.
func Target(d Decision) string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectHome:
		return HomePath
	}
	return ""
}
