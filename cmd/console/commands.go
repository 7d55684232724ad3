package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/afrispot-api/internal/application/console"
	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/guard"
	"github.com/jhoicas/afrispot-api/internal/application/session"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

const help = `comandos:
  login <email> <password>       iniciar sesión
  logout                         cerrar sesión
  whoami                         sesión actual
  menu [admin]                   carta pública (o completa con admin)
  cat add <nombre> [icono]       nueva categoría
  item add <slug> <precio> <nombre...>
  item toggle <id>               disponible / no disponible
  book <nombre> <tel> <AAAA-MM-DD HH:MM> <personas>
  res [pending|confirmed|cancelled]
  res confirm|cancel <id>
  reviews [all|approved|pending|featured]
  review add <nombre> <1-5> <comentario...>
  review approve|reject|feature|unfeature <id>
  stats                          contadores del panel
  refresh                        recargar datos
  quit`

// printer serializa la salida: los avisos llegan desde otras goroutines.
type printer struct {
	mu sync.Mutex
	w  io.Writer
}

func newPrinter(w io.Writer) *printer { return &printer{w: w} }

func (p *printer) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format, args...)
}

type shell struct {
	c   *console.Console
	out *printer
}

func describeSession(s session.Snapshot) string {
	if s.Identity == nil {
		return s.State.String()
	}
	return fmt.Sprintf("%s (%s)", s.Identity.Email, s.State)
}

// exec ejecuta una línea; devuelve true para salir.
func (sh *shell) exec(ctx context.Context, line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}
	var err error
	switch args[0] {
	case "quit", "exit":
		return true
	case "help":
		sh.out.Printf("%s\n", help)
	case "login":
		if len(args) != 3 {
			sh.out.Printf("uso: login <email> <password>\n")
			return false
		}
		err = sh.c.SignIn(ctx, args[1], args[2])
	case "logout":
		sh.c.SignOut(ctx)
	case "whoami":
		sh.out.Printf("%s\n", describeSession(sh.c.Session.Snapshot()))
	case "refresh":
		err = sh.c.Refresh(ctx)
	case "menu":
		sh.printMenu(len(args) > 1 && args[1] == "admin")
	case "book":
		err = sh.book(ctx, args[1:])
	case "cat", "item", "res", "stats", "reviews":
		if !sh.allowed() {
			return false
		}
		err = sh.admin(ctx, args)
	case "review":
		if len(args) > 1 && args[1] == "add" {
			err = sh.addReview(ctx, args[2:])
		} else if sh.allowed() {
			err = sh.moderate(ctx, args[1:])
		}
	default:
		sh.out.Printf("comando desconocido %q\n", args[0])
	}
	if err != nil {
		sh.out.Printf("error: %v\n", err)
	}
	return false
}

// allowed aplica el guard de administración antes de mostrar el panel.
func (sh *shell) allowed() bool {
	switch sh.c.Decide(guard.RequireAdmin) {
	case guard.Render:
		return true
	case guard.Await:
		sh.out.Printf("comprobando privilegios, reintente\n")
	case guard.RedirectLogin:
		sh.out.Printf("inicie sesión (login <email> <password>)\n")
	default:
		sh.out.Printf("la cuenta no tiene privilegios de administrador\n")
	}
	return false
}

func (sh *shell) admin(ctx context.Context, args []string) error {
	switch {
	case args[0] == "stats":
		sh.printStats()
	case args[0] == "cat" && len(args) >= 3 && args[1] == "add":
		icon := ""
		if len(args) > 3 {
			icon = args[3]
		}
		_, err := sh.c.AddCategory(ctx, args[2], "", icon)
		return err
	case args[0] == "item" && len(args) >= 5 && args[1] == "add":
		return sh.addItem(ctx, args[2], args[3], strings.Join(args[4:], " "))
	case args[0] == "item" && len(args) == 3 && args[1] == "toggle":
		_, err := sh.c.ToggleAvailability(ctx, args[2])
		return err
	case args[0] == "res" && len(args) == 3 && (args[1] == "confirm" || args[1] == "cancel"):
		status := entity.ReservationConfirmed
		if args[1] == "cancel" {
			status = entity.ReservationCancelled
		}
		_, err := sh.c.UpdateReservationStatus(ctx, args[2], status)
		return err
	case args[0] == "res":
		status := entity.ReservationPending
		if len(args) > 1 {
			status = entity.ReservationStatus(args[1])
		}
		for _, r := range sh.c.ReservationsByStatus(status) {
			sh.out.Printf("%s  %s  %-20s %-15s %2d pers.  %s\n",
				r.ID, r.DateTime.Local().Format("02-01 15:04"), r.Name, r.Phone, r.Guests, r.Status)
		}
	case args[0] == "reviews":
		f := ""
		if len(args) > 1 {
			f = args[1]
		}
		filter, err := console.ParseReviewFilter(f)
		if err != nil {
			return err
		}
		for _, r := range sh.c.ReviewsByFilter(filter) {
			sh.out.Printf("%s  %s  %-15s aprobada=%t destacada=%t  %s\n",
				r.ID, strings.Repeat("★", r.Rating), r.Name, r.Approved, r.Featured, r.Comment)
		}
	default:
		sh.out.Printf("uso incorrecto, vea 'help'\n")
	}
	return nil
}

func (sh *shell) addItem(ctx context.Context, categorySlug, price, name string) error {
	var categoryID string
	for _, cat := range sh.c.Categories.List().Items {
		if cat.Slug == categorySlug || cat.ID == categorySlug {
			categoryID = cat.ID
		}
	}
	if categoryID == "" {
		return fmt.Errorf("categoría %q no encontrada", categorySlug)
	}
	p, err := strconv.ParseInt(price, 10, 64)
	if err != nil {
		return fmt.Errorf("precio %q: %w", price, err)
	}
	_, err = sh.c.AddMenuItem(ctx, &entity.MenuItem{Name: name, Description: name, Price: p, CategoryID: categoryID, Available: true})
	return err
}

func (sh *shell) book(ctx context.Context, args []string) error {
	if len(args) != 5 {
		return fmt.Errorf("uso: book <nombre> <tel> <AAAA-MM-DD HH:MM> <personas>")
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", args[2]+" "+args[3], time.Local)
	if err != nil {
		return err
	}
	_, err = sh.c.SubmitReservation(ctx, dto.CreateReservationRequest{
		Name: args[0], Phone: args[1], DateTime: at, Guests: dto.ParseFlexInt(args[4]),
	})
	return err
}

func (sh *shell) addReview(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("uso: review add <nombre> <1-5> <comentario...>")
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	_, err = sh.c.SubmitReview(ctx, dto.CreateReviewRequest{Name: args[0], Rating: rating, Comment: strings.Join(args[2:], " ")})
	return err
}

func (sh *shell) moderate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("uso: review approve|reject|feature|unfeature <id>")
	}
	var err error
	switch args[0] {
	case "approve":
		_, err = sh.c.SetApproved(ctx, args[1], true)
	case "reject":
		_, err = sh.c.SetApproved(ctx, args[1], false)
	case "feature":
		_, err = sh.c.SetFeatured(ctx, args[1], true)
	case "unfeature":
		_, err = sh.c.SetFeatured(ctx, args[1], false)
	default:
		err = fmt.Errorf("acción %q desconocida", args[0])
	}
	return err
}

func (sh *shell) printMenu(admin bool) {
	if admin && !sh.allowed() {
		return
	}
	for _, sec := range sh.c.MenuSections(!admin) {
		sh.out.Printf("%s %s\n", sec.Category.Icon, strings.ToUpper(sec.Category.Name))
		for _, it := range sec.Items {
			mark := ""
			if !it.Available {
				mark = " (no disponible)"
			}
			sh.out.Printf("  %-36s %8d FCFA%s   %s\n", it.Name, it.Price, mark, it.ID)
		}
	}
}

func (sh *shell) printStats() {
	r := sh.c.ReservationCounters()
	v := sh.c.ReviewCounters()
	sh.out.Printf("reservas: %d (pendientes %d, confirmadas %d, canceladas %d, con peticiones %d)\n",
		r.Total, r.Pending, r.Confirmed, r.Cancelled, r.WithSpecialRequests)
	sh.out.Printf("reseñas:  %d (aprobadas %d, pendientes %d, destacadas %d, media %s)\n",
		v.Total, v.Approved, v.Pending, v.Featured, v.AverageRating.StringFixed(2))
}
