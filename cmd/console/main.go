// console consola de administración en línea de comandos sobre el backend remoto.
//
// Uso: go run ./cmd/console            (CONSOLE_BACKEND_URL, CONSOLE_SESSION_FILE)
//
//	go run ./cmd/console -demo      (backend en memoria con la carta por defecto;
//	                                 admin demo@afrispot.local / demo1234)
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jhoicas/afrispot-api/internal/application/console"
	"github.com/jhoicas/afrispot-api/internal/application/notice"
	"github.com/jhoicas/afrispot-api/internal/application/seed"
	"github.com/jhoicas/afrispot-api/internal/application/session"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/memory"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/remote"
	"github.com/jhoicas/afrispot-api/pkg/config"
	"github.com/jhoicas/afrispot-api/pkg/logger"
)

const (
	demoEmail    = "demo@afrispot.local"
	demoPassword = "demo1234"
)

func main() {
	demo := flag.Bool("demo", false, "usar un backend en memoria con datos de ejemplo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	// los logs van a stderr para no mezclarse con la salida de la consola
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var backend console.Backend
	if *demo {
		b := memory.NewBackend()
		if _, err := b.AddUser(ctx, demoEmail, demoPassword, true); err != nil {
			log.Fatal().Err(err).Msg("crear usuario demo")
		}
		if _, _, err := seed.SeedMenu(ctx, b.Tx(), seed.DefaultMenu); err != nil {
			log.Fatal().Err(err).Msg("sembrar carta demo")
		}
		backend = console.Backend{Auth: b.Auth, Categories: b.Categories, Items: b.Items, Reservations: b.Reservations, Reviews: b.Reviews}
		fmt.Printf("modo demo: login %s %s\n", demoEmail, demoPassword)
	} else {
		client := remote.New(remote.Config{
			BaseURL:     cfg.Console.BackendURL,
			SessionFile: cfg.Console.SessionFile,
			Timeout:     cfg.Console.Timeout,
		}, log.Component("remote"))
		backend = console.Backend{
			Auth:         client,
			Categories:   client.Categories(),
			Items:        client.Items(),
			Reservations: client.Reservations(),
			Reviews:      client.Reviews(),
		}
	}

	c := console.New(backend, log.Zerolog())
	defer c.Close()

	out := newPrinter(os.Stdout)
	c.Feed.Subscribe(func(n notice.Notice) {
		out.Printf("[%s] %s\n", n.Level, n.Message)
	})
	var mu sync.Mutex
	last := session.StateInitializing
	c.Session.Subscribe(func(s session.Snapshot) {
		mu.Lock()
		changed := s.State != last
		last = s.State
		mu.Unlock()
		if changed {
			out.Printf("sesión: %s\n", describeSession(s))
		}
	})

	if err := c.Start(ctx); err != nil {
		log.Warn().Err(err).Msg("carga inicial incompleta")
	}

	sh := &shell{c: c, out: out}
	sc := bufio.NewScanner(os.Stdin)
	out.Printf("escriba 'help' para ver los comandos\n> ")
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		if quit := sh.exec(ctx, sc.Text()); quit {
			break
		}
		out.Printf("> ")
	}
}
