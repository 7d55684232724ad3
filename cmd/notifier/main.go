// notifier consume los eventos de reservas y reseñas y avisa al restaurante por Telegram y e-mail.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jhoicas/afrispot-api/internal/application/notification"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/events"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/notify"
	"github.com/jhoicas/afrispot-api/pkg/config"
	"github.com/jhoicas/afrispot-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	var senders []ports.MessageSender
	if cfg.Notify.TelegramToken != "" {
		tg, err := notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID)
		if err != nil {
			log.Fatal().Err(err).Msg("Telegram")
		}
		senders = append(senders, tg)
	}
	if cfg.Notify.AdminEmail != "" {
		mail, err := notify.NewEmailSender(cfg.Notify.SMTPHost, cfg.Notify.SMTPPort,
			cfg.Notify.SMTPUsername, cfg.Notify.SMTPPassword, cfg.Notify.AdminEmail)
		if err != nil {
			log.Fatal().Err(err).Msg("SMTP")
		}
		senders = append(senders, mail)
	}
	if len(senders) == 0 {
		log.Fatal().Msg("configure TELEGRAM_TOKEN o ADMIN_EMAIL")
	}

	consumer, err := events.NewConsumer(cfg.Events, log.Component("events"))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Events.Driver).Msg("broker de eventos")
	}
	defer consumer.Close()

	dispatcher := notification.NewDispatcher(log.Component("notifier"), senders...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("driver", cfg.Events.Driver).Int("channels", len(senders)).Msg("notifier escuchando")
	if err := consumer.Consume(ctx, dispatcher.Handle); err != nil {
		log.Error().Err(err).Msg("consumo interrumpido")
		return
	}
	log.Info().Msg("notifier detenido")
}
