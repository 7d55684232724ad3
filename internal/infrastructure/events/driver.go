package events

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/pkg/config"
)

// NewPublisher publicador según EVENTS_DRIVER.
func NewPublisher(cfg config.EventsConfig, log zerolog.Logger) (ports.EventPublisher, error) {
	switch cfg.Driver {
	case "", config.EventsDriverLog:
		return NewLogPublisher(log), nil
	case config.EventsDriverRabbitMQ:
		return DialRabbitMQ(cfg.RabbitMQURL, cfg.QueueName, log)
	case config.EventsDriverKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	}
	return nil, fmt.Errorf("events: driver desconocido %q", cfg.Driver)
}

// NewConsumer consumidor según EVENTS_DRIVER. El driver log no tiene cola que consumir.
func NewConsumer(cfg config.EventsConfig, log zerolog.Logger) (ports.EventConsumer, error) {
	switch cfg.Driver {
	case config.EventsDriverRabbitMQ:
		return DialRabbitMQ(cfg.RabbitMQURL, cfg.QueueName, log)
	case config.EventsDriverKafka:
		return NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaTopic, log), nil
	}
	return nil, fmt.Errorf("events: el driver %q no admite consumo", cfg.Driver)
}
