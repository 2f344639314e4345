package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"team-roster-service/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const (
	Exchange = "roster.events"

	dialAttempts = 6
)

// message - JSON-представление доменного события в очереди.
type message struct {
	Type       string    `json:"type"`
	ActorID    string    `json:"actorId,omitempty"`
	TeamID     string    `json:"teamId,omitempty"`
	ActivityID string    `json:"activityId,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher публикует доменные события в fanout-exchange RabbitMQ.
type AMQPPublisher struct {
	conn   *amqp.Connection
	ch     channel
	mu     sync.Mutex
	logger *logrus.Logger
}

// NewAMQPPublisher подключается к брокеру с экспоненциальной задержкой между попытками
// и объявляет exchange событий.
func NewAMQPPublisher(url string, logger *logrus.Logger) (*AMQPPublisher, error) {
	logger.Info("Connecting to rabbitmq")

	var conn *amqp.Connection
	delay := time.Second
	for i := 0; i < dialAttempts; i++ {
		var err error
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		if i == dialAttempts-1 {
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		logger.WithError(err).Warnf("rabbitmq not ready, retrying in %s", delay)
		time.Sleep(delay)
		delay *= 2
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		Exchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info("Connected to rabbitmq")
	return &AMQPPublisher{conn: conn, ch: ch, logger: logger}, nil
}

// Publish реализует domain.EventPublisher. Ошибки только логируются.
func (p *AMQPPublisher) Publish(ctx context.Context, event domain.Event) {
	entry := p.logger.WithFields(logrus.Fields{
		"event":   string(event.Type),
		"team_id": event.TeamID,
	})

	body, err := json.Marshal(toMessage(event))
	if err != nil {
		entry.WithError(err).Error("Failed to encode event")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.Publish(Exchange, string(event.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	})
	if err != nil {
		entry.WithError(err).Error("Failed to publish event")
	}
}

// Close закрывает канал и соединение.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func toMessage(event domain.Event) message {
	return message{
		Type:       string(event.Type),
		ActorID:    event.ActorID,
		TeamID:     event.TeamID,
		ActivityID: event.ActivityID,
		UserID:     event.UserID,
		OccurredAt: event.OccurredAt,
	}
}

// NoopPublisher используется, когда брокер не настроен.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.Event) {}
