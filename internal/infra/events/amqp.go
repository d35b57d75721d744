package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/photo-studio/internal/audit"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
)

// channel é o subconjunto do *amqp091.Channel usado aqui.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher envia os eventos de auditoria para um exchange topic.
// Routing key: "studio.<action>".
type Publisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	log      *applog.Logger
}

func NewPublisher(url, exchange string, logger *applog.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		log:      logger.WithComponent(applog.ComponentAMQP),
	}, nil
}

func RoutingKey(action string) string {
	return "studio." + action
}

func (p *Publisher) Write(ctx context.Context, ev audit.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		RoutingKey(ev.Action),
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    ev.At,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.log.DebugContext(ctx, "published audit event",
		applog.FieldOperation, ev.Action,
		"exchange", p.exchange,
	)
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

var _ audit.Sink = (*Publisher)(nil)
