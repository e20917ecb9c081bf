package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"dispatch/internal/core/domain/events"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the durable topic exchange dispatch events are published to.
const ExchangeName = "dispatch_events"

// Publisher is an EventPublisher on one AMQP channel. Publishing is serialised
// because an AMQP channel must not be used from several goroutines at once.
type Publisher struct {
	mu sync.Mutex
	ch Channel
}

// NewPublisher opens a channel on conn and declares the exchange.
func NewPublisher(conn Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if err = ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{ch: ch}, nil
}

// Publish sends event as a persistent JSON message. Events without a routing key
// are ignored.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	key, body, ok, err := encode(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", event.Name(), err)
	}
	if !ok {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, ExchangeName, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         event.Name(),
		Timestamp:    event.OccurredAt(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Name(), err)
	}
	return nil
}

// Close closes the channel.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}

// RoutingKey returns the topic an event is published on: batch.assigned.<zone> or
// order.status.<status>, lower case.
func RoutingKey(event events.Event) (string, bool) {
	switch e := event.(type) {
	case events.BatchAssigned:
		return "batch.assigned." + strings.ToLower(e.Zone.String()), true
	case events.OrderStatusChanged:
		return "order.status." + strings.ToLower(e.Status.String()), true
	default:
		return "", false
	}
}

func encode(event events.Event) (string, []byte, bool, error) {
	key, ok := RoutingKey(event)
	if !ok {
		return "", nil, false, nil
	}

	var msg any
	switch e := event.(type) {
	case events.BatchAssigned:
		msg = newBatchAssignedMessage(e)
	case events.OrderStatusChanged:
		msg = newOrderStatusMessage(e)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return "", nil, false, err
	}
	return key, body, true, nil
}
