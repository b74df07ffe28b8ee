package rabbitmq

import (
	"context"
	"fmt"

	"restaurant/internal/core/ports"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
)

// StatusExchange is the fanout exchange order status events go to.
const StatusExchange = "order_status_fanout"

// StatusPublisher implements ports.StatusEventPublisher.
type StatusPublisher struct {
	conn ChannelOpener
}

func NewStatusPublisher(conn ChannelOpener) *StatusPublisher {
	return &StatusPublisher{conn: conn}
}

func (p *StatusPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err = ch.ExchangeDeclare(StatusExchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	err = ch.PublishWithContext(ctx, StatusExchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         "order.status_changed",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish status event: %w", err)
	}
	return nil
}
