package event

import (
	"context"
	"encoding/json"
	"farmbiz-service/utils"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const FarmEventsQueue = "farm_events"

const (
	TypeActivityLogged    = "activity_logged"
	TypeReviewAdded       = "review_added"
	TypeIncentiveRedeemed = "incentive_redeemed"
)

type FarmEvent struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

// Publisher pushes domain events onto the farm_events queue. Callers publish
// fire-and-forget; a nil Publisher is a no-op so the service runs without a
// broker in development.
type Publisher struct {
	conn *RabbitMQConnection
}

func NewPublisher(conn *RabbitMQConnection) *Publisher {
	return &Publisher{conn: conn}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, payload map[string]any) error {
	if p == nil || p.conn == nil {
		return nil
	}

	_, err := p.conn.Channel.QueueDeclare(
		FarmEventsQueue, // queue name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	event := FarmEvent{
		ID:        utils.GenerateRandomStringWithLength(6),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal farm event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",              // exchange
		FarmEventsQueue, // routing key (queue name)
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish farm event: %w", err)
	}

	slog.Info("Farm event published", "queue", FarmEventsQueue, "type", eventType)

	return nil
}
