package events

import (
	"encoding/json"
	"time"

	"postboard/internal/observability"
	"postboard/internal/queue"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// QueueName is the durable queue external consumers read lifecycle events
// from. Nothing in this process consumes it.
const QueueName = "postboard_events"

const (
	UserRegistered = "user.registered"
	PostCreated    = "post.created"
)

type PublisherInterface interface {
	Publish(event string, payload interface{}) error
}

// Envelope is the wire shape of a published event.
type Envelope struct {
	Event      string      `json:"event"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

type Publisher struct {
	conn *amqp.Connection
}

func NewPublisher(conn *amqp.Connection) PublisherInterface {
	return &Publisher{conn: conn}
}

// Publish sends one event to the events queue. The publish completes before
// the originating request responds; it is not fire-and-forget.
func (p *Publisher) Publish(event string, payload interface{}) error {
	ch, err := queue.CreateChannel(p.conn)
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := queue.DeclareQueue(ch, QueueName); err != nil {
		return err
	}

	body, err := json.Marshal(Envelope{
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Data:       payload,
	})
	if err != nil {
		return err
	}

	err = ch.Publish(
		"",        // exchange
		QueueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		logrus.WithError(err).WithField("event", event).Error("Failed to publish event")
		return err
	}

	observability.IncEventPublished(event)
	return nil
}
