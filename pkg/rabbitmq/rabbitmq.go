package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"customerapi/internal/models"

	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	// amqp.Channel is not safe for concurrent publishes.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable event queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Queue == "" {
		return nil, fmt.Errorf("queue name is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", cfg.Queue, err)
	}

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// PublishCustomerEvent publishes event to the queue as persistent JSON.
func (c *Client) PublishCustomerEvent(event models.CustomerEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.channel.Publish("", c.queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

func newPublishing(event models.CustomerEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal customer event: %w", err)
	}
	return amqp.Publishing{
		ContentType:   "application/json",
		Type:          string(event.Type),
		CorrelationId: event.CorrelationID,
		DeliveryMode:  amqp.Persistent,
		Timestamp:     time.Now(),
		Body:          body,
	}, nil
}

// ConsumeCustomerEvents delivers decoded events to handler until the channel closes.
// Successful handling acks the message; a handler error requeues it, an undecodable body is dropped.
func (c *Client) ConsumeCustomerEvents(handler func(models.CustomerEvent) error) (<-chan struct{}, error) {
	if c.channel == nil {
		return nil, fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register consumer: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			settle(msg, handler)
		}
	}()
	return done, nil
}

// acknowledger is the part of amqp.Delivery settle needs.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func settle(msg amqp.Delivery, handler func(models.CustomerEvent) error) {
	handle(msg.Body, &msg, handler)
}

func handle(body []byte, ack acknowledger, handler func(models.CustomerEvent) error) {
	var event models.CustomerEvent
	if err := json.Unmarshal(body, &event); err != nil {
		_ = ack.Nack(false, false)
		return
	}
	if err := handler(event); err != nil {
		_ = ack.Nack(false, true)
		return
	}
	_ = ack.Ack(false)
}
