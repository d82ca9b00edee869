package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// DefaultQueue receives every cart event.
const DefaultQueue = "cart_queue"

// EventItemAdded is published when a shopper adds a product to a cart.
const EventItemAdded = "cart.item_added"

// CartEvent is the JSON body carried by every message on the cart queue.
type CartEvent struct {
	Event     string    `json:"event"`
	CartID    string    `json:"cart_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	At        time.Time `json:"at"`
}

// Encode marshals the event for publishing.
func (e CartEvent) Encode() ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart event: %w", err)
	}
	return body, nil
}

// DecodeCartEvent parses a message body. Events without a name or cart are
// rejected so the consumer can dead-letter them.
func DecodeCartEvent(body []byte) (CartEvent, error) {
	var e CartEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return CartEvent{}, fmt.Errorf("failed to decode cart event: %w", err)
	}
	if e.Event == "" || e.CartID == "" {
		return CartEvent{}, fmt.Errorf("cart event is missing event name or cart id")
	}
	return e, nil
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	lg      *zap.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the queue.
func NewClient(cfg Config, lg *zap.Logger) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
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

	if _, err := declare(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	lg.Info("RabbitMQ client connected", zap.String("queue", cfg.Queue))

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		lg:      lg,
	}, nil
}

func declare(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare %s: %w", name, err)
	}
	return q, nil
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
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishCartEvent publishes a persistent JSON message to the cart queue.
func (c *Client) PublishCartEvent(event CartEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	body, err := event.Encode()
	if err != nil {
		return err
	}

	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.lg.Debug("Sent cart event", zap.String("event", event.Event), zap.String("cart_id", event.CartID))
	return nil
}

// ConsumeCartEvents starts a goroutine that hands each decoded event to
// handler. Undecodable messages are dropped; handler errors requeue.
func (c *Client) ConsumeCartEvents(handler func(CartEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declare(c.channel, c.queue)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.lg.Info("Waiting for cart events", zap.String("queue", queue.Name))

	go func() {
		for msg := range msgs {
			c.handle(msg, handler)
		}
	}()

	return nil
}

func (c *Client) handle(msg amqp.Delivery, handler func(CartEvent) error) {
	event, err := DecodeCartEvent(msg.Body)
	if err != nil {
		c.lg.Warn("Dropping cart message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
		if nackErr := msg.Nack(false, false); nackErr != nil {
			c.lg.Error("Error nacking message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(nackErr))
		}
		return
	}
	if err := handler(event); err != nil {
		c.lg.Error("Error processing cart event", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
		if nackErr := msg.Nack(false, true); nackErr != nil {
			c.lg.Error("Error nacking message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(nackErr))
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		c.lg.Error("Error acking message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(ackErr))
	}
}
