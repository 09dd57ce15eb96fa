package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/storefront/config"
)

// Enqueuer submits notification jobs for asynchronous execution.
type Enqueuer interface {
	EnqueueLogNewProduct(ctx context.Context, productID uint) (string, error)
}

// Client publishes job descriptors to the task queue. It is constructed
// explicitly at startup and closed at shutdown; there is no ambient broker
// state.
type Client struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewClient connects to the broker and declares the task queue.
func NewClient(cfg *config.BrokerConfig) (*Client, error) {
	conn, err := amqp.Dial(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %q: %w", cfg.QueueName, err)
	}

	return &Client{conn: conn, ch: ch, queue: cfg.QueueName}, nil
}

// EnqueueLogNewProduct hands a job descriptor to the broker and returns the
// job id immediately. The caller never waits for execution; once enqueued a
// job cannot be cancelled.
func (c *Client) EnqueueLogNewProduct(ctx context.Context, productID uint) (string, error) {
	jobID := uuid.NewString()
	body, err := json.Marshal(Job{
		Task:      TaskLogNewProduct,
		JobID:     jobID,
		ProductID: productID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode job: %w", err)
	}

	err = c.ch.PublishWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish job: %w", err)
	}
	return jobID, nil
}

// Close releases the broker channel and connection.
func (c *Client) Close() error {
	if err := c.ch.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}

// ErrBrokerUnavailable is returned by NopEnqueuer for every enqueue.
var ErrBrokerUnavailable = errors.New("task broker unavailable")

// NopEnqueuer stands in for the client when the broker is unreachable at
// startup, so the web server can still serve the catalog. Every enqueue
// fails with ErrBrokerUnavailable; callers treat that as a logged,
// non-fatal condition.
type NopEnqueuer struct{}

func (NopEnqueuer) EnqueueLogNewProduct(ctx context.Context, productID uint) (string, error) {
	return "", ErrBrokerUnavailable
}
