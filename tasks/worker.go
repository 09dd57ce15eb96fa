package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/storefront/config"
)

// ResultSaver persists terminal task results.
type ResultSaver interface {
	Save(ctx context.Context, jobID string, result Result) error
}

// Worker consumes job descriptors from the task queue and executes them.
// Execution is at-least-once with no ordering guarantee; every outcome,
// including failure, is saved as a terminal result and acked.
type Worker struct {
	conn     *amqp.Connection
	queue    string
	products ProductFinder
	results  ResultSaver
}

// NewWorker connects to the broker and declares the task queue.
func NewWorker(cfg *config.BrokerConfig, products ProductFinder, results ResultSaver) (*Worker, error) {
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
	ch.Close()

	return &Worker{
		conn:     conn,
		queue:    cfg.QueueName,
		products: products,
		results:  results,
	}, nil
}

// Run starts workerCount consumers and blocks until the broker connection
// is closed.
func (w *Worker) Run(workerCount int) {
	var wg sync.WaitGroup
	wg.Add(workerCount)

	for i := 0; i < workerCount; i++ {
		go w.consume(i, &wg)
	}

	wg.Wait()
}

func (w *Worker) consume(id int, wg *sync.WaitGroup) {
	defer wg.Done()

	ch, err := w.conn.Channel()
	if err != nil {
		log.Printf("[worker %d] channel error: %v", id, err)
		return
	}
	defer ch.Close()

	ch.Qos(10, 0, false)

	msgs, err := ch.Consume(w.queue, "", false, false, false, false, nil)
	if err != nil {
		log.Printf("[worker %d] consume error: %v", id, err)
		return
	}

	log.Printf("[worker %d] start consuming", id)

	for d := range msgs {
		w.handle(id, d)
		d.Ack(false)
	}
}

// handle decodes and executes one delivery. Malformed or unknown jobs are
// logged and dropped; task errors become error results. Nothing here may
// crash the worker.
func (w *Worker) handle(id int, d amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[worker %d] recovered from panic: %v", id, r)
		}
	}()

	var job Job
	if err := json.Unmarshal(d.Body, &job); err != nil {
		log.Printf("[worker %d] dropping malformed job: %v", id, err)
		return
	}

	var result Result
	switch job.Task {
	case TaskLogNewProduct:
		result = LogNewProduct(w.products, job.ProductID)
	default:
		log.Printf("[worker %d] dropping unknown task %q", id, job.Task)
		return
	}

	if job.JobID == "" {
		return
	}
	if err := w.results.Save(context.Background(), job.JobID, result); err != nil {
		log.Printf("[worker %d] failed to save result for job %s: %v", id, job.JobID, err)
	}
}

// Close shuts down the broker connection, which ends every consumer loop.
func (w *Worker) Close() error {
	return w.conn.Close()
}
