package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/unclebandit/fitkitchen-backend/internal/model"
)

// Handler processes one customer event. A non-nil error asks for a retry.
type Handler func(event model.CustomerEvent) error

// Queue carries customer events between the API and its consumers.
type Queue interface {
	Publish(topic string, event model.CustomerEvent) error
	Subscribe(topic string, handler Handler) error
}

// InMemoryQueue fans events out to in-process subscribers with retry.
type InMemoryQueue struct {
	// MaxRetries bounds redelivery attempts after the first failure.
	MaxRetries int
	// Backoff is multiplied by the attempt number between retries.
	Backoff time.Duration

	mu       sync.Mutex
	handlers map[string][]Handler
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
		handlers:   make(map[string][]Handler),
	}
}

// job wraps an event with retry info
type job struct {
	event      model.CustomerEvent
	retryCount int
	maxRetries int
}

// Publish hands the event to every subscriber of topic asynchronously.
func (q *InMemoryQueue) Publish(topic string, event model.CustomerEvent) error {
	q.mu.Lock()
	handlers := append([]Handler(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.process(handler, job{event: event, maxRetries: q.MaxRetries})
	}
	return nil
}

func (q *InMemoryQueue) process(handler Handler, j job) {
	for {
		err := handler(j.event)
		if err == nil {
			return
		}

		j.retryCount++
		log.Printf("Event %s failed (attempt %d/%d): %v\n", j.event.EventID, j.retryCount, j.maxRetries, err)

		if j.retryCount > j.maxRetries {
			log.Printf("Event %s permanently failed after %d retries\n", j.event.EventID, j.maxRetries)
			return
		}

		time.Sleep(time.Duration(j.retryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartNotificationSubscriber registers handler for topic, logging if the
// queue refuses the subscription.
func StartNotificationSubscriber(q Queue, topic string, handler Handler) {
	if err := q.Subscribe(topic, handler); err != nil {
		log.Printf("⚠️ Failed to start subscriber for %s: %v", topic, err)
		return
	}
	log.Printf("📩 Subscribed to %s", topic)
}

var _ Queue = (*InMemoryQueue)(nil)
