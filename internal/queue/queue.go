package queue

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// TopicDispatches carries announcement ids due for a dispatch pass.
const TopicDispatches = "announcement_dispatches"

// Queue interface
type Queue interface {
	Publish(topic string, announcementID int) error
	Subscribe(topic string, handler func(announcementID int) error) error
}

// InMemoryQueue is an in-process queue with retry, used when no broker is
// configured and in tests.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(announcementID int) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(announcementID int) error),
	}
}

type job struct {
	announcementID int
	retryCount     int
	maxRetries     int
}

// Publish sends an announcement id to all subscribers
func (q *InMemoryQueue) Publish(topic string, announcementID int) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	j := job{announcementID: announcementID, maxRetries: 3}
	for _, handler := range handlers {
		go q.processJob(handler, j)
	}
	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(int) error, j job) {
	for j.retryCount <= j.maxRetries {
		err := handler(j.announcementID)
		if err == nil {
			return
		}

		j.retryCount++
		log.Printf("Dispatch job failed (attempt %d/%d) for announcement %d: %v\n", j.retryCount, j.maxRetries, j.announcementID, err)

		if j.retryCount > j.maxRetries {
			log.Printf("Dispatch job permanently failed after %d attempts for announcement %d\n", j.maxRetries, j.announcementID)
			return
		}

		time.Sleep(time.Duration(j.retryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(announcementID int) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// SendFunc runs one dispatch pass for an announcement id.
type SendFunc func(ctx context.Context, announcementID int) error

// StartDispatchSubscriber wires queued announcement ids into dispatch passes.
func StartDispatchSubscriber(ctx context.Context, q Queue, send SendFunc) {
	err := q.Subscribe(TopicDispatches, func(announcementID int) error {
		log.Println("📩 Processing queued dispatch for announcement:", announcementID)
		if err := send(ctx, announcementID); err != nil {
			log.Println("⚠️ Dispatch failed for announcement", announcementID, ":", err)
			return err
		}
		log.Println("✅ Dispatch completed for announcement:", announcementID)
		return nil
	})
	if err != nil {
		log.Println("⚠️ Failed to start subscriber for", TopicDispatches, ":", err)
	}
}
