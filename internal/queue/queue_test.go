package queue_test

import (
	"context"
	"sync"
	"testing"

	"github.com/campusclub/clubhub-backend/internal/queue"
)

func TestInMemoryQueueDeliversToSubscriber(t *testing.T) {
	q := queue.NewInMemoryQueue()

	var wg sync.WaitGroup
	wg.Add(1)

	var mu sync.Mutex
	received := []int{}

	err := q.Subscribe(queue.TopicDispatches, func(announcementID int) error {
		mu.Lock()
		received = append(received, announcementID)
		mu.Unlock()
		wg.Done()
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := q.Publish(queue.TopicDispatches, 7); err != nil {
		t.Fatalf("publish: %v", err)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 || received[0] != 7 {
		t.Errorf("expected [7], got %v", received)
	}
}

func TestPublishWithoutSubscriberFails(t *testing.T) {
	q := queue.NewInMemoryQueue()
	if err := q.Publish(queue.TopicDispatches, 1); err == nil {
		t.Fatal("expected an error with no subscribers")
	}
}

func TestStartDispatchSubscriberRunsSendFunc(t *testing.T) {
	q := queue.NewInMemoryQueue()

	var wg sync.WaitGroup
	wg.Add(1)

	var got int
	queue.StartDispatchSubscriber(context.Background(), q, func(ctx context.Context, id int) error {
		got = id
		wg.Done()
		return nil
	})

	if err := q.Publish(queue.TopicDispatches, 42); err != nil {
		t.Fatalf("publish: %v", err)
	}
	wg.Wait()

	if got != 42 {
		t.Errorf("expected announcement 42 dispatched, got %d", got)
	}
}
