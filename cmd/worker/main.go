// cmd/worker/main.go
//
// Scheduled-send worker: polls for announcements whose scheduled_at has
// passed, queues them, and runs the dispatch pass for each queued id. With
// AMQP_URL set the jobs go through RabbitMQ so they survive restarts;
// otherwise an in-process queue is used.
package main

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/campusclub/clubhub-backend/internal/config"
	"github.com/campusclub/clubhub-backend/internal/db"
	"github.com/campusclub/clubhub-backend/internal/mailer"
	"github.com/campusclub/clubhub-backend/internal/queue"
	"github.com/campusclub/clubhub-backend/internal/repository"
	"github.com/campusclub/clubhub-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	conn, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	defer conn.Close()

	memberRepo := &repository.MemberRepository{DB: conn}
	announcementRepo := &repository.AnnouncementRepository{DB: conn}
	deliveryRepo := &repository.DeliveryRepository{DB: conn}

	var sender mailer.Sender
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		log.Println("⚠️ SMTP_HOST not set, using mock sender")
		sender = mailer.MockSender{}
	}

	ledger := &service.Ledger{Deliveries: deliveryRepo}
	announcementService := &service.AnnouncementService{
		Announcements: announcementRepo,
		Resolver:      &service.RecipientResolver{MemberRepo: memberRepo},
		Ledger:        ledger,
		Dispatcher: &service.Dispatcher{
			Ledger:    ledger,
			Sender:    sender,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
			OrgName:   cfg.OrgName,
			Interval:  time.Duration(cfg.SendIntervalMS) * time.Millisecond,
			Penalty:   time.Duration(cfg.PenaltyMS) * time.Millisecond,
		},
	}

	var q queue.Queue
	if cfg.AMQPURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(cfg.AMQPURL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
	} else {
		log.Println("⚠️ AMQP_URL not set, using in-memory queue")
		q = queue.NewInMemoryQueue()
	}

	ctx := context.Background()
	queue.StartDispatchSubscriber(ctx, q, func(ctx context.Context, id int) error {
		result, err := announcementService.SendNow(ctx, id)
		if err != nil {
			return err
		}
		log.Printf("Announcement %d dispatched: %s", id, result.Message)
		return nil
	})

	c := cron.New()
	_, err = c.AddFunc("@every 1m", func() {
		due, err := announcementRepo.ListDueScheduled(time.Now())
		if err != nil {
			log.Println("⚠️ Failed to list due announcements:", err)
			return
		}
		for _, a := range due {
			log.Println("⏰ Queueing scheduled announcement:", a.ID)
			if err := q.Publish(queue.TopicDispatches, a.ID); err != nil {
				log.Println("⚠️ Failed to enqueue announcement", a.ID, ":", err)
			}
		}
	})
	if err != nil {
		log.Fatal("Failed to schedule poll job:", err)
	}
	c.Start()

	log.Println("Worker running, waiting for scheduled announcements...")
	select {}
}
