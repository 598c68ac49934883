// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campusclub/clubhub-backend/internal/auth"
	"github.com/campusclub/clubhub-backend/internal/config"
	"github.com/campusclub/clubhub-backend/internal/controller"
	"github.com/campusclub/clubhub-backend/internal/db"
	"github.com/campusclub/clubhub-backend/internal/handler"
	"github.com/campusclub/clubhub-backend/internal/mailer"
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
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer conn.Close()

	migrationsPath := filepath.Join(".", "database", "migrations")
	if err := db.ApplyMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("Error applying database migrations: %v", err)
	}

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

	announcementController := &controller.AnnouncementController{
		AnnouncementService: announcementService,
	}
	memberHandler := &handler.MemberHandler{Repo: memberRepo}

	if cfg.AdminToken == "" {
		log.Println("⚠️ ADMIN_TOKEN not set, all requests will be rejected")
	}
	verifier := &auth.StaticVerifier{AdminToken: cfg.AdminToken}

	r := chi.NewRouter()
	r.Use(auth.Middleware(verifier))
	r.Use(auth.RequireAdmin)

	// Announcement routes
	r.Post("/announcements", announcementController.CreateAnnouncement)
	r.Get("/announcements", announcementController.ListAnnouncements)
	r.Get("/announcements/{id}", announcementController.GetAnnouncement)
	r.Put("/announcements/{id}", announcementController.UpdateAnnouncement)
	r.Post("/announcements/{id}/resend", announcementController.ResendAnnouncement)

	// Member directory
	r.Get("/members", memberHandler.ListApprovedMembers)

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
