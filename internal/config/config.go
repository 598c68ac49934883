// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL string
	AMQPURL     string
	Port        string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	FromEmail string
	FromName  string
	OrgName   string

	AdminToken string

	SendIntervalMS int
	PenaltyMS      int
}

// Load reads configuration from .env / environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	smtpPort := envInt("SMTP_PORT", 587)
	interval := envInt("SEND_INTERVAL_MS", 500)
	penalty := envInt("PENALTY_MS", 2000)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	orgName := os.Getenv("ORG_NAME")
	if orgName == "" {
		orgName = "Club"
		log.Printf("ORG_NAME not set, defaulting to %q", orgName)
	}

	return &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AMQPURL:        os.Getenv("AMQP_URL"),
		Port:           port,
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       smtpPort,
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		FromEmail:      os.Getenv("FROM_EMAIL"),
		FromName:       os.Getenv("FROM_NAME"),
		OrgName:        orgName,
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		SendIntervalMS: interval,
		PenaltyMS:      penalty,
	}, nil
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("%s invalid (%q), defaulting to %d", key, s, def)
		return def
	}
	return n
}
