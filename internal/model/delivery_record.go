// internal/model/delivery_record.go
package model

import "time"

// Delivery record statuses. The dispatcher only ever produces sent or failed;
// bounced arrives out of band from the provider and is consumed by partial
// resend as "needs retry".
const (
	DeliveryPending = "pending"
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
	DeliveryBounced = "bounced"
)

type DeliveryRecord struct {
	ID                int        `db:"id" json:"id"`
	AnnouncementID    int        `db:"announcement_id" json:"announcement_id"`
	RecipientEmail    string     `db:"recipient_email" json:"recipient_email"`
	RecipientName     string     `db:"recipient_name" json:"recipient_name"`
	Status            string     `db:"status" json:"status"`
	ProviderMessageID string     `db:"provider_message_id" json:"provider_message_id,omitempty"`
	ErrorMessage      string     `db:"error_message" json:"error_message,omitempty"`
	SentAt            *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	DeliveredAt       *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}
