// internal/model/announcement.go
package model

import "time"

// Addressing modes for an announcement.
const (
	ModeAllApprovedMembers = "ALL_APPROVED_MEMBERS"
	ModeSpecificList       = "SPECIFIC_LIST"
)

// Announcement priorities.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Announcement lifecycle statuses. An announcement flips draft -> sent when
// dispatch is initiated and never goes back.
const (
	StatusDraft = "draft"
	StatusSent  = "sent"
)

type Announcement struct {
	ID            int        `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Body          string     `db:"body" json:"body"`
	SenderID      int        `db:"sender_id" json:"sender_id"`
	SenderName    string     `db:"sender_name" json:"sender_name"`
	AddressMode   string     `db:"address_mode" json:"address_mode"`
	RecipientList []string   `db:"recipient_list" json:"recipient_list,omitempty"`
	Priority      string     `db:"priority" json:"priority"`
	Status        string     `db:"status" json:"status"`
	ScheduledAt   *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	SentAt        *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// ValidMode reports whether m is a known addressing mode.
func ValidMode(m string) bool {
	return m == ModeAllApprovedMembers || m == ModeSpecificList
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p string) bool {
	return p == PriorityNormal || p == PriorityHigh || p == PriorityUrgent
}
