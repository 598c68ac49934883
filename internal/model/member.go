// internal/model/member.go
package model

import "strings"

type Member struct {
	ID                int    `db:"id" json:"id"`
	Email             string `db:"email" json:"email"`
	FirstName         string `db:"first_name" json:"first_name"`
	LastName          string `db:"last_name" json:"last_name"`
	ApplicationStatus string `db:"application_status" json:"application_status"` // pending, approved, rejected
}

// DisplayName joins first and last name with surrounding whitespace trimmed.
func (m Member) DisplayName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}
