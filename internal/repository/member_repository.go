package repository

import (
	"database/sql"

	"github.com/campusclub/clubhub-backend/internal/model"
)

// MemberRepositoryInterface defines methods used by the recipient resolver
type MemberRepositoryInterface interface {
	GetByID(id int) (*model.Member, error)
	ListApproved() ([]model.Member, error)
}

// MemberRepository is the concrete implementation
type MemberRepository struct {
	DB *sql.DB
}

// GetByID fetches a member by ID
func (r *MemberRepository) GetByID(id int) (*model.Member, error) {
	query := `
        SELECT id, email, first_name, last_name, application_status
        FROM members
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var m model.Member
	if err := row.Scan(&m.ID, &m.Email, &m.FirstName, &m.LastName, &m.ApplicationStatus); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &m, nil
}

// ListApproved fetches every member whose application has been approved,
// in a stable order.
func (r *MemberRepository) ListApproved() ([]model.Member, error) {
	query := `
        SELECT id, email, first_name, last_name, application_status
        FROM members
        WHERE application_status = 'approved'
        ORDER BY id ASC
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []model.Member{}
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Email, &m.FirstName, &m.LastName, &m.ApplicationStatus); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

var _ MemberRepositoryInterface = (*MemberRepository)(nil)
