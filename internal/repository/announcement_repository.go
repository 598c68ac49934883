package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/campusclub/clubhub-backend/internal/errors"
	"github.com/campusclub/clubhub-backend/internal/model"
)

type AnnouncementRepositoryInterface interface {
	Create(a *model.Announcement) error
	Update(a *model.Announcement) error
	UpdateStatus(id int, status string, sentAt *time.Time) error
	GetByID(id int) (*model.Announcement, error)
	ListAnnouncements(offset, limit int, status, priority string) ([]*model.Announcement, int, error)
	ListDueScheduled(now time.Time) ([]*model.Announcement, error)

	// Dispatch lease
	TryAcquireDispatchLock(id int) (bool, error)
	ReleaseDispatchLock(id int) error
}

type AnnouncementRepository struct {
	DB *sql.DB
}

const announcementColumns = `id, title, body, sender_id, sender_name, address_mode, recipient_list,
        priority, status, scheduled_at, sent_at, created_at, updated_at`

func (r *AnnouncementRepository) Create(a *model.Announcement) error {
	a.CreatedAt = time.Now()
	if a.Status == "" {
		a.Status = model.StatusDraft
	}
	if a.Priority == "" {
		a.Priority = model.PriorityNormal
	}
	query := `
        INSERT INTO announcements (title, body, sender_id, sender_name, address_mode, recipient_list,
            priority, status, scheduled_at, sent_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		a.Title, a.Body, a.SenderID, a.SenderName, a.AddressMode, pq.Array(a.RecipientList),
		a.Priority, a.Status, a.ScheduledAt, a.SentAt, a.CreatedAt,
	).Scan(&a.ID)
}

func (r *AnnouncementRepository) Update(a *model.Announcement) error {
	query := `
        UPDATE announcements
        SET title=$1, body=$2, address_mode=$3, recipient_list=$4, priority=$5, status=$6,
            scheduled_at=$7, sent_at=$8, updated_at=NOW()
        WHERE id=$9
    `
	_, err := r.DB.Exec(query,
		a.Title, a.Body, a.AddressMode, pq.Array(a.RecipientList), a.Priority, a.Status,
		a.ScheduledAt, a.SentAt, a.ID,
	)
	return err
}

func (r *AnnouncementRepository) UpdateStatus(id int, status string, sentAt *time.Time) error {
	query := `UPDATE announcements SET status=$1, sent_at=COALESCE($2, sent_at), updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, status, sentAt, id)
	return err
}

func (r *AnnouncementRepository) GetByID(id int) (*model.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id=$1`
	a, err := scanAnnouncement(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewAnnouncementNotFound(id)
		}
		return nil, err
	}
	return a, nil
}

func (r *AnnouncementRepository) ListAnnouncements(offset, limit int, status, priority string) ([]*model.Announcement, int, error) {
	announcements := []*model.Announcement{}
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if priority != "" {
		query += fmt.Sprintf(" AND priority=$%d", argPos)
		args = append(args, priority)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, 0, err
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM announcements WHERE 1=1`
	argsCount := []interface{}{}
	argPosCount := 1
	if status != "" {
		countQuery += fmt.Sprintf(" AND status=$%d", argPosCount)
		argsCount = append(argsCount, status)
		argPosCount++
	}
	if priority != "" {
		countQuery += fmt.Sprintf(" AND priority=$%d", argPosCount)
		argsCount = append(argsCount, priority)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return announcements, total, nil
}

// ListDueScheduled returns drafts whose scheduled_at has passed and that are
// not currently being dispatched.
func (r *AnnouncementRepository) ListDueScheduled(now time.Time) ([]*model.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements
        WHERE status=$1 AND scheduled_at IS NOT NULL AND scheduled_at <= $2 AND dispatch_in_progress = FALSE
        ORDER BY scheduled_at ASC`
	rows, err := r.DB.Query(query, model.StatusDraft, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	due := []*model.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		due = append(due, a)
	}
	return due, rows.Err()
}

// TryAcquireDispatchLock flips the per-announcement dispatch flag. It returns
// false when another dispatch pass already holds the lease.
func (r *AnnouncementRepository) TryAcquireDispatchLock(id int) (bool, error) {
	res, err := r.DB.Exec(
		`UPDATE announcements SET dispatch_in_progress = TRUE WHERE id=$1 AND dispatch_in_progress = FALSE`,
		id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *AnnouncementRepository) ReleaseDispatchLock(id int) error {
	_, err := r.DB.Exec(`UPDATE announcements SET dispatch_in_progress = FALSE WHERE id=$1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnnouncement(row rowScanner) (*model.Announcement, error) {
	var a model.Announcement
	var list pq.StringArray
	err := row.Scan(
		&a.ID, &a.Title, &a.Body, &a.SenderID, &a.SenderName, &a.AddressMode, &list,
		&a.Priority, &a.Status, &a.ScheduledAt, &a.SentAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.RecipientList = []string(list)
	return &a, nil
}

var _ AnnouncementRepositoryInterface = (*AnnouncementRepository)(nil)
