package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/campusclub/clubhub-backend/internal/model"
)

// DeliveryRepositoryInterface is the keyed store backing the delivery ledger.
type DeliveryRepositoryInterface interface {
	Create(rec *model.DeliveryRecord) error
	DeleteByAnnouncement(announcementID int) error
	ListByAnnouncement(announcementID int) ([]*model.DeliveryRecord, error)
	ListByAnnouncementAndStatuses(announcementID int, statuses []string) ([]*model.DeliveryRecord, error)
	MarkPending(id int) error
	MarkSent(id int, providerMessageID string, sentAt time.Time) error
	MarkFailed(id int, errorMessage string) error
	GetStats(announcementID int) (map[string]int, error)
}

type DeliveryRepository struct {
	DB *sql.DB
}

const deliveryColumns = `id, announcement_id, recipient_email, recipient_name, status,
        provider_message_id, error_message, sent_at, delivered_at, created_at`

// Create inserts a single record; the ledger seeds one row per recipient.
func (r *DeliveryRepository) Create(rec *model.DeliveryRecord) error {
	rec.CreatedAt = time.Now()
	if rec.Status == "" {
		rec.Status = model.DeliveryPending
	}
	query := `
        INSERT INTO delivery_records
        (announcement_id, recipient_email, recipient_name, status, provider_message_id, error_message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		rec.AnnouncementID, rec.RecipientEmail, rec.RecipientName, rec.Status,
		rec.ProviderMessageID, rec.ErrorMessage, rec.CreatedAt,
	).Scan(&rec.ID)
}

// DeleteByAnnouncement removes the whole current generation of records.
func (r *DeliveryRepository) DeleteByAnnouncement(announcementID int) error {
	_, err := r.DB.Exec(`DELETE FROM delivery_records WHERE announcement_id=$1`, announcementID)
	return err
}

func (r *DeliveryRepository) ListByAnnouncement(announcementID int) ([]*model.DeliveryRecord, error) {
	query := `SELECT ` + deliveryColumns + ` FROM delivery_records WHERE announcement_id=$1 ORDER BY id ASC`
	return r.queryRecords(query, announcementID)
}

func (r *DeliveryRepository) ListByAnnouncementAndStatuses(announcementID int, statuses []string) ([]*model.DeliveryRecord, error) {
	query := `SELECT ` + deliveryColumns + ` FROM delivery_records
        WHERE announcement_id=$1 AND status = ANY($2) ORDER BY id ASC`
	return r.queryRecords(query, announcementID, pq.Array(statuses))
}

func (r *DeliveryRepository) queryRecords(query string, args ...interface{}) ([]*model.DeliveryRecord, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*model.DeliveryRecord{}
	for rows.Next() {
		rec := &model.DeliveryRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.AnnouncementID, &rec.RecipientEmail, &rec.RecipientName, &rec.Status,
			&rec.ProviderMessageID, &rec.ErrorMessage, &rec.SentAt, &rec.DeliveredAt, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkPending resets one record for a partial resend, clearing the prior error.
func (r *DeliveryRepository) MarkPending(id int) error {
	query := `UPDATE delivery_records SET status=$1, error_message='' WHERE id=$2`
	_, err := r.DB.Exec(query, model.DeliveryPending, id)
	return err
}

func (r *DeliveryRepository) MarkSent(id int, providerMessageID string, sentAt time.Time) error {
	query := `UPDATE delivery_records SET status=$1, provider_message_id=$2, error_message='', sent_at=$3 WHERE id=$4`
	_, err := r.DB.Exec(query, model.DeliverySent, providerMessageID, sentAt, id)
	return err
}

func (r *DeliveryRepository) MarkFailed(id int, errorMessage string) error {
	query := `UPDATE delivery_records SET status=$1, error_message=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, model.DeliveryFailed, errorMessage, id)
	return err
}

// GetStats aggregates record counts by status for one announcement.
func (r *DeliveryRepository) GetStats(announcementID int) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM delivery_records WHERE announcement_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, announcementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{
		"total":   0,
		"pending": 0,
		"sent":    0,
		"failed":  0,
		"bounced": 0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		if _, ok := stats[status]; ok {
			stats[status] = count
		}
		stats["total"] += count
	}
	return stats, rows.Err()
}

var _ DeliveryRepositoryInterface = (*DeliveryRepository)(nil)
