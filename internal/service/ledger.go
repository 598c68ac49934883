// internal/service/ledger.go
package service

import (
	"log"
	"time"

	"github.com/campusclub/clubhub-backend/internal/model"
	"github.com/campusclub/clubhub-backend/internal/repository"
)

// Ledger owns the per-recipient delivery records of an announcement. A
// seed/replace creates one generation of records; a partial resend reuses the
// failed subset of the current generation in place.
type Ledger struct {
	Deliveries repository.DeliveryRepositoryInterface
}

// Seed inserts one pending record per recipient and returns the fresh rows
// in recipient order.
func (l *Ledger) Seed(announcementID int, recipients []Recipient) ([]*model.DeliveryRecord, error) {
	records := make([]*model.DeliveryRecord, 0, len(recipients))
	for _, rcpt := range recipients {
		rec := &model.DeliveryRecord{
			AnnouncementID: announcementID,
			RecipientEmail: rcpt.Email,
			RecipientName:  rcpt.Name,
			Status:         model.DeliveryPending,
		}
		if err := l.Deliveries.Create(rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Replace discards the current generation of records and seeds a new one.
func (l *Ledger) Replace(announcementID int, recipients []Recipient) ([]*model.DeliveryRecord, error) {
	if err := l.Deliveries.DeleteByAnnouncement(announcementID); err != nil {
		return nil, err
	}
	return l.Seed(announcementID, recipients)
}

// SelectRetryable returns the records eligible for a partial resend.
func (l *Ledger) SelectRetryable(announcementID int) ([]*model.DeliveryRecord, error) {
	return l.Deliveries.ListByAnnouncementAndStatuses(
		announcementID,
		[]string{model.DeliveryFailed, model.DeliveryBounced},
	)
}

// MarkPending resets the given records to pending in place, clearing their
// stored errors, one row at a time.
func (l *Ledger) MarkPending(records []*model.DeliveryRecord) error {
	for _, rec := range records {
		if err := l.Deliveries.MarkPending(rec.ID); err != nil {
			return err
		}
		rec.Status = model.DeliveryPending
		rec.ErrorMessage = ""
	}
	return nil
}

// RecordOutcome writes one attempt's result to its ledger row. A persistence
// failure here is logged and swallowed so the rest of the pass can proceed.
func (l *Ledger) RecordOutcome(rec *model.DeliveryRecord, out Outcome) {
	if out.Sent {
		now := time.Now()
		if err := l.Deliveries.MarkSent(rec.ID, out.ProviderID, now); err != nil {
			log.Println("⚠️ failed to record sent outcome for record", rec.ID, ":", err)
			return
		}
		rec.Status = model.DeliverySent
		rec.ProviderMessageID = out.ProviderID
		rec.ErrorMessage = ""
		rec.SentAt = &now
		return
	}

	if err := l.Deliveries.MarkFailed(rec.ID, out.Message); err != nil {
		log.Println("⚠️ failed to record failed outcome for record", rec.ID, ":", err)
		return
	}
	rec.Status = model.DeliveryFailed
	rec.ErrorMessage = out.Message
}
