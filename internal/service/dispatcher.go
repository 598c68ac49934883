// internal/service/dispatcher.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/campusclub/clubhub-backend/internal/mailer"
	"github.com/campusclub/clubhub-backend/internal/model"
	"github.com/campusclub/clubhub-backend/internal/ratelimit"
)

// DispatchStats aggregates one dispatch pass.
type DispatchStats struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Summary renders the human-readable result line for callers.
func (s DispatchStats) Summary() string {
	return fmt.Sprintf("Delivered %d of %d emails (%d failed)", s.Successful, s.Total, s.Failed)
}

// Outcome is the tagged result of one send attempt.
type Outcome struct {
	Sent       bool
	ProviderID string
	Class      mailer.Classification
	Message    string
}

// SuccessOutcome tags an accepted send.
func SuccessOutcome(providerID string) Outcome {
	return Outcome{Sent: true, ProviderID: providerID}
}

// FailureOutcome classifies a send error. Rate-limit failures store a fixed
// user-facing message instead of the raw provider text.
func FailureOutcome(err error) Outcome {
	class := mailer.Classify(err)
	msg := err.Error()
	if class == mailer.ClassRateLimited {
		msg = mailer.RateLimitMessage
	}
	return Outcome{Class: class, Message: msg}
}

// Dispatcher drives the rate limiter and the email sender over a batch of
// pending delivery records, writing each outcome back to the ledger.
type Dispatcher struct {
	Ledger *Ledger
	Sender mailer.Sender

	FromEmail string
	FromName  string
	OrgName   string

	Interval time.Duration
	Penalty  time.Duration
	Sleep    ratelimit.SleepFunc // injectable for tests, nil for real timers
}

// Dispatch runs one sequential pass over records. Per-recipient failures
// never abort the loop; the only early exit is cancellation, which still
// returns the stats accumulated so far.
func (d *Dispatcher) Dispatch(ctx context.Context, a *model.Announcement, records []*model.DeliveryRecord) (DispatchStats, error) {
	limiter := ratelimit.New(d.Interval, d.Penalty, d.Sleep)
	stats := DispatchStats{Total: len(records)}
	subject := fmt.Sprintf("[%s] %s", d.OrgName, a.Title)

	for i, rec := range records {
		// fast-exit so an operator can abort a large batch
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		if err := limiter.Throttle(ctx, i); err != nil {
			return stats, err
		}

		providerID, err := d.Sender.Send(ctx, mailer.Message{
			From:     d.FromEmail,
			FromName: d.FromName,
			To:       rec.RecipientEmail,
			ToName:   rec.RecipientName,
			Subject:  subject,
			HTML:     a.Body,
			Priority: a.Priority,
		})
		if err == nil {
			d.Ledger.RecordOutcome(rec, SuccessOutcome(providerID))
			stats.Successful++
			continue
		}

		out := FailureOutcome(err)
		d.Ledger.RecordOutcome(rec, out)
		stats.Failed++
		log.Println("⚠️ send failed for", rec.RecipientEmail, ":", err)

		if out.Class == mailer.ClassRateLimited {
			limiter.Penalize()
		}
	}

	return stats, nil
}
