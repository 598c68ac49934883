// internal/service/announcement_service.go
package service

import (
	"context"
	"log"
	"strings"
	"time"

	appErrors "github.com/campusclub/clubhub-backend/internal/errors"
	"github.com/campusclub/clubhub-backend/internal/model"
	"github.com/campusclub/clubhub-backend/internal/repository"
)

// Resend modes.
const (
	ResendAll    = "all"
	ResendFailed = "failed"
)

type recipientSource int

const (
	sourceResolve   recipientSource = iota // fresh resolve from the addressing mode
	sourceRetryable                        // existing failed/bounced rows
)

type ledgerMode int

const (
	ledgerSeed    ledgerMode = iota // first generation
	ledgerReplace                   // discard and reseed
	ledgerReset                     // in-place reset of the retryable subset
)

// AnnouncementService is the top-level send orchestrator shared by create,
// update-and-send and resend.
type AnnouncementService struct {
	Announcements repository.AnnouncementRepositoryInterface
	Resolver      *RecipientResolver
	Ledger        *Ledger
	Dispatcher    *Dispatcher
}

// AnnouncementInput carries the writable announcement fields.
type AnnouncementInput struct {
	Title         string
	Body          string
	SenderID      int
	SenderName    string
	AddressMode   string
	RecipientList []string
	Priority      string
	ScheduledAt   *string // RFC3339
}

// SendResult is what callers get back after a dispatch pass.
type SendResult struct {
	Stats   DispatchStats `json:"stats"`
	Message string        `json:"message"`
}

// AnnouncementDetails joins an announcement with its delivery records and
// per-status counts.
type AnnouncementDetails struct {
	*model.Announcement
	Records []*model.DeliveryRecord `json:"delivery_records"`
	Stats   map[string]int          `json:"stats"`
}

func validateInput(in AnnouncementInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return appErrors.NewValidation("title is required")
	}
	if strings.TrimSpace(in.Body) == "" {
		return appErrors.NewValidation("body is required")
	}
	if !model.ValidMode(in.AddressMode) {
		return appErrors.NewValidation("unknown addressing mode: " + in.AddressMode)
	}
	if in.AddressMode == model.ModeSpecificList && len(in.RecipientList) == 0 {
		return appErrors.NewValidation("recipient list is required for SPECIFIC_LIST announcements")
	}
	if in.Priority != "" && !model.ValidPriority(in.Priority) {
		return appErrors.NewValidation("unknown priority: " + in.Priority)
	}
	return nil
}

func applyInput(a *model.Announcement, in AnnouncementInput) error {
	a.Title = in.Title
	a.Body = in.Body
	a.AddressMode = in.AddressMode
	a.Priority = in.Priority
	if a.Priority == "" {
		a.Priority = model.PriorityNormal
	}
	if in.AddressMode == model.ModeSpecificList {
		a.RecipientList = in.RecipientList
	} else {
		// explicit list is ignored for ALL_APPROVED_MEMBERS
		a.RecipientList = nil
	}
	if in.ScheduledAt != nil {
		t, err := time.Parse(time.RFC3339, *in.ScheduledAt)
		if err != nil {
			return appErrors.NewValidation("scheduled_at must be RFC3339: " + err.Error())
		}
		a.ScheduledAt = &t
	}
	return nil
}

// Create persists a new announcement and, when sendImmediately is set, runs a
// full dispatch pass before returning.
func (s *AnnouncementService) Create(ctx context.Context, in AnnouncementInput, sendImmediately bool) (*model.Announcement, *SendResult, error) {
	if err := validateInput(in); err != nil {
		return nil, nil, err
	}

	a := &model.Announcement{
		SenderID:   in.SenderID,
		SenderName: in.SenderName,
		Status:     model.StatusDraft,
	}
	if err := applyInput(a, in); err != nil {
		return nil, nil, err
	}
	if err := s.Announcements.Create(a); err != nil {
		return nil, nil, err
	}

	if !sendImmediately {
		return a, nil, nil
	}

	result, err := s.sendPass(ctx, a, sourceResolve, ledgerSeed)
	if err != nil {
		return a, nil, err
	}
	return a, result, nil
}

// Update edits an existing announcement. When send is set, the prior record
// generation is always discarded before dispatch.
func (s *AnnouncementService) Update(ctx context.Context, id int, in AnnouncementInput, send bool) (*model.Announcement, *SendResult, error) {
	if err := validateInput(in); err != nil {
		return nil, nil, err
	}

	a, err := s.Announcements.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if err := applyInput(a, in); err != nil {
		return nil, nil, err
	}
	if err := s.Announcements.Update(a); err != nil {
		return nil, nil, err
	}

	if !send {
		return a, nil, nil
	}

	result, err := s.sendPass(ctx, a, sourceResolve, ledgerReplace)
	if err != nil {
		return a, nil, err
	}
	return a, result, nil
}

// SendNow dispatches an announcement as stored; the scheduled-send worker
// uses it for due announcements. Prior records, if any, are discarded.
func (s *AnnouncementService) SendNow(ctx context.Context, id int) (*SendResult, error) {
	a, err := s.Announcements.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.sendPass(ctx, a, sourceResolve, ledgerReplace)
}

// Resend retries deliveries. Mode "all" re-resolves the recipient set and
// replaces the whole generation; mode "failed" (the default) reuses just the
// failed/bounced rows in place, leaving sent records untouched.
func (s *AnnouncementService) Resend(ctx context.Context, id int, mode string) (*SendResult, error) {
	if mode == "" {
		mode = ResendFailed
	}
	if mode != ResendAll && mode != ResendFailed {
		return nil, appErrors.NewValidation("unknown resend mode: " + mode)
	}

	a, err := s.Announcements.GetByID(id)
	if err != nil {
		return nil, err
	}

	if mode == ResendAll {
		return s.sendPass(ctx, a, sourceResolve, ledgerReplace)
	}
	return s.sendPass(ctx, a, sourceRetryable, ledgerReset)
}

// sendPass composes resolver, ledger and dispatcher under the announcement's
// dispatch lease. Precondition failures (validation, upstream fetch, lease
// conflict) surface as errors before any send; once dispatch starts the pass
// always produces stats.
func (s *AnnouncementService) sendPass(ctx context.Context, a *model.Announcement, source recipientSource, mode ledgerMode) (*SendResult, error) {
	acquired, err := s.Announcements.TryAcquireDispatchLock(a.ID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, appErrors.NewDispatchInProgress(a.ID)
	}
	defer func() {
		if err := s.Announcements.ReleaseDispatchLock(a.ID); err != nil {
			log.Println("⚠️ failed to release dispatch lock for announcement", a.ID, ":", err)
		}
	}()

	var records []*model.DeliveryRecord
	switch source {
	case sourceResolve:
		recipients, err := s.Resolver.Resolve(a)
		if err != nil {
			return nil, err
		}
		if mode == ledgerReplace {
			records, err = s.Ledger.Replace(a.ID, recipients)
		} else {
			records, err = s.Ledger.Seed(a.ID, recipients)
		}
		if err != nil {
			return nil, err
		}
	case sourceRetryable:
		records, err = s.Ledger.SelectRetryable(a.ID)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, appErrors.NewValidation("No failed deliveries to resend")
		}
		if err := s.Ledger.MarkPending(records); err != nil {
			return nil, err
		}
	}

	// The announcement is marked sent when dispatch is initiated, not when it
	// completes.
	now := time.Now()
	if err := s.Announcements.UpdateStatus(a.ID, model.StatusSent, &now); err != nil {
		log.Println("⚠️ failed to mark announcement", a.ID, "as sent:", err)
	} else {
		a.Status = model.StatusSent
		a.SentAt = &now
	}

	stats, dispatchErr := s.Dispatcher.Dispatch(ctx, a, records)
	result := &SendResult{Stats: stats, Message: stats.Summary()}
	if dispatchErr != nil {
		// cancellation mid-pass; partial stats are still meaningful
		return result, dispatchErr
	}
	return result, nil
}

// GetDetails fetches an announcement together with its delivery records and
// per-status stats.
func (s *AnnouncementService) GetDetails(id int) (*AnnouncementDetails, error) {
	a, err := s.Announcements.GetByID(id)
	if err != nil {
		return nil, err
	}

	records, err := s.Ledger.Deliveries.ListByAnnouncement(id)
	if err != nil {
		return nil, err
	}
	stats, err := s.Ledger.Deliveries.GetStats(id)
	if err != nil {
		return nil, err
	}

	return &AnnouncementDetails{Announcement: a, Records: records, Stats: stats}, nil
}

// ListAnnouncements fetches announcements with pagination
func (s *AnnouncementService) ListAnnouncements(page, pageSize int, status, priority string) ([]model.Announcement, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.Announcements.ListAnnouncements(offset, pageSize, status, priority)
	if err != nil {
		return nil, nil, err
	}

	announcements := make([]model.Announcement, len(ptrs))
	for i, a := range ptrs {
		announcements[i] = *a
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return announcements, pagination, nil
}
