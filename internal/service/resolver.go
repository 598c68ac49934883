// internal/service/resolver.go
package service

import (
	appErrors "github.com/campusclub/clubhub-backend/internal/errors"
	"github.com/campusclub/clubhub-backend/internal/model"
	"github.com/campusclub/clubhub-backend/internal/repository"
)

// Recipient is one resolved (email, display name) pair.
type Recipient struct {
	Email string
	Name  string
}

// RecipientResolver turns an announcement's addressing mode into a concrete
// ordered recipient list.
type RecipientResolver struct {
	MemberRepo repository.MemberRepositoryInterface
}

// Resolve produces the recipient list for an announcement. Duplicate
// addresses in a SPECIFIC_LIST are kept as listed; each occurrence gets its
// own delivery record and its own send.
func (r *RecipientResolver) Resolve(a *model.Announcement) ([]Recipient, error) {
	var recipients []Recipient

	switch a.AddressMode {
	case model.ModeAllApprovedMembers:
		members, err := r.MemberRepo.ListApproved()
		if err != nil {
			return nil, appErrors.NewUpstream("listing approved members", err)
		}
		recipients = make([]Recipient, 0, len(members))
		for _, m := range members {
			recipients = append(recipients, Recipient{Email: m.Email, Name: m.DisplayName()})
		}
	case model.ModeSpecificList:
		recipients = make([]Recipient, 0, len(a.RecipientList))
		for _, email := range a.RecipientList {
			recipients = append(recipients, Recipient{Email: email, Name: "Member"})
		}
	default:
		return nil, appErrors.NewValidation("unknown addressing mode: " + a.AddressMode)
	}

	if len(recipients) == 0 {
		return nil, appErrors.NewValidation("No recipients found")
	}
	return recipients, nil
}
