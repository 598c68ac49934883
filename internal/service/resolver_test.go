package service_test

import (
	"fmt"
	"testing"

	appErrors "github.com/campusclub/clubhub-backend/internal/errors"
	"github.com/campusclub/clubhub-backend/internal/model"
	"github.com/campusclub/clubhub-backend/internal/service"
)

func TestResolveAllApprovedMembers(t *testing.T) {
	members := &MockMemberRepo{members: []model.Member{
		{Email: "alice@example.com", FirstName: "  Alice", LastName: "Smith  "},
		{Email: "solo@example.com", FirstName: "Solo", LastName: ""},
	}}
	r := &service.RecipientResolver{MemberRepo: members}

	got, err := r.Resolve(&model.Announcement{AddressMode: model.ModeAllApprovedMembers})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(got))
	}
	if got[0].Name != "Alice Smith" {
		t.Errorf("expected trimmed display name, got %q", got[0].Name)
	}
	if got[1].Name != "Solo" {
		t.Errorf("expected single name trimmed, got %q", got[1].Name)
	}
}

func TestResolveSpecificListUsesPlaceholderName(t *testing.T) {
	r := &service.RecipientResolver{MemberRepo: &MockMemberRepo{}}

	got, err := r.Resolve(&model.Announcement{
		AddressMode:   model.ModeSpecificList,
		RecipientList: []string{"a@example.com", "b@example.com", "a@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("duplicates must be preserved, got %d recipients", len(got))
	}
	for _, rcpt := range got {
		if rcpt.Name != "Member" {
			t.Errorf("expected placeholder name, got %q", rcpt.Name)
		}
	}
}

func TestResolveEmptyMembershipIsValidation(t *testing.T) {
	r := &service.RecipientResolver{MemberRepo: &MockMemberRepo{}}

	_, err := r.Resolve(&model.Announcement{AddressMode: model.ModeAllApprovedMembers})
	if !appErrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "No recipients found" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestResolveUpstreamFailure(t *testing.T) {
	r := &service.RecipientResolver{MemberRepo: &MockMemberRepo{err: fmt.Errorf("connection refused")}}

	_, err := r.Resolve(&model.Announcement{AddressMode: model.ModeAllApprovedMembers})
	if !appErrors.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
