// internal/handler/member_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/campusclub/clubhub-backend/internal/repository"
)

// MemberHandler serves the read-only member directory.
type MemberHandler struct {
	Repo repository.MemberRepositoryInterface
}

// ListApprovedMembers returns every approved member.
func (h *MemberHandler) ListApprovedMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Repo.ListApproved()
	if err != nil {
		http.Error(w, "failed to fetch members: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":  members,
		"count": len(members),
	})
}
