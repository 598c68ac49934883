// internal/controller/announcement_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campusclub/clubhub-backend/internal/auth"
	appErrors "github.com/campusclub/clubhub-backend/internal/errors"
	"github.com/campusclub/clubhub-backend/internal/service"
)

type AnnouncementController struct {
	AnnouncementService *service.AnnouncementService
}

type announcementPayload struct {
	Title         string   `json:"title"`
	Body          string   `json:"body"`
	AddressMode   string   `json:"address_mode"`
	RecipientList []string `json:"recipient_list"`
	Priority      string   `json:"priority"`
	ScheduledAt   *string  `json:"scheduled_at"`
}

func (p announcementPayload) toInput(principal *auth.Principal) service.AnnouncementInput {
	in := service.AnnouncementInput{
		Title:         p.Title,
		Body:          p.Body,
		AddressMode:   p.AddressMode,
		RecipientList: p.RecipientList,
		Priority:      p.Priority,
		ScheduledAt:   p.ScheduledAt,
	}
	if principal != nil {
		in.SenderID = principal.ID
		in.SenderName = principal.Name
	}
	return in
}

func (c *AnnouncementController) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var body struct {
		announcementPayload
		SendImmediately bool `json:"send_immediately"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errorResponse(w, appErrors.NewValidation("invalid body"))
		return
	}

	principal := auth.FromContext(r.Context())
	a, result, err := c.AnnouncementService.Create(r.Context(), body.toInput(principal), body.SendImmediately)
	if err != nil {
		errorResponse(w, err)
		return
	}

	response := map[string]interface{}{
		"success":      true,
		"message":      "Announcement created",
		"announcement": a,
	}
	if result != nil {
		response["message"] = result.Message
		response["stats"] = result.Stats
	}
	respondWithJSON(w, http.StatusCreated, response)
}

func (c *AnnouncementController) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		errorResponse(w, appErrors.NewValidation("invalid announcement id"))
		return
	}

	var body struct {
		announcementPayload
		Send bool `json:"send"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errorResponse(w, appErrors.NewValidation("invalid body"))
		return
	}

	principal := auth.FromContext(r.Context())
	a, result, err := c.AnnouncementService.Update(r.Context(), id, body.toInput(principal), body.Send)
	if err != nil {
		errorResponse(w, err)
		return
	}

	response := map[string]interface{}{
		"success":      true,
		"message":      "Announcement updated",
		"announcement": a,
	}
	if result != nil {
		response["message"] = result.Message
		response["stats"] = result.Stats
	}
	respondWithJSON(w, http.StatusOK, response)
}

func (c *AnnouncementController) ResendAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		errorResponse(w, appErrors.NewValidation("invalid announcement id"))
		return
	}

	var body struct {
		Mode string `json:"mode"`
	}
	// an empty body means the default mode
	_ = json.NewDecoder(r.Body).Decode(&body)

	result, err := c.AnnouncementService.Resend(r.Context(), id, body.Mode)
	if err != nil {
		errorResponse(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": result.Message,
		"stats":   result.Stats,
	})
}

func (c *AnnouncementController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		errorResponse(w, appErrors.NewValidation("invalid announcement id"))
		return
	}

	details, err := c.AnnouncementService.GetDetails(id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, details)
}

func (c *AnnouncementController) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")
	priority := r.URL.Query().Get("priority")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	announcements, pagination, err := c.AnnouncementService.ListAnnouncements(page, pageSize, status, priority)
	if err != nil {
		errorResponse(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data":       announcements,
		"pagination": pagination,
	})
}
