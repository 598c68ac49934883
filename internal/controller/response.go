// internal/controller/response.go
package controller

import (
	"encoding/json"
	"log"
	"net/http"

	appErrors "github.com/campusclub/clubhub-backend/internal/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling JSON: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(response)
}

// errorResponse maps the error taxonomy onto HTTP statuses and the
// {success, message} envelope.
func errorResponse(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case appErrors.IsValidation(err):
		status = http.StatusBadRequest
	case appErrors.IsNotFound(err):
		status = http.StatusNotFound
	case appErrors.IsDispatchInProgress(err):
		status = http.StatusConflict
	case appErrors.IsUpstream(err):
		status = http.StatusBadGateway
	}
	respondWithJSON(w, status, map[string]interface{}{
		"success": false,
		"message": err.Error(),
	})
}
