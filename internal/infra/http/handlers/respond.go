package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vantora/leadhub/internal/usecase"
)

// decodeJSON decodes a request body into a typed input, rejecting unknown
// fields so malformed payloads fail at the boundary.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// respondJSON writes the success envelope. Extra payload fields are merged in
// beside "success": true.
func respondJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range payload {
		body[k] = v
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// respondUseCaseError maps the error taxonomy to HTTP statuses. Store errors
// deliberately surface a generic message, never the underlying error text.
func respondUseCaseError(w http.ResponseWriter, err error, fallback string) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		respondError(w, statusForCode(domainErr.Code), domainErr.Message)
		return
	}

	log.Printf("internal error: %v", err)
	respondError(w, http.StatusInternalServerError, fallback)
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeAuth:
		return http.StatusUnauthorized
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
