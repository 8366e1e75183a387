package http

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/scrimsync/internal/faults"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps a fault category to its HTTP status. Anything
// uncategorized is a 500 and gets logged; categorized faults are the
// caller's mistake and only logged at debug.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case faults.IsValidation(err):
		status = http.StatusBadRequest
	case faults.IsNotFound(err):
		status = http.StatusNotFound
	case faults.IsPermissionDenied(err):
		status = http.StatusForbidden
	case faults.IsAlreadyExists(err):
		status = http.StatusConflict
	case faults.IsFailedPrecondition(err):
		status = http.StatusPreconditionFailed
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	} else {
		log.Debug("Request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeAndValidate parses a JSON body into dst and runs struct validation.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return faults.Validationf("invalid JSON body: %v", err)
	}
	if err := s.validate.Struct(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return faults.Validationf("field %s failed on %s", verrs[0].Field(), verrs[0].Tag())
		}
		return faults.Validationf("%v", err)
	}
	return nil
}
