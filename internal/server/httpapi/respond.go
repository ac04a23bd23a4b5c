package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/quizhub/internal/common"
)

const msgInternal = "Something went wrong, please try again."

type errorResponse struct {
	Status  int                     `json:"status"`
	Message string                  `json:"message"`
	Errors  []common.FieldViolation `json:"errors,omitempty"`
}

// statusFor maps an error kind to its HTTP status. Backing-store and internal
// kinds are checked first because their causes may wrap other kinds.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorStorage),
		errors.Is(err, common.ErrorTransaction),
		errors.Is(err, common.ErrorInternal):
		return http.StatusInternalServerError
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorConflict):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error(r.Context(), "failed to encode JSON response", "error", err)
	}
}

// writeError renders err as the error envelope. Causes of 5xx responses are
// logged and never sent to the client.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Status: status}

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		resp.Message = common.PublicMessage(err, msgInternal)
	} else {
		resp.Message = common.PublicMessage(err, err.Error())
	}

	var ve *common.ValidationError
	if errors.As(err, &ve) {
		resp.Errors = ve.Violations
	}

	s.writeJSON(w, r, status, resp)
}

// decodeJSON reads the request body into v. A malformed body is a
// validation error.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		ve := common.NewValidationError("")
		ve.Add("body", "must be a valid JSON object")
		return ve
	}
	return nil
}
