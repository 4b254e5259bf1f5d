package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"trackmate/internal/trip-service/core/myerrors"
)

const WaitTime = 10

// jsonResponse writes the given data as a JSON-encoded HTTP response.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// jsonError writes an error response as JSON with the specified HTTP status code.
func jsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}

// errStatus maps service errors onto the HTTP error taxonomy.
func errStatus(err error) int {
	switch {
	case errors.Is(err, myerrors.ErrValidation), errors.Is(err, myerrors.ErrAlreadyDecided):
		return http.StatusBadRequest
	case errors.Is(err, myerrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, myerrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, myerrors.ErrTripNotFound), errors.Is(err, myerrors.ErrInviteNotFound):
		return http.StatusNotFound
	case errors.Is(err, myerrors.ErrDependency):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
