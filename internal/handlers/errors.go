package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"cybershield/internal/services"
	"cybershield/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors are logged with detail and answered with a generic message.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrAlreadyVerified),
		errors.Is(err, services.ErrInvalidOTP):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrOTPExpired):
		utils.SendJSONError(w, err.Error(), http.StatusGone)
	case errors.Is(err, services.ErrEmailTaken):
		utils.SendJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword):
		utils.SendJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, services.ErrForbidden):
		utils.SendJSONError(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotFound):
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		utils.SendJSONError(w, "Server error", http.StatusInternalServerError)
	}
}
