package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"sensor-api/internal/logger"
	"sensor-api/internal/models"
	"sensor-api/internal/utils"
	"sensor-api/internal/validator"
)

// maxBodyBytes caps how much of a create body is read.
const maxBodyBytes = 1 << 20

// ValidateSensorCreate decodes and validates a POST /sensors body once. On
// success the decoded request travels in the context (see
// validator.FromContext) and the raw body is not forwarded.
func ValidateSensorCreate(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
			r.Body.Close()
			if err != nil {
				utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeBadRequest, models.MsgInvalidJSON, nil, http.StatusBadRequest))
				return
			}

			req, errs, err := validator.DecodeSensorCreate(body)
			switch {
			case errors.Is(err, validator.ErrInvalidJSON):
				utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeInvalidFormat, models.MsgInvalidJSON, nil, http.StatusBadRequest))
				return
			case len(errs) > 0:
				logger.FromContext(r.Context(), log).Warn("Validation failed", "details", errs)
				utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeValidationFailed, models.MsgValidationFailed, errs, http.StatusBadRequest))
				return
			}

			r = r.WithContext(validator.NewContext(r.Context(), req))
			r.Body = http.NoBody
			next.ServeHTTP(w, r)
		})
	}
}
