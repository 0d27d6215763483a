package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"

	"sensor-api/internal/logger"
	"sensor-api/internal/models"
	"sensor-api/internal/utils"
)

// APIKeyAuth rejects requests whose Authorization header is not
// "Bearer <apiKey>". Every failure gets the same 401 body.
func APIKeyAuth(apiKey string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger.FromContext(r.Context(), log)

			token, err := jwtmiddleware.AuthHeaderTokenExtractor(r)
			switch {
			case err != nil:
				l.Warn("Authentication failed - invalid token format")
			case token == "":
				l.Warn("Authentication failed - missing authorization header")
			case subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1:
				l.Warn("Authentication failed - invalid API key")
			default:
				l.Info("Authentication successful")
				next.ServeHTTP(w, r)
				return
			}

			utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeUnauthorized, models.MsgUnauthorized, nil, http.StatusUnauthorized))
		})
	}
}
