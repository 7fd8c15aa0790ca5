package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "fleetrent/pkg/errors"
	httputil "fleetrent/pkg/http"
	"fleetrent/pkg/logger"
	"fleetrent/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Guard wraps an httprouter handle with an authentication check.
type Guard func(httprouter.Handle) httprouter.Handle

// TokenVerifier is satisfied by the identity service.
type TokenVerifier interface {
	VerifyToken(token string) (*model.Claims, error)
}

type contextKey string

const userIDKey contextKey = "user_id"

// RequireAuth rejects requests without a valid bearer token and puts the
// authenticated user's ID in the request context.
func RequireAuth(verifier TokenVerifier, log *logger.Logger) Guard {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token, err := extractBearer(r.Header.Get("Authorization"))
			if err != nil {
				writeUnauthorized(w, log, "Missing or malformed Authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				writeUnauthorized(w, log, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// UserIDFromContext returns the authenticated user's ID, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

func extractBearer(header string) (string, error) {
	if header == "" {
		return "", apperrors.Unauthorized("Authorization header is required")
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", apperrors.Unauthorized("Authorization header must be 'Bearer <token>'")
	}

	return parts[1], nil
}

func writeUnauthorized(w http.ResponseWriter, log *logger.Logger, message string) {
	if err := httputil.WriteError(w, apperrors.Unauthorized(message)); err != nil {
		log.Error("failed to write unauthorized response", "error", err)
	}
}
