package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"global-healthops/nexus/internal/auth"
	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/logging"
	gormModels "global-healthops/nexus/internal/models/gorm"
)

// TokenResolver maps a bearer token to its account.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*gormModels.User, *auth.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores the user and token
// claims in the request context.
func AuthMiddleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, constants.MsgNotAuthenticated)
				return
			}

			user, claims, err := resolver.Resolve(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, constants.ErrInactiveUser):
				common.RespondError(w, http.StatusBadRequest, constants.MsgInactiveUser)
				return
			case errors.Is(err, constants.ErrTokenExpired),
				errors.Is(err, constants.ErrTokenInvalid),
				errors.Is(err, constants.ErrTokenRevoked):
				logging.Debug("Rejected bearer token", "request_id", GetRequestID(r.Context()), "error", err)
				unauthorized(w, constants.MsgCouldNotValidate)
				return
			default:
				logging.Error("Token resolution failed", "request_id", GetRequestID(r.Context()), "error", err)
				common.RespondError(w, http.StatusInternalServerError, constants.MsgInternalServerError)
				return
			}

			ctx := auth.SetCurrentUser(r.Context(), user)
			ctx = auth.SetTokenClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	common.RespondError(w, http.StatusUnauthorized, detail)
}
