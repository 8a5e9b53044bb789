package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"global-healthops/nexus/internal/auth"
	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/health"
	"global-healthops/nexus/internal/logging"
	"global-healthops/nexus/internal/middleware"
	"global-healthops/nexus/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	deps     *Dependencies
	readHost func(ctx context.Context) (health.HostStats, error)
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps:     deps,
		readHost: health.ReadHostStats,
	}
}

// validator is implemented by every request DTO.
type validator interface {
	Validate() error
}

// decodeJSON reads and validates a request body. It writes the 422 response
// itself and returns false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst validator) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondError(w, http.StatusUnprocessableEntity, constants.MsgInvalidRequestBody)
		return false
	}
	if err := dst.Validate(); err != nil {
		common.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// pathID parses a numeric URL parameter, writing 422 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := common.ParseID(chi.URLParam(r, name))
	if err != nil {
		common.RespondError(w, http.StatusUnprocessableEntity, name+": "+err.Error())
		return 0, false
	}
	return id, true
}

// pagination reads skip and limit, writing 422 when either is malformed.
func pagination(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	skip, err := common.QueryInt(r, "skip", 0)
	if err != nil {
		common.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return 0, 0, false
	}
	limit, err := common.QueryInt(r, "limit", 0)
	if err != nil {
		common.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return 0, 0, false
	}
	return skip, limit, true
}

// respondServiceError maps a service error to its HTTP response. notFound and
// conflict are the details used for this endpoint's 404 and 400 cases.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, notFound, conflict string) {
	var verr *dtos.ValidationError
	switch {
	case errors.As(err, &verr):
		common.RespondError(w, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, constants.ErrNotFound):
		common.RespondError(w, http.StatusNotFound, notFound)
	case errors.Is(err, constants.ErrConflict):
		common.RespondError(w, http.StatusBadRequest, conflict)
	case errors.Is(err, constants.ErrInactiveUser):
		common.RespondError(w, http.StatusBadRequest, constants.MsgInactiveUser)
	case errors.Is(err, constants.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		common.RespondError(w, http.StatusUnauthorized, constants.MsgIncorrectCredentials)
	default:
		userEmail := ""
		if user := auth.GetCurrentUser(r.Context()); user != nil {
			userEmail = user.Email
		}
		logging.WithRequest(middleware.GetRequestID(r.Context()), userEmail, r.URL.Path).
			Errorw("Request failed", "method", r.Method, "error", err)
		common.RespondError(w, http.StatusInternalServerError, constants.MsgInternalServerError)
	}
}
