package api

import (
	"net/http"
	"strings"

	"global-healthops/nexus/internal/auth"
	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/models/dtos"
)

// Login handles POST /auth/login with form fields username and password.
func (h *Handlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			common.RespondError(w, http.StatusUnprocessableEntity, constants.MsgInvalidRequestBody)
			return
		}

		username := strings.TrimSpace(r.PostForm.Get("username"))
		password := r.PostForm.Get("password")
		if username == "" || password == "" {
			common.RespondError(w, http.StatusUnprocessableEntity, "username and password are required")
			return
		}

		token, err := h.deps.Services.Auth.Authenticate(r.Context(), username, password)
		if err != nil {
			respondServiceError(w, r, err, constants.MsgIncorrectCredentials, constants.MsgIncorrectCredentials)
			return
		}

		common.RespondJSON(w, http.StatusOK, token)
	}
}

// Register handles POST /auth/register.
func (h *Handlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.UserCreate
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := h.deps.Services.Auth.Register(r.Context(), &req)
		if err != nil {
			respondServiceError(w, r, err, constants.MsgNotAuthenticated, constants.MsgEmailRegistered)
			return
		}

		common.RespondJSON(w, http.StatusCreated, dtos.NewUserResponse(user))
	}
}

// Me handles GET /auth/me.
func (h *Handlers) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.GetCurrentUser(r.Context())
		if user == nil {
			common.RespondError(w, http.StatusUnauthorized, constants.MsgNotAuthenticated)
			return
		}
		common.RespondJSON(w, http.StatusOK, dtos.NewUserResponse(user))
	}
}

// Logout handles POST /auth/logout. The presented token stops working.
func (h *Handlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetTokenClaims(r.Context())
		if claims == nil {
			common.RespondError(w, http.StatusUnauthorized, constants.MsgNotAuthenticated)
			return
		}

		if err := h.deps.Services.Auth.Logout(r.Context(), claims); err != nil {
			respondServiceError(w, r, err, constants.MsgNotAuthenticated, constants.MsgNotAuthenticated)
			return
		}

		common.RespondJSON(w, http.StatusOK, dtos.MessageResponse{Detail: "Successfully logged out"})
	}
}
