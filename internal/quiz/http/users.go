package http

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/service"
	"github.com/roadvice/roadvice/pkg/httpx"
)

// UsersHandler serves account endpoints. Self-service operations act on the
// authenticated principal from the request context; admin operations act on
// the {id} path parameter.
type UsersHandler struct {
	UserService *service.UserService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister serves POST /v1/users.
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeBadRequest(w, "username, email and password are required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeBadRequest(w, "invalid email address")
		return
	}
	if len(req.Password) < 8 {
		writeBadRequest(w, "password must be at least 8 characters")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleMe serves GET /v1/users/me.
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetByID(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleList serves GET /v1/users (admin).
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context(), pageFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponses(users))
}

// HandleGet serves GET /v1/users/{id} (admin).
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type changeUsernameRequest struct {
	Username string `json:"username"`
}

// HandleChangeUsername serves PUT /v1/users/me/username.
func (h *UsersHandler) HandleChangeUsername(w http.ResponseWriter, r *http.Request) {
	var req changeUsernameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		writeBadRequest(w, "username is required")
		return
	}

	if err := h.UserService.ChangeUsername(r.Context(), httpx.UserIDFromContext(r.Context()), req.Username); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// HandleChangePassword serves PUT /v1/users/me/password.
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		writeBadRequest(w, "old_password and new_password are required")
		return
	}
	if len(req.NewPassword) < 8 {
		writeBadRequest(w, "password must be at least 8 characters")
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), httpx.UserIDFromContext(r.Context()), req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// HandleSetEnabled serves PUT /v1/users/{id}/enabled (admin).
func (h *UsersHandler) HandleSetEnabled(w http.ResponseWriter, r *http.Request) {
	var req setEnabledRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	if err := h.UserService.SetEnabled(r.Context(), r.PathValue("id"), req.Enabled); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setRolesRequest struct {
	Roles []string `json:"roles"`
}

// HandleSetRoles serves PUT /v1/users/{id}/roles (admin).
func (h *UsersHandler) HandleSetRoles(w http.ResponseWriter, r *http.Request) {
	var req setRolesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if len(req.Roles) == 0 {
		writeBadRequest(w, "roles must not be empty")
		return
	}

	if err := h.UserService.SetRoles(r.Context(), r.PathValue("id"), req.Roles); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete serves DELETE /v1/users/{id}. Users may delete themselves;
// otherwise the ADMIN role is required.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")
	callerID := httpx.UserIDFromContext(r.Context())

	if targetID != callerID {
		caller, err := h.UserService.GetByID(r.Context(), callerID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if !caller.HasRole(domain.RoleAdmin) {
			writeErrorCode(w, http.StatusForbidden, "insufficient_role", "cannot delete another user")
			return
		}
	}

	if err := h.UserService.Delete(r.Context(), targetID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
