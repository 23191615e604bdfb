package http

import (
	"net/http"
	"strings"

	"github.com/roadvice/roadvice/internal/quiz/service"
	"github.com/roadvice/roadvice/pkg/httpx"
)

// AuthHandler serves login, token refresh and logout.
type AuthHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin serves POST /v1/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "username and password are required")
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// HandleRefresh serves POST /v1/auth/refresh.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if req.RefreshToken == "" {
		writeBadRequest(w, "refresh_token is required")
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleLogout serves POST /v1/auth/logout. Revokes every refresh token the
// authenticated user holds; the access token simply ages out.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.AuthService.Logout(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
