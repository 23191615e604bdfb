package http

import (
	"net/http"
	"strings"

	"github.com/roadvice/roadvice/internal/quiz/service"
	"github.com/roadvice/roadvice/pkg/httpx"
)

// RolesHandler serves the role catalog. All routes are admin-only.
type RolesHandler struct {
	RoleService *service.RoleService
}

type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type createRoleRequest struct {
	Name string `json:"name"`
}

// HandleCreate serves POST /v1/roles.
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	req.Name = strings.ToUpper(strings.TrimSpace(req.Name))
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	role, err := h.RoleService.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, RoleResponse{ID: role.ID, Name: role.Name})
}

// HandleList serves GET /v1/roles.
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RoleService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, RoleResponse{ID: role.ID, Name: role.Name})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDelete serves DELETE /v1/roles/{id}. Fails with a conflict while
// any user still holds the role.
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.RoleService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
