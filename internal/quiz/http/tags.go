package http

import (
	"net/http"
	"strings"

	"github.com/roadvice/roadvice/internal/quiz/service"
	"github.com/roadvice/roadvice/pkg/httpx"
)

// TagsHandler serves the tag catalog. Reads are public, writes are admin.
type TagsHandler struct {
	TagService *service.TagService
}

type tagRequest struct {
	Name string `json:"name"`
}

// HandleCreate serves POST /v1/tags (admin).
func (h *TagsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	tag, err := h.TagService.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTagResponse(tag))
}

// HandleList serves GET /v1/tags.
func (h *TagsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet serves GET /v1/tags/{id}.
func (h *TagsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tag, err := h.TagService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTagResponse(tag))
}

// HandleRename serves PUT /v1/tags/{id} (admin).
func (h *TagsHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	if err := h.TagService.Rename(r.Context(), r.PathValue("id"), req.Name); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete serves DELETE /v1/tags/{id} (admin).
func (h *TagsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TagService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
