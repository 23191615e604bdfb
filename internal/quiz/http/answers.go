package http

import (
	"net/http"
	"strings"

	"github.com/roadvice/roadvice/internal/quiz/service"
	"github.com/roadvice/roadvice/pkg/httpx"
)

// AnswersHandler serves answer management under questions. All routes are
// admin-only; quiz takers see answers through the advice question listing.
type AnswersHandler struct {
	AnswerService *service.AnswerService
}

type createAnswerRequest struct {
	Contents  string `json:"contents"`
	IsCorrect bool   `json:"is_correct"`
}

// HandleCreate serves POST /v1/questions/{id}/answers (admin).
func (h *AnswersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if strings.TrimSpace(req.Contents) == "" {
		writeBadRequest(w, "contents is required")
		return
	}

	answer, err := h.AnswerService.Create(r.Context(), r.PathValue("id"), req.Contents, req.IsCorrect)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAnswerResponse(answer))
}

// HandleList serves GET /v1/questions/{id}/answers (admin view, with
// correctness flags).
func (h *AnswersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	answers, err := h.AnswerService.ListByQuestion(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]AnswerResponse, 0, len(answers))
	for _, a := range answers {
		out = append(out, toAnswerResponse(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type updateAnswerRequest struct {
	Contents string `json:"contents"`
}

// HandleUpdate serves PUT /v1/answers/{id} (admin). Only the text may
// change; correctness is fixed at creation.
func (h *AnswersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if strings.TrimSpace(req.Contents) == "" {
		writeBadRequest(w, "contents is required")
		return
	}

	if err := h.AnswerService.UpdateContents(r.Context(), r.PathValue("id"), req.Contents); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete serves DELETE /v1/answers/{id} (admin).
func (h *AnswersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.AnswerService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
