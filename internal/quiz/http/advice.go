package http

import (
	"net/http"
	"strings"

	"github.com/roadvice/roadvice/internal/quiz/service"
	"github.com/roadvice/roadvice/pkg/httpx"
)

// AdviceHandler serves advice articles and the questions under them. Reads
// are public, writes are admin.
type AdviceHandler struct {
	AdviceService *service.AdviceService
	AnswerService *service.AnswerService
}

type createAdviceRequest struct {
	Title    string   `json:"title"`
	Contents string   `json:"contents"`
	Tags     []string `json:"tags"`
}

// HandleCreate serves POST /v1/advice (admin).
func (h *AdviceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAdviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Contents == "" {
		writeBadRequest(w, "title and contents are required")
		return
	}

	advice, err := h.AdviceService.Create(r.Context(), req.Title, req.Contents, req.Tags)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAdviceResponse(advice))
}

// HandleList serves GET /v1/advice, optionally filtered by ?tag=.
func (h *AdviceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)

	var err error
	var list []AdviceResponse
	if tag := r.URL.Query().Get("tag"); tag != "" {
		articles, e := h.AdviceService.ListByTag(r.Context(), tag, page)
		list, err = toAdviceResponses(articles), e
	} else {
		articles, e := h.AdviceService.List(r.Context(), page)
		list, err = toAdviceResponses(articles), e
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// HandleGet serves GET /v1/advice/{id}.
func (h *AdviceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	advice, err := h.AdviceService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAdviceResponse(advice))
}

type setTagsRequest struct {
	Tags []string `json:"tags"`
}

// HandleSetTags serves PUT /v1/advice/{id}/tags (admin).
func (h *AdviceHandler) HandleSetTags(w http.ResponseWriter, r *http.Request) {
	var req setTagsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}

	if err := h.AdviceService.SetTags(r.Context(), r.PathValue("id"), req.Tags); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete serves DELETE /v1/advice/{id} (admin).
func (h *AdviceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.AdviceService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createQuestionRequest struct {
	Contents string `json:"contents"`
}

// HandleAddQuestion serves POST /v1/advice/{id}/questions (admin).
func (h *AdviceHandler) HandleAddQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if strings.TrimSpace(req.Contents) == "" {
		writeBadRequest(w, "contents is required")
		return
	}

	question, err := h.AdviceService.AddQuestion(r.Context(), r.PathValue("id"), req.Contents)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toQuestionResponse(question))
}

// HandleListQuestions serves GET /v1/advice/{id}/questions. Each question
// carries its answer options without correctness flags.
func (h *AdviceHandler) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.AdviceService.ListQuestions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	type questionWithAnswers struct {
		QuestionResponse
		Answers []AnswerOptionResponse `json:"answers"`
	}

	out := make([]questionWithAnswers, 0, len(questions))
	for _, q := range questions {
		answers, err := h.AnswerService.ListByQuestion(r.Context(), q.ID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		out = append(out, questionWithAnswers{
			QuestionResponse: toQuestionResponse(q),
			Answers:          toAnswerOptionResponses(answers),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDeleteQuestion serves DELETE /v1/questions/{id} (admin).
func (h *AdviceHandler) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.AdviceService.DeleteQuestion(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
