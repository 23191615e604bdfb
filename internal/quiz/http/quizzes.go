package http

import (
	"errors"
	"net/http"

	"github.com/roadvice/roadvice/internal/quiz/service"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/httpx"
)

// QuizzesHandler serves completed quiz submission and history. Submissions
// are always recorded against the authenticated principal; the user id never
// comes from the request body.
type QuizzesHandler struct {
	QuizService *service.CompletedQuizService
}

type submitQuizRequest struct {
	AdviceID  string   `json:"advice_id"`
	AnswerIDs []string `json:"answer_ids"`
}

// HandleSubmit serves POST /v1/quizzes.
func (h *QuizzesHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "malformed JSON body")
		return
	}
	if req.AdviceID == "" {
		writeBadRequest(w, "advice_id is required")
		return
	}

	quiz, err := h.QuizService.Submit(r.Context(), httpx.UserIDFromContext(r.Context()), req.AdviceID, req.AnswerIDs)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// An unknown advice or answer id invalidates the whole submission.
			writeErrorCode(w, http.StatusBadRequest, "unknown_reference", "advice or answer id does not exist")
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCompletedQuizResponse(quiz))
}

// HandleListMine serves GET /v1/quizzes. With ?advice_id= it narrows to one
// article; with &best=true it returns only the highest scoring record.
func (h *QuizzesHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)
	adviceID := r.URL.Query().Get("advice_id")

	if adviceID != "" && r.URL.Query().Get("best") == "true" {
		quiz, err := h.QuizService.GetHighestScoreQuizByUserAndAdvice(ctx, userID, adviceID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toCompletedQuizResponse(quiz))
		return
	}

	var list []CompletedQuizResponse
	if adviceID != "" {
		quizzes, err := h.QuizService.GetQuizzesByUserAndAdvice(ctx, userID, adviceID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		list = toCompletedQuizResponses(quizzes)
	} else {
		quizzes, err := h.QuizService.GetQuizzesByUser(ctx, userID, pageFromQuery(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		list = toCompletedQuizResponses(quizzes)
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// HandleGet serves GET /v1/quizzes/{id}. Owners see their own records;
// anyone else needs the ADMIN role.
func (h *QuizzesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.QuizService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if quiz.UserID != httpx.UserIDFromContext(r.Context()) && !callerIsAdmin(r) {
		writeErrorCode(w, http.StatusForbidden, "insufficient_role", "not your quiz record")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCompletedQuizResponse(quiz))
}

// HandleListByAdvice serves GET /v1/advice/{id}/quizzes (admin).
func (h *QuizzesHandler) HandleListByAdvice(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.QuizService.GetQuizzesByAdvice(r.Context(), r.PathValue("id"), pageFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCompletedQuizResponses(quizzes))
}

// HandleListByUser serves GET /v1/users/{id}/quizzes (admin).
func (h *QuizzesHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.QuizService.GetQuizzesByUser(r.Context(), r.PathValue("id"), pageFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCompletedQuizResponses(quizzes))
}

// HandleDelete serves DELETE /v1/quizzes/{id} (admin).
func (h *QuizzesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.QuizService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
