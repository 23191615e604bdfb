package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/service"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/httpx"
	"github.com/roadvice/roadvice/pkg/slogx"
)

func callerIsAdmin(r *http.Request) bool {
	for _, role := range httpx.RolesFromContext(r.Context()) {
		if role == domain.RoleAdmin {
			return true
		}
	}
	return false
}

func logError(r *http.Request, err error) {
	slogx.FromContext(r.Context()).Error("request failed",
		"method", r.Method, "path", r.URL.Path, "err", err)
}

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func writeErrorCode(w http.ResponseWriter, status int, code, desc string) {
	httpx.WriteJSON(w, status, ErrorResponse{Error: code, Description: desc})
}

// writeServiceError maps domain and store sentinels onto HTTP statuses.
// Anything unrecognised is a 500 with a generic body; the detail goes to the
// request log, never to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeErrorCode(w, http.StatusNotFound, "not_found", "resource does not exist")
	case errors.Is(err, store.ErrAlreadyExists):
		writeErrorCode(w, http.StatusConflict, "already_exists", "resource already exists")
	case errors.Is(err, store.ErrConflict):
		writeErrorCode(w, http.StatusConflict, "conflict", "resource is still in use")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeErrorCode(w, http.StatusUnauthorized, "invalid_credentials", "username or password incorrect")
	case errors.Is(err, service.ErrExpiredToken):
		writeErrorCode(w, http.StatusUnauthorized, "expired_refresh_token", "refresh token has expired, log in again")
	case errors.Is(err, service.ErrUnauthorized):
		writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "")
	case errors.Is(err, service.ErrPasswordMismatch):
		writeErrorCode(w, http.StatusUnprocessableEntity, "password_mismatch", "old password incorrect")
	default:
		logError(r, err)
		writeErrorCode(w, http.StatusInternalServerError, "server_error", "")
	}
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	writeErrorCode(w, http.StatusBadRequest, "invalid_request", desc)
}

// decodeJSON parses the request body into dst, rejecting trailing garbage.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

// pageFromQuery reads limit/offset query parameters.
func pageFromQuery(r *http.Request) store.Page {
	return store.Page{
		Limit:  httpx.QueryInt(r, "limit", 0),
		Offset: httpx.QueryInt(r, "offset", 0),
	}
}

// TokenResponse mirrors the token pair on the wire, expires_in in seconds.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

func toTokenResponse(pair domain.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	}
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Enabled   bool      `json:"enabled"`
	Roles     []string  `json:"roles"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Enabled:   u.Enabled,
		Roles:     u.Roles,
		Points:    u.Points,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toTagResponse(t domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

type AdviceResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Contents  string    `json:"contents"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAdviceResponse(a domain.Advice) AdviceResponse {
	return AdviceResponse{
		ID:        a.ID,
		Title:     a.Title,
		Contents:  a.Contents,
		Tags:      a.Tags,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAdviceResponses(list []domain.Advice) []AdviceResponse {
	out := make([]AdviceResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAdviceResponse(a))
	}
	return out
}

type QuestionResponse struct {
	ID       string `json:"id"`
	AdviceID string `json:"advice_id"`
	Contents string `json:"contents"`
}

func toQuestionResponse(q domain.Question) QuestionResponse {
	return QuestionResponse{ID: q.ID, AdviceID: q.AdviceID, Contents: q.Contents}
}

// AnswerResponse exposes correctness; answer management is admin-only, and
// the quiz-taking client fetches answers without this projection.
type AnswerResponse struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Contents   string `json:"contents"`
	IsCorrect  bool   `json:"is_correct"`
}

func toAnswerResponse(a domain.Answer) AnswerResponse {
	return AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		Contents:   a.Contents,
		IsCorrect:  a.IsCorrect,
	}
}

// AnswerOptionResponse is the quiz-taking projection: no correctness flag.
type AnswerOptionResponse struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Contents   string `json:"contents"`
}

func toAnswerOptionResponses(list []domain.Answer) []AnswerOptionResponse {
	out := make([]AnswerOptionResponse, 0, len(list))
	for _, a := range list {
		out = append(out, AnswerOptionResponse{ID: a.ID, QuestionID: a.QuestionID, Contents: a.Contents})
	}
	return out
}

type CompletedQuizResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AdviceID  string    `json:"advice_id"`
	AnswerIDs []string  `json:"answer_ids"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

func toCompletedQuizResponse(q domain.CompletedQuiz) CompletedQuizResponse {
	return CompletedQuizResponse{
		ID:        q.ID,
		UserID:    q.UserID,
		AdviceID:  q.AdviceID,
		AnswerIDs: q.AnswerIDs,
		Score:     q.Score,
		CreatedAt: q.CreatedAt,
	}
}

func toCompletedQuizResponses(list []domain.CompletedQuiz) []CompletedQuizResponse {
	out := make([]CompletedQuizResponse, 0, len(list))
	for _, q := range list {
		out = append(out, toCompletedQuizResponse(q))
	}
	return out
}
