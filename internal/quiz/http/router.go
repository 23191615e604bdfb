package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/roadvice/roadvice/internal/quiz/domain"
	"github.com/roadvice/roadvice/internal/quiz/service"
	"github.com/roadvice/roadvice/internal/quiz/store"
	"github.com/roadvice/roadvice/pkg/httpx"
	"github.com/roadvice/roadvice/pkg/jwtx"
	"github.com/roadvice/roadvice/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService   *service.AuthService
	UserService   *service.UserService
	RoleService   *service.RoleService
	TagService    *service.TagService
	AdviceService *service.AdviceService
	AnswerService *service.AnswerService
	QuizService   *service.CompletedQuizService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerRoles()
	r.registerTags()
	r.registerAdvice()
	r.registerAnswers()
	r.registerQuizzes()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn verifies the bearer token and populates the request principal.
func (r *Router) authn(h http.Handler, extra ...httpx.Middleware) http.Handler {
	chain := append([]httpx.Middleware{httpx.AuthnMiddleware(r.verifier)}, extra...)
	return httpx.Chain(h, chain...)
}

// admin is authn plus the ADMIN role requirement.
func (r *Router) admin(h http.Handler) http.Handler {
	return r.authn(h,
		httpx.RequireAnyRole(domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// POST /login - strict rate limit by IP + username to slow brute force
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "username"),
		),
	)

	// POST /refresh - moderate rate limit by IP
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/logout",
		r.authn(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}
	q := &QuizzesHandler{QuizService: r.QuizService}

	// POST /users - public signup, strict rate limit by IP
	r.Mux.Handle("POST /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Self-service endpoints act on the authenticated principal
	r.Mux.Handle("GET /v1/users/me",
		r.authn(http.HandlerFunc(h.HandleMe),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/users/me/username",
		r.authn(http.HandlerFunc(h.HandleChangeUsername),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/users/me/password",
		r.authn(http.HandlerFunc(h.HandleChangePassword),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	// Admin user management
	r.Mux.Handle("GET /v1/users", r.admin(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/users/{id}", r.admin(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PUT /v1/users/{id}/enabled", r.admin(http.HandlerFunc(h.HandleSetEnabled)))
	r.Mux.Handle("PUT /v1/users/{id}/roles", r.admin(http.HandlerFunc(h.HandleSetRoles)))
	r.Mux.Handle("GET /v1/users/{id}/quizzes", r.admin(http.HandlerFunc(q.HandleListByUser)))

	// Delete allows self-deletion, so the role check lives in the handler
	r.Mux.Handle("DELETE /v1/users/{id}",
		r.authn(http.HandlerFunc(h.HandleDelete),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RoleService: r.RoleService}

	r.Mux.Handle("GET /v1/roles", r.admin(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /v1/roles", r.admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("DELETE /v1/roles/{id}", r.admin(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerTags() {
	h := &TagsHandler{TagService: r.TagService}

	// Public reads, lenient rate limit by IP
	r.Mux.Handle("GET /v1/tags",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/tags/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/tags", r.admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /v1/tags/{id}", r.admin(http.HandlerFunc(h.HandleRename)))
	r.Mux.Handle("DELETE /v1/tags/{id}", r.admin(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerAdvice() {
	h := &AdviceHandler{AdviceService: r.AdviceService, AnswerService: r.AnswerService}
	q := &QuizzesHandler{QuizService: r.QuizService}

	// Public reads, lenient rate limit by IP
	r.Mux.Handle("GET /v1/advice",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/advice/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/advice/{id}/questions",
		httpx.Chain(http.HandlerFunc(h.HandleListQuestions),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/advice", r.admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /v1/advice/{id}/tags", r.admin(http.HandlerFunc(h.HandleSetTags)))
	r.Mux.Handle("DELETE /v1/advice/{id}", r.admin(http.HandlerFunc(h.HandleDelete)))
	r.Mux.Handle("POST /v1/advice/{id}/questions", r.admin(http.HandlerFunc(h.HandleAddQuestion)))
	r.Mux.Handle("DELETE /v1/questions/{id}", r.admin(http.HandlerFunc(h.HandleDeleteQuestion)))
	r.Mux.Handle("GET /v1/advice/{id}/quizzes", r.admin(http.HandlerFunc(q.HandleListByAdvice)))
}

func (r *Router) registerAnswers() {
	h := &AnswersHandler{AnswerService: r.AnswerService}

	r.Mux.Handle("POST /v1/questions/{id}/answers", r.admin(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/questions/{id}/answers", r.admin(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("PUT /v1/answers/{id}", r.admin(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /v1/answers/{id}", r.admin(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerQuizzes() {
	h := &QuizzesHandler{QuizService: r.QuizService}

	r.Mux.Handle("POST /v1/quizzes",
		r.authn(http.HandlerFunc(h.HandleSubmit),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/quizzes",
		r.authn(http.HandlerFunc(h.HandleListMine),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/quizzes/{id}",
		r.authn(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/quizzes/{id}", r.admin(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
