package httpx

import "net/http"

// RequireAnyRole lets the request through when the caller holds at least one
// of the listed role names. Must run after AuthnMiddleware.
func RequireAnyRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, r := range required {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, role := range RolesFromContext(r.Context()) {
				if _, ok := want[role]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("insufficient_role"))
		})
	}
}
