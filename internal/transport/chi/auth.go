package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gearsh/gearsh-api/internal/auth"
)

// TokenVerifier validates bearer tokens (ISP).
type TokenVerifier interface {
	Enabled() bool
	Verify(token string) (auth.Claims, error)
}

type subjectKey struct{}

// SubjectFromContext returns the authenticated user ID, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectKey{}).(string)
	return sub, ok && sub != ""
}

// RequireToken returns a middleware that validates Bearer tokens and stores
// the token subject in the request context.
// If the verifier is nil or disabled, authentication is off (pass-through).
func RequireToken(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if v == nil || !v.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(header, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			claims, err := v.Verify(header[len(bearerPrefix):])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
