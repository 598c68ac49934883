// internal/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"strings"

	appErrors "github.com/campusclub/clubhub-backend/internal/errors"
)

// Principal is the authenticated caller.
type Principal struct {
	ID    int
	Name  string
	Admin bool
}

// Verifier turns a bearer token into a Principal.
type Verifier interface {
	VerifyToken(token string) (*Principal, error)
}

// StaticVerifier accepts the single admin token from configuration. The real
// identity provider sits behind the same interface.
type StaticVerifier struct {
	AdminToken string
	AdminName  string
}

func (v *StaticVerifier) VerifyToken(token string) (*Principal, error) {
	if v.AdminToken == "" || token != v.AdminToken {
		return nil, appErrors.NewUnauthorized("invalid token")
	}
	name := v.AdminName
	if name == "" {
		name = "Admin"
	}
	return &Principal{ID: 1, Name: name, Admin: true}, nil
}

type contextKey struct{}

// FromContext returns the principal stored by Middleware, or nil.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(contextKey{}).(*Principal)
	return p
}

// Middleware verifies the Authorization bearer token and stores the principal
// on the request context.
func Middleware(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			principal, err := verifier.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, principal)))
		})
	}
}

// RequireAdmin rejects non-admin principals. Mount after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := FromContext(r.Context())
		if p == nil || !p.Admin {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
