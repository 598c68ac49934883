package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusclub/clubhub-backend/internal/auth"
)

func protected(t *testing.T, verifier auth.Verifier) http.Handler {
	t.Helper()
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := auth.FromContext(r.Context())
		if p == nil {
			t.Error("expected principal on context")
		}
		w.WriteHeader(http.StatusOK)
	})
	return auth.Middleware(verifier)(auth.RequireAdmin(final))
}

func TestMissingTokenIs401(t *testing.T) {
	h := protected(t, &auth.StaticVerifier{AdminToken: "secret"})

	req := httptest.NewRequest("GET", "/announcements", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Result().StatusCode)
	}
}

func TestWrongTokenIs401(t *testing.T) {
	h := protected(t, &auth.StaticVerifier{AdminToken: "secret"})

	req := httptest.NewRequest("GET", "/announcements", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Result().StatusCode)
	}
}

func TestValidAdminTokenPasses(t *testing.T) {
	h := protected(t, &auth.StaticVerifier{AdminToken: "secret"})

	req := httptest.NewRequest("GET", "/announcements", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Result().StatusCode)
	}
}

type nonAdminVerifier struct{}

func (nonAdminVerifier) VerifyToken(token string) (*auth.Principal, error) {
	return &auth.Principal{ID: 2, Name: "Member"}, nil
}

func TestNonAdminIs403(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := auth.Middleware(nonAdminVerifier{})(auth.RequireAdmin(final))

	req := httptest.NewRequest("GET", "/announcements", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Result().StatusCode)
	}
}
