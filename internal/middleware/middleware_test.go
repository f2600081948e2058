package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"ledger-backend/internal/auth"
	"ledger-backend/internal/config"
	"ledger-backend/internal/session"
)

func tokenFor(t *testing.T, m *auth.JWTManager, s session.Session) string {
	t.Helper()
	tok, err := m.GenerateToken(s)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestAuthenticate(t *testing.T) {
	jwtm := auth.NewJWTManager(config.JWTConfig{Secret: "test", ExpirationHours: 1, Issuer: "ledger-backend"})
	other := auth.NewJWTManager(config.JWTConfig{Secret: "other", ExpirationHours: 1, Issuer: "ledger-backend"})
	mw := NewAuthMiddleware(jwtm)

	admin := session.Session{Username: "root", Name: "Root", Role: session.RoleAdmin}
	user := session.Session{Username: "omar", Name: "Omar", Role: session.RoleUser}

	var seen session.Session
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		admin  bool
		want   int
	}{
		{"no header", "", false, http.StatusUnauthorized},
		{"not bearer", "Token abc", false, http.StatusUnauthorized},
		{"bad signature", "Bearer " + tokenFor(t, other, user), false, http.StatusUnauthorized},
		{"user", "Bearer " + tokenFor(t, jwtm, user), false, http.StatusNoContent},
		{"user on admin route", "Bearer " + tokenFor(t, jwtm, user), true, http.StatusForbidden},
		{"admin on admin route", "Bearer " + tokenFor(t, jwtm, admin), true, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h http.Handler = ok
			if tt.admin {
				h = mw.RequireAdmin(h)
			}
			h = mw.Authenticate(h)

			req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtm, admin))
	mw.Authenticate(ok).ServeHTTP(httptest.NewRecorder(), req)
	if seen != admin {
		t.Errorf("session = %+v, want %+v", seen, admin)
	}
}

func TestRequireAdminWithoutSession(t *testing.T) {
	mw := NewAuthMiddleware(nil)
	rec := httptest.NewRecorder()
	mw.RequireAdmin(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestPanicRecovery(t *testing.T) {
	h := PanicRecovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"error": "Internal server error"}` {
		t.Errorf("body = %s", got)
	}
}

func TestRequestLogger(t *testing.T) {
	var ctxID string
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
		w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	id := rec.Header().Get(RequestIDHeader)
	if id == "" || id != ctxID {
		t.Errorf("header id %q, context id %q", id, ctxID)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("reused id = %q", got)
	}
}

func TestRouteTemplate(t *testing.T) {
	var got string
	r := mux.NewRouter()
	r.HandleFunc("/api/clients/{id}", func(w http.ResponseWriter, req *http.Request) {
		got = routeTemplate(req)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/clients/42", nil))
	if got != "/api/clients/{id}" {
		t.Errorf("template = %q", got)
	}

	if tpl := routeTemplate(httptest.NewRequest(http.MethodGet, "/x", nil)); tpl != "unmatched" {
		t.Errorf("unrouted template = %q", tpl)
	}
}
