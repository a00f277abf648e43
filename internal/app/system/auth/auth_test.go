package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkovarik/kulturhub/internal/app/system/auth"
	"go.uber.org/zap"
)

func TestInitSessionStore_EmptyKey(t *testing.T) {
	if err := auth.InitSessionStore("", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestInitSessionStore_ShortKeyStillWorks(t *testing.T) {
	if err := auth.InitSessionStore("short-key", "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}
	auth.ReleaseSessionStore()
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := auth.CurrentUser(req); ok {
		t.Error("expected no user in fresh request context")
	}
}

func TestCurrentUser_WithTestUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Name: "Jana", Role: "admin"})

	u, ok := auth.CurrentUser(req)
	if !ok {
		t.Fatal("expected user in context")
	}
	if u.Name != "Jana" || u.Role != "admin" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestRequireSignedIn_RedirectsHTML(t *testing.T) {
	h := auth.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler should not run")
	}))

	req := httptest.NewRequest("GET", "/finance", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2Ffinance" {
		t.Errorf("redirect location: got %q", loc)
	}
}

func TestRequireSignedIn_API401(t *testing.T) {
	h := auth.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler should not run")
	}))

	req := httptest.NewRequest("GET", "/finance", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole_WrongRole(t *testing.T) {
	h := auth.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler should not run")
	}))

	req := httptest.NewRequest("GET", "/finance", nil)
	req.Header.Set("Accept", "text/html")
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Role: "viewer"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/forbidden" {
		t.Errorf("redirect location: got %q", loc)
	}
}

func TestRequireRole_Allowed(t *testing.T) {
	ran := false
	h := auth.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	req := httptest.NewRequest("GET", "/finance", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Role: "Admin"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !ran {
		t.Error("expected inner handler to run for admin role")
	}
}
