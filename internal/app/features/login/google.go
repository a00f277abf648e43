// internal/app/features/login/google.go
package login

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/mkovarik/kulturhub/internal/app/system/auth"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	stateCookie = "kulturhub-oauth-state"
	stateMaxAge = 10 * time.Minute
)

// userInfoURL returns the signed-in Google account's profile.
const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleStart sends the browser to Google's consent screen with a fresh
// state nonce pinned in a short-lived cookie.
// GET /login/google
func (h *Handler) GoogleStart(w http.ResponseWriter, r *http.Request) {
	if h.OAuth == nil {
		h.ErrLog.LogNotFound(w, r, "google oauth not configured", "Google sign-in is not available.", "/login")
		return
	}

	state := base64.RawURLEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/login",
		MaxAge:   int(stateMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.OAuth.AuthCodeURL(state), http.StatusSeeOther)
}

// GoogleCallback completes the OAuth exchange. Only accounts that already
// exist in the user store may sign in; there is no self-provisioning.
// GET /login/google/callback
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.OAuth == nil {
		h.ErrLog.LogNotFound(w, r, "google oauth not configured", "Google sign-in is not available.", "/login")
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		h.ErrLog.LogBadRequest(w, r, "oauth state mismatch", err, "Sign-in could not be verified. Try again.", "/login")
		return
	}
	// Burn the nonce.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/login", MaxAge: -1})

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long, h.Log, "google oauth exchange")
	defer cancel()

	token, err := h.OAuth.Exchange(ctx, r.URL.Query().Get("code"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "oauth code exchange failed", err, "Google sign-in failed. Try again.", "/login")
		return
	}

	resp, err := h.OAuth.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "google userinfo request failed", err, "Google sign-in failed. Try again.", "/login")
		return
	}
	defer resp.Body.Close()

	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || json.Unmarshal(body, &info) != nil || info.Email == "" {
		h.ErrLog.LogServerError(w, r, "google userinfo unreadable", err, "Google sign-in failed. Try again.", "/login")
		return
	}

	user, err := h.Users.GetByEmail(ctx, info.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Info("google sign-in for unknown account", zap.String("email", info.Email))
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "user lookup failed", err, "A database error occurred.", "/login")
		return
	}
	if user.Status != "" && user.Status != "active" {
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.FullName,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "session sign-in failed", err, "Unable to sign you in.", "/login")
		return
	}

	h.Log.Info("user signed in via google", zap.String("email", user.Email))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
