package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/snippetsapp/snippets/internal/services/auth"
	"github.com/snippetsapp/snippets/internal/web/middleware"
	"github.com/snippetsapp/snippets/internal/web/templates"
)

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// SignupPage renders the signup form. Logged-in users are sent to the
// dashboard instead.
func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentity(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	renderPage(w, "signup", templates.SignupData{
		PageData: pageData(r, "Sign up"),
	})
}

// Signup handles signup form submission and logs the new user in
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderErrorPage(w, r, http.StatusForbidden)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		renderErrorPage(w, r, http.StatusForbidden)
		return
	}

	session, err := h.authService.Signup(r.Context(), username, password)
	if err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	h.setSessionCookie(w, session)
	middleware.SetFlash(w, "success", "Welcome, "+session.User.Username+"!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// LoginPage renders the login form. Logged-in users are sent to the
// dashboard instead.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentity(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	renderPage(w, "login", templates.LoginData{
		PageData: pageData(r, "Log in"),
	})
}

// Login handles login form submission. Unknown usernames and wrong
// passwords yield an identical forbidden response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderErrorPage(w, r, http.StatusForbidden)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		renderErrorPage(w, r, http.StatusForbidden)
		return
	}

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	h.setSessionCookie(w, session)
	middleware.SetFlash(w, "success", "Welcome back, "+session.User.Username+"!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session cookie and the legacy cookie trio together
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{
		middleware.SessionCookie,
		middleware.LegacyHashCookie,
		middleware.LegacyUserIDCookie,
		middleware.LegacyUsernameCookie,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
