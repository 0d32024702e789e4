package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/snippetsapp/snippets/internal/model"
	"github.com/snippetsapp/snippets/internal/services/auth"
	"github.com/snippetsapp/snippets/internal/web/middleware"
	"github.com/snippetsapp/snippets/internal/web/templates"
)

// statusForError maps domain errors onto the response taxonomy:
// forbidden for auth/ownership failures, not-found for missing rows,
// service-unavailable for everything else (persistence).
func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrEntryNotFound),
		errors.Is(err, model.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrNotEntryOwner),
		errors.Is(err, model.ErrNotCommentOwner),
		errors.Is(err, model.ErrCommentMismatch),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUsernameExists):
		return http.StatusForbidden
	default:
		return http.StatusServiceUnavailable
	}
}

// errorMessage returns the fixed user-facing text for a status. The body
// never carries error detail; in particular, failed logins read the same
// whether the username or the password was wrong.
func errorMessage(status int) string {
	switch status {
	case http.StatusForbidden:
		return "You are not allowed to do that."
	case http.StatusNotFound:
		return "We could not find what you were looking for."
	default:
		return "The service is temporarily unavailable. Please try again later."
	}
}

// renderFailure converts an error into the generic error page. Persistence
// failures are logged server-side only.
func renderFailure(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusForError(err)
	if status == http.StatusServiceUnavailable {
		logger.Error("persistence failure",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	renderErrorPage(w, r, status)
}

func renderErrorPage(w http.ResponseWriter, r *http.Request, status int) {
	data := templates.ErrorData{
		PageData: templates.PageData{
			Title:    "Error",
			Identity: middleware.GetIdentity(r.Context()),
		},
		Status:  status,
		Message: errorMessage(status),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = templates.Render(w, "error", data)
}

// renderPage executes a page template with a 200 status
func renderPage(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(w, page, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// pageData builds the common template data from the request context
func pageData(r *http.Request, title string) templates.PageData {
	return templates.PageData{
		Title:    title,
		Identity: middleware.GetIdentity(r.Context()),
		Flash:    middleware.GetFlash(r.Context()),
	}
}
