package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/snippetsapp/snippets/internal/services/entry"
	"github.com/snippetsapp/snippets/internal/web/templates"
)

// BlogHandler renders a user's public entry listing
type BlogHandler struct {
	entries *entry.Controller
	logger  *slog.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(entries *entry.Controller, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		entries: entries,
		logger:  logger,
	}
}

// View lists the entries of the user named in the path
func (h *BlogHandler) View(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, entries, err := h.entries.ListByAuthor(r.Context(), username)
	if err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	renderPage(w, "blog", templates.BlogData{
		PageData: pageData(r, user.Username+"'s blog"),
		Author:   user.Username,
		Entries:  entries,
	})
}
