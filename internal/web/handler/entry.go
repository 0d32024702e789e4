package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/snippetsapp/snippets/internal/services/entry"
	"github.com/snippetsapp/snippets/internal/web/middleware"
	"github.com/snippetsapp/snippets/internal/web/templates"
)

// EntryHandler handles entry and comment pages and actions
type EntryHandler struct {
	entries *entry.Controller
	logger  *slog.Logger
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entries *entry.Controller, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		entries: entries,
		logger:  logger,
	}
}

// NewForm renders the new-entry form
func (h *EntryHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, "entry_new", templates.EntryFormData{
		PageData: pageData(r, "New entry"),
	})
}

// Create handles new-entry form submission
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	title, content, ok := h.entryForm(w, r)
	if !ok {
		return
	}

	ent, err := h.entries.Create(r.Context(), identity.UserID, title, content)
	if err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	middleware.SetFlash(w, "success", "Entry published")
	http.Redirect(w, r, "/entry/"+strconv.FormatInt(ent.ID, 10), http.StatusSeeOther)
}

// View renders a single entry with its comments and favourite state
func (h *EntryHandler) View(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.entries.GetView(r.Context(), id, identity.UserID)
	if err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	renderPage(w, "entry_view", templates.EntryViewData{
		PageData: pageData(r, view.Entry.Title),
		View:     view,
	})
}

// EditForm renders the edit form for an entry the viewer owns
func (h *EntryHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ent, err := h.entries.Get(r.Context(), id)
	if err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}
	if ent.AuthorID != identity.UserID {
		renderErrorPage(w, r, http.StatusForbidden)
		return
	}

	renderPage(w, "entry_edit", templates.EntryFormData{
		PageData: pageData(r, "Edit entry"),
		Entry:    ent,
	})
}

// Update handles the edit form submission
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	title, content, formOK := h.entryForm(w, r)
	if !formOK {
		return
	}

	if _, err := h.entries.Update(r.Context(), id, identity.UserID, title, content); err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	middleware.SetFlash(w, "success", "Entry updated")
	http.Redirect(w, r, "/entry/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// Delete removes an entry the viewer owns
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.entries.Delete(r.Context(), id, identity.UserID); err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	middleware.SetFlash(w, "success", "Entry deleted")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// AddComment attaches a comment to an entry
func (h *EntryHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		renderErrorPage(w, r, http.StatusForbidden)
		return
	}
	content := strings.TrimSpace(r.FormValue("content"))
	if content == "" {
		middleware.SetFlash(w, "error", "Comment cannot be empty")
		http.Redirect(w, r, "/entry/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
		return
	}

	if _, err := h.entries.AddComment(r.Context(), id, identity.UserID, content); err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r, "/entry/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// DeleteComment removes the viewer's own comment from an entry
func (h *EntryHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	entryID, ok := pathID(w, r, "entryid")
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentid")
	if !ok {
		return
	}

	if err := h.entries.DeleteComment(r.Context(), entryID, commentID, identity.UserID); err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r, "/entry/"+strconv.FormatInt(entryID, 10), http.StatusSeeOther)
}

// entryForm parses and validates the shared title/content form
func (h *EntryHandler) entryForm(w http.ResponseWriter, r *http.Request) (title, content string, ok bool) {
	if err := r.ParseForm(); err != nil {
		renderErrorPage(w, r, http.StatusForbidden)
		return "", "", false
	}

	title = strings.TrimSpace(r.FormValue("title"))
	content = strings.TrimSpace(r.FormValue("content"))
	if title == "" || content == "" {
		renderErrorPage(w, r, http.StatusForbidden)
		return "", "", false
	}
	return title, content, true
}

// pathID parses an integer path variable; a malformed id reads as not-found
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		renderErrorPage(w, r, http.StatusNotFound)
		return 0, false
	}
	return id, true
}
