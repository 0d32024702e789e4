package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/snippetsapp/snippets/internal/services/favourite"
	"github.com/snippetsapp/snippets/internal/web/middleware"
	"github.com/snippetsapp/snippets/internal/web/templates"
)

// FavouriteHandler handles favouriting actions and the favourites listing
type FavouriteHandler struct {
	favourites *favourite.Controller
	logger     *slog.Logger
}

// NewFavouriteHandler creates a new FavouriteHandler
func NewFavouriteHandler(favourites *favourite.Controller, logger *slog.Logger) *FavouriteHandler {
	return &FavouriteHandler{
		favourites: favourites,
		logger:     logger,
	}
}

// Add favourites an entry for the viewer
func (h *FavouriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.favourites.Add(r.Context(), identity.UserID, id); err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	middleware.SetFlash(w, "success", "Added to favourites")
	http.Redirect(w, r, "/entry/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// Remove unfavourites an entry for the viewer
func (h *FavouriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.favourites.Remove(r.Context(), identity.UserID, id); err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	middleware.SetFlash(w, "success", "Removed from favourites")
	http.Redirect(w, r, "/entry/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// List renders the viewer's favourited entries
func (h *FavouriteHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	entries, err := h.favourites.List(r.Context(), identity.UserID)
	if err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	renderPage(w, "favourites", templates.FavouritesData{
		PageData: pageData(r, "Favourites"),
		Entries:  entries,
	})
}
