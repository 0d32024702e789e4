package handler

import (
	"net/http"

	"github.com/snippetsapp/snippets/internal/web/middleware"
	"github.com/snippetsapp/snippets/internal/web/templates"
)

// HomeHandler handles the home page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the homepage, or sends logged-in users to their dashboard
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	if middleware.GetIdentity(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	renderPage(w, "home", templates.HomeData{
		PageData: pageData(r, "Home"),
	})
}
