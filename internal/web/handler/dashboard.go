package handler

import (
	"log/slog"
	"net/http"

	"github.com/snippetsapp/snippets/internal/services/entry"
	"github.com/snippetsapp/snippets/internal/web/middleware"
	"github.com/snippetsapp/snippets/internal/web/templates"
)

// DashboardHandler renders the authenticated summary view
type DashboardHandler struct {
	entries *entry.Controller
	logger  *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(entries *entry.Controller, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		entries: entries,
		logger:  logger,
	}
}

// View renders the viewer's own entries and favourite count
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	dashboard, err := h.entries.GetDashboard(r.Context(), identity.UserID)
	if err != nil {
		renderFailure(w, r, h.logger, err)
		return
	}

	renderPage(w, "dashboard", templates.DashboardData{
		PageData:       pageData(r, "Dashboard"),
		Entries:        dashboard.Entries,
		FavouriteCount: dashboard.FavouriteCount,
	})
}
