package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/snippetsapp/snippets/internal/services/auth"
	"github.com/snippetsapp/snippets/internal/services/entry"
	"github.com/snippetsapp/snippets/internal/services/favourite"
	"github.com/snippetsapp/snippets/internal/web/handler"
	"github.com/snippetsapp/snippets/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger              *slog.Logger
	AuthService         *auth.Service
	EntryController     *entry.Controller
	FavouriteController *favourite.Controller
	StaticDir           string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	methodOverrideMiddleware := middleware.MethodOverride()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	requireAuthMiddleware := middleware.RequireAuth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	dashboardHandler := handler.NewDashboardHandler(cfg.EntryController, cfg.Logger)
	entryHandler := handler.NewEntryHandler(cfg.EntryController, cfg.Logger)
	blogHandler := handler.NewBlogHandler(cfg.EntryController, cfg.Logger)
	favouriteHandler := handler.NewFavouriteHandler(cfg.FavouriteController, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes: render for anonymous visitors, redirect to the
	// dashboard when already authenticated. Signup and login submission
	// must stay reachable while unauthenticated.
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/signup", authHandler.SignupPage).Methods(http.MethodGet)
	public.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodDelete)

	// Protected routes: anonymous requests are redirected to the homepage
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(requireAuthMiddleware)

	protected.HandleFunc("/dashboard", dashboardHandler.View).Methods(http.MethodGet)

	protected.HandleFunc("/entry", entryHandler.NewForm).Methods(http.MethodGet)
	protected.HandleFunc("/entry", entryHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/entry/{id}", entryHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/entry/{id}/edit", entryHandler.EditForm).Methods(http.MethodGet)
	protected.HandleFunc("/entry/{id}", entryHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/entry/{id}", entryHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/entry/{id}/comment", entryHandler.AddComment).Methods(http.MethodPost)
	protected.HandleFunc("/entry/{entryid}/comment/{commentid}", entryHandler.DeleteComment).Methods(http.MethodDelete)

	protected.HandleFunc("/entry/{id}/favourites", favouriteHandler.Add).Methods(http.MethodPost)
	protected.HandleFunc("/entry/{id}/removefromfavourites", favouriteHandler.Remove).Methods(http.MethodPost)
	protected.HandleFunc("/favourites", favouriteHandler.List).Methods(http.MethodGet)

	protected.HandleFunc("/blog/{username}", blogHandler.View).Methods(http.MethodGet)

	// mux.Use middleware runs after route matching, so the method override
	// has to wrap the router itself for the .Methods matchers to see the
	// rewritten method.
	return methodOverrideMiddleware(r)
}
