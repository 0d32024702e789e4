package templates

import (
	"github.com/snippetsapp/snippets/internal/model"
	"github.com/snippetsapp/snippets/internal/services/auth"
	"github.com/snippetsapp/snippets/internal/services/entry"
)

// FlashMessage is a one-shot notice shown on the next page render
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData is the common data every page template receives
type PageData struct {
	Title    string
	Identity *auth.Identity // nil when anonymous
	Flash    *FlashMessage
}

// HomeData is the homepage
type HomeData struct {
	PageData
}

// SignupData is the signup form page
type SignupData struct {
	PageData
	Username string
}

// LoginData is the login form page
type LoginData struct {
	PageData
	Username string
}

// DashboardData is the authenticated summary view
type DashboardData struct {
	PageData
	Entries        []*model.Entry
	FavouriteCount int
}

// EntryFormData renders the new-entry and edit-entry forms
type EntryFormData struct {
	PageData
	Entry *model.Entry // nil for the new-entry form
}

// EntryViewData is a single entry with comments and favourite state
type EntryViewData struct {
	PageData
	View *entry.View
}

// BlogData lists one user's entries
type BlogData struct {
	PageData
	Author  string
	Entries []*model.Entry
}

// FavouritesData lists the viewer's favourited entries
type FavouritesData struct {
	PageData
	Entries []*model.Entry
}

// ErrorData is the generic error page
type ErrorData struct {
	PageData
	Status  int
	Message string
}
