package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlashMessageDisplayedOnSuccess(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/signup", url.Values{"username": {"alice"}, "password": {"secret123"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash", "Welcome")
}

func TestFlashMessageClearedAfterDisplay(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice", "secret123")

	// First dashboard view shows the signup flash and clears it
	rr := ts.get("/dashboard")
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, ".flash")

	rr = ts.get("/dashboard")
	doc = parseHTML(rr.Body)
	assertNotContainsElement(t, doc, ".flash")
}

func TestErrorPageHidesDetail(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice", "secret123")

	rr := ts.get("/entry/999")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".error-message", "could not find")
	// No internals leak into the page
	assert.NotContains(t, rr.Body.String(), "model.")
	assert.NotContains(t, rr.Body.String(), "sql")
}

func TestForbiddenPageIsGeneric(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice", "secret123")
	ts.logout()

	rr := ts.post("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".error-message", "not allowed")
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/no-such-page")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMethodOverrideRoutesFormPosts(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice", "secret123")
	id := ts.createEntry("First Post", "hello world")

	// Routes registered for PUT and DELETE must accept the form-encoded
	// POST override rather than rejecting the request as POST.
	rr := ts.post("/entry/"+id+"?_method=DELETE", nil)
	assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.post("/logout?_method=DELETE", nil)
	assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestMethodOverrideOnlyAppliesToPost(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice", "secret123")
	id := ts.createEntry("First Post", "hello world")

	// A GET with the override parameter must not turn into a DELETE
	rr := ts.get("/entry/" + id + "?_method=DELETE")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.get("/entry/" + id)
	assert.Equal(t, http.StatusOK, rr.Code)
}
