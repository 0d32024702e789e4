package web_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/snippetsapp/snippets/internal/factory"
	"github.com/snippetsapp/snippets/internal/services/auth"
	"github.com/snippetsapp/snippets/internal/web"
)

const (
	testSessionSecret = "web-test-secret"
	testLegacySecret  = "web-test-legacy-secret"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.App
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := factory.New(factory.Config{
		AuthConfig: auth.Config{
			Secret:       testSessionSecret,
			LegacySecret: testLegacySecret,
		},
	})
	require.NoError(t, err)

	router := web.NewRouter(web.RouterConfig{
		Logger:              logger,
		AuthService:         app.AuthService,
		EntryController:     app.EntryController,
		FavouriteController: app.FavouriteController,
		StaticDir:           "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// set stores a cookie directly, as if a previous deployment had written it
func (j *cookieJar) set(name, value string) {
	j.cookies[name] = &http.Cookie{Name: name, Value: value}
}

// Helper functions for common test operations

// signup creates an account through the form and leaves the session
// cookie in the jar
func (ts *webTestServer) signup(username, password string) {
	ts.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	rr := ts.post("/signup", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after signup")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
}

// login logs in through the form
func (ts *webTestServer) login(username, password string) {
	ts.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	rr := ts.post("/login", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
}

// logout clears the session via the logout form
func (ts *webTestServer) logout() {
	ts.t.Helper()
	rr := ts.post("/logout?_method=DELETE", nil)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after logout")
}

// createEntry publishes an entry and returns its id from the redirect
func (ts *webTestServer) createEntry(title, content string) string {
	ts.t.Helper()
	form := url.Values{"title": {title}, "content": {content}}
	rr := ts.post("/entry", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after creating entry")

	location := rr.Header().Get("Location")
	require.Contains(ts.t, location, "/entry/", "Expected redirect to entry page")

	parts := strings.Split(location, "/entry/")
	require.Len(ts.t, parts, 2, "Expected location to contain /entry/{id}")
	_, err := strconv.ParseInt(parts[1], 10, 64)
	require.NoError(ts.t, err, "Expected numeric entry id in location")
	return parts[1]
}

// followRedirect follows a Location header and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
