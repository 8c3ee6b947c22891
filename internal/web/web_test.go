package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/gamehorizon/gamehorizon/internal/api"
	"github.com/gamehorizon/gamehorizon/internal/client"
	"github.com/gamehorizon/gamehorizon/internal/factory"
	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/testutil"
	"github.com/gamehorizon/gamehorizon/internal/ui"
	"github.com/gamehorizon/gamehorizon/internal/web"
)

// webTestServer provides a UI server talking to a real record store over HTTP
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	store   *factory.TestApp
	backend *httptest.Server
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	logger := testutil.NopLogger()
	store := factory.NewTestApp()

	backend := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:            logger,
		CollectionService: store.CollectionService,
	}))
	t.Cleanup(backend.Close)

	controller := ui.NewController(client.New(backend.URL), store.MockClock, logger)

	router := web.NewRouter(web.RouterConfig{
		Logger:     logger,
		Controller: controller,
		StaticDir:  "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		store:   store,
		backend: backend,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
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
	return ts.request(http.MethodGet, path, nil, false)
}

// getHTMX makes a GET request as an HTMX request
func (ts *webTestServer) getHTMX(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, true)
}

// post makes a POST request with form data (non-HTMX)
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, false)
}

// postHTMX makes a POST request with form data as an HTMX request
func (ts *webTestServer) postHTMX(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, true)
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("HX-Redirect")
	if location == "" {
		location = rr.Header().Get("Location")
	}
	require.NotEmpty(ts.t, location, "Expected Location or HX-Redirect header for redirect")
	return ts.get(location)
}

// storeDown stops the record store so every call from the UI fails
func (ts *webTestServer) storeDown() {
	ts.backend.Close()
}

// addGame puts a game straight into the store
func (ts *webTestServer) addGame(game model.Game) model.Game {
	ts.t.Helper()
	created, err := ts.store.CollectionService.Create(ts.t.Context(), game)
	require.NoError(ts.t, err)
	return created
}

// storedGames lists the store's collection directly
func (ts *webTestServer) storedGames() []model.Game {
	ts.t.Helper()
	games, err := ts.store.CollectionService.List(ts.t.Context())
	require.NoError(ts.t, err)
	return games
}

// hadesForm is the form post for the Hades record
func hadesForm() url.Values {
	return url.Values{
		"title":       {"Hades"},
		"genre":       {"RPG"},
		"platforms":   {"PC"},
		"releaseYear": {"2020"},
		"rating":      {"4.5"},
		"completed":   {"on"},
	}
}

// addHades opens the create form and submits Hades the way a browser would
func (ts *webTestServer) addHades() model.Game {
	ts.t.Helper()
	ts.get("/")
	ts.get("/games/new")
	rr := ts.post("/form", hadesForm())
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, rr.Body.String())

	games := ts.storedGames()
	require.NotEmpty(ts.t, games)
	return games[len(games)-1]
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
