package ui

import (
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/go-pkgz/routegroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railflow/railflow-portal/internal/app/api/core/middleware/ratelimit"
	"github.com/railflow/railflow-portal/internal/app/api/session"
	"github.com/railflow/railflow-portal/internal/app/controlroom"
	"github.com/railflow/railflow-portal/internal/app/gate"
	"github.com/railflow/railflow-portal/internal/config"
)

type nopBus struct{}

func (nopBus) Publish(string, ...any) {}

var csrfField = regexp.MustCompile(`name="_csrf" value="([^"]*)"`)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Web.SiteTitle = "RailFlow AI"
	cfg.Web.SiteCompanyName = "Indian Railways"
	cfg.Web.SessionIdentifier = "railflow_test"
	cfg.Web.SessionLifetime = time.Hour
	cfg.Web.ExternalUrl = "http://localhost"
	cfg.Web.LoginRateLimit = 100
	cfg.Web.LoginRateBurst = 100
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	return newTestServerWithLimiter(t, cfg, ratelimit.New(cfg.Web.LoginRateLimit, cfg.Web.LoginRateBurst))
}

func newTestServerWithLimiter(t *testing.T, cfg *config.Config, limiter LoginLimiter) *httptest.Server {
	frontend, err := NewFrontend(cfg, session.NewWrapper(cfg), gate.NewManager(cfg, nopBus{}),
		controlroom.NewManager(nopBus{}), limiter)
	require.NoError(t, err)

	router := routegroup.New(http.NewServeMux())
	frontend.Setup(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type browser struct {
	t    *testing.T
	c    *http.Client
	base string
	csrf string
}

func newBrowser(t *testing.T, srv *httptest.Server) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, c: &http.Client{Jar: jar}, base: srv.URL}
}

func (b *browser) read(resp *http.Response) (int, string) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)

	if m := csrfField.FindStringSubmatch(string(body)); m != nil {
		b.csrf = html.UnescapeString(m[1])
	}
	return resp.StatusCode, string(body)
}

func (b *browser) get(path string) (int, string) {
	resp, err := b.c.Get(b.base + path)
	require.NoError(b.t, err)
	return b.read(resp)
}

// post submits a form with the last seen CSRF token and follows the redirect.
func (b *browser) post(path string, values url.Values) (int, string) {
	if values == nil {
		values = url.Values{}
	}
	if b.csrf != "" && !values.Has("_csrf") {
		values.Set("_csrf", b.csrf)
	}

	resp, err := b.c.PostForm(b.base+path, values)
	require.NoError(b.t, err)
	return b.read(resp)
}

func configurationForm() url.Values {
	return url.Values{
		"trainNumber":        {"12345"},
		"trainType":          {"express"},
		"priority":           {"High"},
		"stationCode":        {"NDLS"},
		"initialDestination": {"New Delhi"},
		"finalDestination":   {"Mumbai Central"},
	}
}

func readyBrowser(t *testing.T, srv *httptest.Server) *browser {
	b := newBrowser(t, srv)
	b.get("/")
	b.post("/login", url.Values{"controllerId": {"abhi"}, "password": {"secret"}})
	b.post("/direction", url.Values{"direction": {"up"}})
	_, body := b.post("/configuration", configurationForm())
	require.Contains(t, body, "Live Train Status")
	return b
}

func TestFrontend_GateFlow(t *testing.T) {
	srv := newTestServer(t, testConfig())
	b := newBrowser(t, srv)

	code, body := b.get("/analytics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Login to Control Center")
	require.NotEmpty(t, b.csrf)

	_, body = b.post("/login", url.Values{"controllerId": {"abhi"}})
	assert.Contains(t, body, "Please fill in all fields")
	assert.Contains(t, body, "Login to Control Center")

	_, body = b.post("/login", url.Values{"controllerId": {"abhi"}, "password": {"secret"}})
	assert.Contains(t, body, "Welcome back, abhi!")
	assert.Contains(t, body, "Select Track Direction")
	assert.Contains(t, body, "Controller: <strong>abhi</strong>")

	// the toast is only shown once
	code, body = b.get("/analytics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Select Track Direction")
	assert.NotContains(t, body, "Welcome back")

	_, body = b.post("/direction", url.Values{"direction": {"sideways"}})
	assert.Contains(t, body, "Please select a track direction")

	_, body = b.post("/direction", url.Values{"direction": {"up"}})
	assert.Contains(t, body, "UP direction selected")
	assert.Contains(t, body, "Train Configuration")
	assert.Contains(t, body, "Switch to DOWN")

	_, body = b.post("/switch", nil)
	assert.Contains(t, body, "Switched to DOWN direction")
	assert.Contains(t, body, "Select Track Direction")

	b.post("/direction", url.Values{"direction": {"down"}})

	invalid := configurationForm()
	invalid.Set("trainType", "rocket")
	_, body = b.post("/configuration", invalid)
	assert.Contains(t, body, "Invalid train configuration")

	missing := configurationForm()
	missing.Set("stationCode", "   ")
	_, body = b.post("/configuration", missing)
	assert.Contains(t, body, "Please fill in all required fields")
	assert.Contains(t, body, "Train Configuration")

	_, body = b.post("/configuration", configurationForm())
	assert.Contains(t, body, "Train configuration completed successfully!")
	assert.Contains(t, body, "Live Train Status")
	assert.Contains(t, body, "Train 12345 &middot; NDLS")

	_, body = b.post("/back", nil)
	assert.Contains(t, body, "This action is not available right now (ready)")

	_, body = b.post("/reset", nil)
	assert.Contains(t, body, "System reset completed - all data cleared")
	assert.Contains(t, body, "Select Track Direction")
	assert.Contains(t, body, "Controller: <strong>abhi</strong>")
	assert.NotContains(t, body, "Train 12345")

	_, body = b.post("/logout", nil)
	assert.Contains(t, body, "Logged out successfully")
	assert.Contains(t, body, "Login to Control Center")

	code, body = b.get("/dashboard")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Login to Control Center")
	assert.NotContains(t, body, "abhi")
}

func TestFrontend_LoginPersists(t *testing.T) {
	srv := newTestServer(t, testConfig())
	b := newBrowser(t, srv)
	b.get("/")

	_, body := b.post("/login", url.Values{"controllerId": {"abhi"}, "password": {"secret"}})
	assert.Contains(t, body, "Select Track Direction")
	assert.NotContains(t, body, "Login to Control Center")

	for _, path := range []string{"/", "/dashboard", "/some/deep/path"} {
		code, body := b.get(path)
		assert.Equal(t, http.StatusOK, code, path)
		assert.Contains(t, body, "Select Track Direction", path)
		assert.Contains(t, body, "Controller: <strong>abhi</strong>", path)
	}

	_, body = b.post("/direction", url.Values{"direction": {"down"}})
	assert.Contains(t, body, "DOWN direction selected")
	assert.Contains(t, body, "Train Configuration")
}

func TestFrontend_ApplicationPages(t *testing.T) {
	srv := newTestServer(t, testConfig())
	b := readyBrowser(t, srv)

	code, body := b.get("/dashboard")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Andaman Express")
	assert.Contains(t, body, "signal-red")

	code, body = b.get("/train-control")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Train Control Center")
	assert.Contains(t, body, "Kota Junction")

	code, body = b.get("/train-control/T003")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Katpadi")
	assert.Contains(t, body, "Jolarpettai")

	code, body = b.get("/train-control/T002")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Bharatpur")
	assert.Contains(t, body, "Mathura")

	code, body = b.get("/train-control/T999")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "Oops! Page not found")

	code, body = b.get("/analytics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Analytics Dashboard")
	assert.Contains(t, body, "Peak at 12:00 with 89 trains")

	code, body = b.get("/settings")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "System Information")
	assert.Contains(t, body, "Operational")

	code, body = b.get("/does-not-exist")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "Oops! Page not found")
	assert.Contains(t, body, "Return to Home")
	assert.Contains(t, body, "/does-not-exist")
	assert.NotContains(t, body, "404 page not found")
}

func TestFrontend_TrainActions(t *testing.T) {
	srv := newTestServer(t, testConfig())
	b := readyBrowser(t, srv)

	_, body := b.post("/train-control/T001/actions", url.Values{"action": {"Priority Boost"}})
	assert.Contains(t, body, "Priority Boost applied to Express Mumbai-Delhi")
	assert.Contains(t, body, "Train Control Center")

	_, body = b.post("/train-control/T001/actions", url.Values{"action": {"Teleport"}})
	assert.Contains(t, body, "Unknown action")

	_, body = b.post("/train-control/T404/actions", url.Values{"action": {"Priority Boost"}})
	assert.Contains(t, body, "Train not found")

	_, body = b.post("/dashboard/trains/16032/actions", url.Values{"action": {"Reroute"}})
	assert.Contains(t, body, "Reroute applied to Andaman Express")
	assert.Contains(t, body, "Live Train Status")
}

func TestFrontend_Settings(t *testing.T) {
	srv := newTestServer(t, testConfig())
	b := readyBrowser(t, srv)

	_, body := b.post("/settings", url.Values{
		"refreshInterval": {"60"},
		"alertThreshold":  {"5"},
		"maxDelayAlert":   {"20"},
		"priorityMode":    {"hybrid"},
		"soundAlerts":     {"on"},
	})
	assert.Contains(t, body, "Settings saved successfully!")
	assert.Contains(t, body, `value="60" selected`)
	assert.Contains(t, body, `value="hybrid" selected`)

	_, body = b.post("/settings", url.Values{
		"refreshInterval": {"1"},
		"alertThreshold":  {"5"},
		"maxDelayAlert":   {"20"},
		"priorityMode":    {"hybrid"},
	})
	assert.Contains(t, body, "Invalid settings")
	assert.Contains(t, body, `value="60" selected`)

	_, body = b.post("/settings", url.Values{"refreshInterval": {"soon"}})
	assert.Contains(t, body, "Invalid settings")

	_, body = b.post("/settings/reset", nil)
	assert.Contains(t, body, "Settings reset to default values")
	assert.Contains(t, body, `value="30" selected`)
}

func TestFrontend_ActionsRequireReady(t *testing.T) {
	srv := newTestServer(t, testConfig())
	b := newBrowser(t, srv)
	b.get("/")
	b.post("/login", url.Values{"controllerId": {"abhi"}, "password": {"secret"}})

	_, body := b.post("/settings/reset", nil)
	assert.Contains(t, body, "This action is not available right now (awaiting direction)")
	assert.Contains(t, body, "Select Track Direction")
}

func TestFrontend_CsrfRejected(t *testing.T) {
	srv := newTestServer(t, testConfig())
	b := newBrowser(t, srv)

	_, body := b.post("/login", url.Values{"controllerId": {"abhi"}, "password": {"secret"}})
	assert.Contains(t, body, "The form has expired, please try again")
	assert.Contains(t, body, "Login to Control Center")
}

func TestFrontend_LoginRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.Web.LoginRateLimit = 0.001
	cfg.Web.LoginRateBurst = 1
	srv := newTestServer(t, cfg)
	b := newBrowser(t, srv)
	b.get("/")

	b.post("/login", url.Values{"controllerId": {"abhi"}})
	_, body := b.post("/login", url.Values{"controllerId": {"abhi"}, "password": {"secret"}})
	assert.Contains(t, body, "Too many login attempts, please wait")
	assert.Contains(t, body, "Login to Control Center")
}

func TestFrontend_LoginLimiterShared(t *testing.T) {
	cfg := testConfig()
	limiter := ratelimit.New(0.001, 1)
	srv := newTestServerWithLimiter(t, cfg, limiter)

	// another surface uses up the budget of the same client
	other := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodPost, "/api/v0/auth/login", nil)
	req.RemoteAddr = "127.0.0.1:4000"
	other.ServeHTTP(httptest.NewRecorder(), req)

	b := newBrowser(t, srv)
	b.get("/")
	_, body := b.post("/login", url.Values{"controllerId": {"abhi"}, "password": {"secret"}})
	assert.Contains(t, body, "Too many login attempts, please wait")
	assert.Contains(t, body, "Login to Control Center")
}

func TestFrontend_Static(t *testing.T) {
	srv := newTestServer(t, testConfig())
	b := newBrowser(t, srv)

	resp, err := b.c.Get(srv.URL + "/static/css/style.css")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
}
