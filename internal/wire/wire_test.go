package wire

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"padel-booking/internal/data/repository"
	"padel-booking/pkg/apiclient"
	"padel-booking/pkg/metrics"
	"padel-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/courts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Cancha Central","price_per_hour":"25.00"}]`))
	})
	mux.HandleFunc("/courts/1/availability", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"available_slots":[{"start_time":"09:00","end_time":"10:00"}]}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{Name: "padel-booking-test"},
		Session: utils.SessionConfig{
			Secret:     "test-secret",
			TTL:        time.Hour,
			CookieName: "booking_session",
		},
		Booking: utils.BookingConfig{
			DaysAhead:           7,
			ProofMaxBytes:       1 << 20,
			SimplePaymentAmount: 100,
		},
		Metrics: utils.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func newTestApp(t *testing.T) *httptest.Server {
	t.Helper()
	backend := fakeBackend(t)
	config := testConfig()

	api := apiclient.NewClient(backend.URL, time.Second, "test")
	repo := repository.NewRepository(api, repository.NewMemorySessionRepository(config.Session.TTL, zap.NewNop()), zap.NewNop())

	app, err := Wiring(repo, config, metrics.New(nil), zap.NewNop())
	require.NoError(t, err)

	server := httptest.NewServer(app.Router)
	t.Cleanup(server.Close)
	return server
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestWizardFlowThroughRouter(t *testing.T) {
	server := newTestApp(t)
	client := newClient(t)

	resp, err := client.Get(server.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/booking", resp.Request.URL.Path)
	assert.Contains(t, body, "Cancha Central")

	resp, err = client.PostForm(server.URL+"/booking/court", url.Values{"court_id": {"1"}})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "09:00")

	resp, err = client.Get(server.URL + "/api/booking")
	require.NoError(t, err)
	var snapshot struct {
		Status bool `json:"status"`
		Data   struct {
			Step struct {
				Number int `json:"number"`
			} `json:"step"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	resp.Body.Close()
	assert.True(t, snapshot.Status)
	assert.Equal(t, 2, snapshot.Data.Step.Number)

	resp, err = client.PostForm(server.URL+"/booking/back", nil)
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "Cancha Central")
}

func TestSessionsAreIsolated(t *testing.T) {
	server := newTestApp(t)
	first, second := newClient(t), newClient(t)

	resp, err := first.PostForm(server.URL+"/booking/court", url.Values{"court_id": {"1"}})
	require.NoError(t, err)
	readBody(t, resp)

	resp, err = second.Get(server.URL + "/api/booking")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, `"number":1`)
}

func TestHealthAndMetrics(t *testing.T) {
	server := newTestApp(t)
	client := newClient(t)

	resp, err := client.Get(server.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, "OK", readBody(t, resp))

	resp, err = client.Get(server.URL + "/booking")
	require.NoError(t, err)
	readBody(t, resp)

	resp, err = client.Get(server.URL + "/metrics")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(body, "padel_http_requests_total"))
}

func TestCheckoutFormIsServed(t *testing.T) {
	server := newTestApp(t)

	resp, err := newClient(t).Get(server.URL + "/payment")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "$100.00")
}

func TestUnknownAPIRouteIsJSON(t *testing.T) {
	server := newTestApp(t)

	resp, err := newClient(t).Get(server.URL + "/api/unknown")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, `"status":false`)
}
