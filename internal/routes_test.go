package internal

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fontpair/internal/controllers"
	"fontpair/internal/external"
	"fontpair/internal/providers"
	"fontpair/internal/services"
	"fontpair/internal/storage"
	"fontpair/internal/structures"
	"fontpair/internal/testutil"
)

type routeTestEnv struct {
	conf    *structures.Config
	metrics *testutil.MockMetrics
	router  providers.RouterProviderInterface
	health  *controllers.HealthController
}

func newRouteTestEnv(t *testing.T) *routeTestEnv {
	t.Helper()
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	conf := &structures.Config{
		License: structures.LicenseConfig{Backend: "none"},
		AI:      structures.AIConfig{Timeout: time.Second},
		Metrics: structures.MetricsConfig{Enabled: true},
		Cors:    structures.CorsConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	store := storage.NewFileStore("", 0, &testutil.MockCompressor{}, logger)
	accessor := storage.NewAccessor(store, logger)
	clock := services.NewSystemClock()
	repo, cleanup, err := external.NewLicenseRepository(conf, logger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	entStore := services.NewEntitlementStore(accessor, clock)
	entitlements := services.NewEntitlementService(entStore, metrics, logger)
	history := services.NewHistoryService(accessor, entitlements, clock, logger)
	projects := services.NewProjectService(accessor, clock, logger)
	settings := services.NewSettingsService(accessor)
	license := services.NewLicenseService(repo, entStore, settings, accessor, metrics, logger)
	analysis := services.NewAnalysisService(conf, entitlements, history, projects, settings, external.NewAIClientFactory(conf), testutil.NewMockCache(), metrics, logger)

	router := InitRoutes(
		controllers.NewAnalysisController(analysis),
		controllers.NewHistoryController(history),
		controllers.NewProjectController(projects, entitlements),
		controllers.NewEntitlementController(entitlements),
		controllers.NewLicenseController(license, entitlements),
		controllers.NewSettingsController(settings),
		controllers.NewWebhookController(license, conf, metrics, logger),
	)
	return &routeTestEnv{
		conf:    conf,
		metrics: metrics,
		router:  router,
		health:  controllers.NewHealthController(store, entitlements, license),
	}
}

func (e *routeTestEnv) handler() http.Handler {
	return NewHandler(e.health, e.conf, &testutil.MockLogger{}, e.router, e.metrics)
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestInitRoutes_RegistersApiSurface(t *testing.T) {
	env := newRouteTestEnv(t)

	registered := make(map[string]bool)
	for _, r := range env.router.GetRoutes() {
		registered[r.Method+" "+r.Url] = true
	}

	for _, want := range []string{
		"GET /entitlements",
		"POST /entitlements/continue-free",
		"POST /analyses",
		"POST /analyses/batch",
		"POST /find-fonts",
		"POST /critiques",
		"GET /history",
		"DELETE /history/{id}",
		"GET /search-history",
		"GET /projects",
		"PUT /projects/active",
		"POST /projects/import",
		"PATCH /projects/{id}/pairings/{pairingId}",
		"POST /license/validate",
		"GET /license/status",
		"PUT /settings",
		" /webhooks/license",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestHandler_InfrastructureEndpoints(t *testing.T) {
	h := newRouteTestEnv(t).handler()

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/metrics", "").Code)
}

func TestHandler_MetricsDisabled(t *testing.T) {
	env := newRouteTestEnv(t)
	env.conf.Metrics.Enabled = false

	assert.NotEqual(t, http.StatusOK, do(env.handler(), http.MethodGet, "/metrics", "").Code)
}

func TestHandler_MethodEnforcement(t *testing.T) {
	h := newRouteTestEnv(t).handler()

	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodPost, "/history", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodGet, "/analyses", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodGet, "/webhooks/license", "").Code)
}

func TestHandler_RoutesReachControllers(t *testing.T) {
	env := newRouteTestEnv(t)
	h := env.handler()

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/entitlements", "").Code)
	assert.Equal(t, "[]", do(h, http.MethodGet, "/projects", "").Body.String())
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/projects/missing", "").Code)
	// no license backend
	assert.Equal(t, http.StatusInternalServerError, do(h, http.MethodPost, "/webhooks/license", "").Code)
	// no AI key
	assert.Equal(t, http.StatusServiceUnavailable, do(h, http.MethodPost, "/analyses", `{"description":"serif"}`).Code)

	assert.Greater(t, env.metrics.RequestCount, 0)
}

func TestHandler_CorsPreflight(t *testing.T) {
	h := newRouteTestEnv(t).handler()

	req := httptest.NewRequest(http.MethodOptions, "/analyses", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}
