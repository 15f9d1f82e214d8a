package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"fontpair/internal/external"
	"fontpair/internal/models"
	"fontpair/internal/services"
	"fontpair/internal/storage"
	"fontpair/internal/structures"
	"fontpair/internal/testutil"
)

type stubAI struct {
	err   error
	calls int
}

func (s *stubAI) AnalyzeFont(context.Context, models.AnalysisRequest) (models.FontAnalysis, error) {
	s.calls++
	return models.FontAnalysis{FontName: "Inter", Status: models.AnalysisStatusOK}, s.err
}

func (s *stubAI) FindFonts(context.Context, models.SearchCriteria) (models.FontSearchResult, error) {
	s.calls++
	return models.FontSearchResult{Suggestions: []models.FontSuggestion{{FontName: "Lora"}}}, s.err
}

func (s *stubAI) CritiquePairing(context.Context, models.FontAnalysis, models.FontAnalysis) (models.PairingCritique, error) {
	s.calls++
	return models.PairingCritique{OverallScore: 8}, s.err
}

type stubAIFactory struct {
	client *stubAI
}

func (f *stubAIFactory) For(apiKey string) (external.AIClient, error) {
	if apiKey == "" {
		return nil, external.ErrNotConfigured
	}
	return f.client, nil
}

type stubLicenseRepo struct {
	configured bool
	result     models.LicenseResult
	insertErr  error
	inserted   []models.LicenseRecord
}

func (r *stubLicenseRepo) ValidateLicense(context.Context, string, string) (models.LicenseResult, error) {
	return r.result, nil
}

func (r *stubLicenseRepo) CheckActivation(context.Context, string) (models.LicenseResult, error) {
	return r.result, nil
}

func (r *stubLicenseRepo) InsertLicense(_ context.Context, record models.LicenseRecord) error {
	r.inserted = append(r.inserted, record)
	return r.insertErr
}

func (r *stubLicenseRepo) Configured() bool { return r.configured }

// testEnv wires real services over an in-memory store.
type testEnv struct {
	conf         *structures.Config
	store        *storage.FileStore
	logger       *testutil.MockLogger
	metrics      *testutil.MockMetrics
	ai           *stubAI
	repo         *stubLicenseRepo
	entStore     services.EntitlementStoreInterface
	entitlements services.EntitlementServiceInterface
	history      services.HistoryServiceInterface
	projects     services.ProjectServiceInterface
	settings     services.SettingsServiceInterface
	license      services.LicenseServiceInterface
	analysis     services.AnalysisServiceInterface
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	store := storage.NewFileStore("", 0, &testutil.MockCompressor{}, logger)
	accessor := storage.NewAccessor(store, logger)
	clock := testutil.NewFakeClock(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	conf := &structures.Config{AI: structures.AIConfig{APIKey: "sk-test", Timeout: time.Second}}

	ai := &stubAI{}
	repo := &stubLicenseRepo{configured: true}
	entStore := services.NewEntitlementStore(accessor, clock)
	entitlements := services.NewEntitlementService(entStore, metrics, logger)
	history := services.NewHistoryService(accessor, entitlements, clock, logger)
	projects := services.NewProjectService(accessor, clock, logger)
	settings := services.NewSettingsService(accessor)
	license := services.NewLicenseService(repo, entStore, settings, accessor, metrics, logger)
	analysis := services.NewAnalysisService(conf, entitlements, history, projects, settings, &stubAIFactory{client: ai}, testutil.NewMockCache(), metrics, logger)

	return &testEnv{
		conf:         conf,
		store:        store,
		logger:       logger,
		metrics:      metrics,
		ai:           ai,
		repo:         repo,
		entStore:     entStore,
		entitlements: entitlements,
		history:      history,
		projects:     projects,
		settings:     settings,
		license:      license,
		analysis:     analysis,
	}
}

func (e *testEnv) professional() *testEnv {
	e.entStore.SetTier(models.TierProfessional)
	return e
}

// serve routes a single request through chi so URL params resolve.
func serve(method, pattern string, handler http.HandlerFunc, target string, body io.Reader) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(method, pattern, handler)
	req := httptest.NewRequest(method, target, body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
