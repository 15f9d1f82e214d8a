package services

import (
	"context"
	"sync"
	"time"

	"fontpair/internal/external"
	"fontpair/internal/models"
	"fontpair/internal/storage"
	"fontpair/internal/testutil"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store        *storage.FileStore
	accessor     *storage.Accessor
	clock        *testutil.FakeClock
	logger       *testutil.MockLogger
	metrics      *testutil.MockMetrics
	entStore     EntitlementStoreInterface
	entitlements EntitlementServiceInterface
}

func newFixture() *fixture {
	logger := &testutil.MockLogger{}
	store := storage.NewFileStore("", 0, &testutil.MockCompressor{}, logger)
	accessor := storage.NewAccessor(store, logger)
	clock := testutil.NewFakeClock(testNow)
	metrics := testutil.NewMockMetrics()
	entStore := NewEntitlementStore(accessor, clock)
	return &fixture{
		store:        store,
		accessor:     accessor,
		clock:        clock,
		logger:       logger,
		metrics:      metrics,
		entStore:     entStore,
		entitlements: NewEntitlementService(entStore, metrics, logger),
	}
}

func (f *fixture) professional() *fixture {
	f.entStore.SetTier(models.TierProfessional)
	return f
}

type mockAIClient struct {
	mu        sync.Mutex
	calls     map[string]int
	analysis  models.FontAnalysis
	search    models.FontSearchResult
	critique  models.PairingCritique
	err       error
	delay     time.Duration
	lastInput models.AnalysisRequest
}

func newMockAIClient() *mockAIClient {
	return &mockAIClient{
		calls:    make(map[string]int),
		analysis: models.FontAnalysis{FontName: "Inter", FontType: "sans-serif", Status: models.AnalysisStatusOK},
		search: models.FontSearchResult{Suggestions: []models.FontSuggestion{
			{FontName: "Lora"}, {FontName: "Merriweather"},
		}},
		critique: models.PairingCritique{OverallScore: 8, Summary: "Good contrast"},
	}
}

func (m *mockAIClient) record(ctx context.Context, op string) error {
	m.mu.Lock()
	m.calls[op]++
	delay := m.delay
	m.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return m.err
}

func (m *mockAIClient) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockAIClient) AnalyzeFont(ctx context.Context, req models.AnalysisRequest) (models.FontAnalysis, error) {
	m.mu.Lock()
	m.lastInput = req
	m.mu.Unlock()
	if err := m.record(ctx, opAnalyze); err != nil {
		return models.FontAnalysis{}, err
	}
	return m.analysis, nil
}

func (m *mockAIClient) FindFonts(ctx context.Context, _ models.SearchCriteria) (models.FontSearchResult, error) {
	if err := m.record(ctx, opFindFonts); err != nil {
		return models.FontSearchResult{}, err
	}
	return m.search, nil
}

func (m *mockAIClient) CritiquePairing(ctx context.Context, _, _ models.FontAnalysis) (models.PairingCritique, error) {
	if err := m.record(ctx, opCritique); err != nil {
		return models.PairingCritique{}, err
	}
	return m.critique, nil
}

type mockAIFactory struct {
	mu      sync.Mutex
	client  *mockAIClient
	lastKey string
}

func (f *mockAIFactory) For(apiKey string) (external.AIClient, error) {
	f.mu.Lock()
	f.lastKey = apiKey
	f.mu.Unlock()
	if apiKey == "" {
		return nil, external.ErrNotConfigured
	}
	return f.client, nil
}

type mockLicenseRepo struct {
	configured   bool
	result       models.LicenseResult
	activation   models.LicenseResult
	err          error
	insertErr    error
	validateHits int
	lastKey      string
	lastDevice   string
	inserted     []models.LicenseRecord
}

func (r *mockLicenseRepo) ValidateLicense(_ context.Context, key, deviceID string) (models.LicenseResult, error) {
	r.validateHits++
	r.lastKey = key
	r.lastDevice = deviceID
	return r.result, r.err
}

func (r *mockLicenseRepo) CheckActivation(_ context.Context, deviceID string) (models.LicenseResult, error) {
	r.lastDevice = deviceID
	return r.activation, r.err
}

func (r *mockLicenseRepo) InsertLicense(_ context.Context, record models.LicenseRecord) error {
	r.inserted = append(r.inserted, record)
	return r.insertErr
}

func (r *mockLicenseRepo) Configured() bool { return r.configured }
