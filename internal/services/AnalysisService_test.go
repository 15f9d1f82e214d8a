package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fontpair/internal/external"
	"fontpair/internal/models"
	"fontpair/internal/structures"
	"fontpair/internal/testutil"
)

type analysisFixture struct {
	*fixture
	ai       *mockAIClient
	factory  *mockAIFactory
	cache    *testutil.MockCache
	history  HistoryServiceInterface
	projects ProjectServiceInterface
	settings SettingsServiceInterface
	svc      AnalysisServiceInterface
}

func newAnalysisFixture(f *fixture) *analysisFixture {
	ai := newMockAIClient()
	factory := &mockAIFactory{client: ai}
	cache := testutil.NewMockCache()
	conf := &structures.Config{AI: structures.AIConfig{APIKey: "sk-managed", Timeout: time.Second}}
	history := NewHistoryService(f.accessor, f.entitlements, f.clock, f.logger)
	projects := NewProjectService(f.accessor, f.clock, f.logger)
	settings := NewSettingsService(f.accessor)
	return &analysisFixture{
		fixture:  f,
		ai:       ai,
		factory:  factory,
		cache:    cache,
		history:  history,
		projects: projects,
		settings: settings,
		svc:      NewAnalysisService(conf, f.entitlements, history, projects, settings, factory, cache, f.metrics, f.logger),
	}
}

func TestAnalysisService_AnalyzeSavesAndCounts(t *testing.T) {
	a := newAnalysisFixture(newFixture())

	item, err := a.svc.Analyze(context.Background(), models.AnalysisRequest{Description: "geometric sans", Thumbnail: "thumb"})
	require.NoError(t, err)
	assert.Equal(t, "Inter", item.Analysis.FontName)
	assert.Equal(t, "thumb", item.Thumbnail)
	assert.Equal(t, "", a.ai.lastInput.Thumbnail)

	assert.Len(t, a.history.GetHistory(), 1)
	assert.Equal(t, 1, a.entStore.GetCounter(models.CounterAnalysis))
	assert.Equal(t, "sk-managed", a.factory.lastKey)
	assert.Equal(t, 1, a.metrics.AIRequests[opAnalyze])
}

func TestAnalysisService_QuotaExceeded(t *testing.T) {
	a := newAnalysisFixture(newFixture())
	for i := 0; i < 3; i++ {
		_, err := a.svc.Analyze(context.Background(), models.AnalysisRequest{Description: "serif"})
		require.NoError(t, err)
	}

	_, err := a.svc.Analyze(context.Background(), models.AnalysisRequest{Description: "serif"})
	var quotaErr *QuotaExceededError
	require.True(t, errors.As(err, &quotaErr))
	assert.Equal(t, models.CounterAnalysis, quotaErr.Kind)
	assert.NotEmpty(t, quotaErr.Status.Message)
	assert.Equal(t, 3, a.entStore.GetCounter(models.CounterAnalysis))
}

func TestAnalysisService_FailureDoesNotCount(t *testing.T) {
	a := newAnalysisFixture(newFixture())
	a.ai.err = errors.New("upstream 500")

	_, err := a.svc.Analyze(context.Background(), models.AnalysisRequest{Description: "serif"})
	assert.Error(t, err)
	assert.Equal(t, 0, a.entStore.GetCounter(models.CounterAnalysis))
	assert.Empty(t, a.history.GetHistory())
}

func TestAnalysisService_EmptyRequest(t *testing.T) {
	a := newAnalysisFixture(newFixture())
	_, err := a.svc.Analyze(context.Background(), models.AnalysisRequest{Description: "   "})
	assert.ErrorIs(t, err, ErrEmptyRequest)

	_, err = a.svc.FindFonts(context.Background(), models.SearchCriteria{})
	assert.ErrorIs(t, err, ErrEmptyRequest)
}

func TestAnalysisService_CacheServesRepeatRequests(t *testing.T) {
	a := newAnalysisFixture(newFixture().professional())
	req := models.AnalysisRequest{Description: "humanist sans"}

	_, err := a.svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	_, err = a.svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, a.ai.count(opAnalyze))
	assert.Len(t, a.history.GetHistory(), 2)
	assert.Equal(t, 2, a.entStore.GetCounter(models.CounterAnalysis))
}

func TestAnalysisService_ConcurrentCallsShareOneRequest(t *testing.T) {
	a := newAnalysisFixture(newFixture().professional())
	a.ai.delay = 50 * time.Millisecond
	criteria := models.SearchCriteria{Description: "bold display"}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.svc.FindFonts(context.Background(), criteria)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, a.ai.count(opFindFonts), 5)
	assert.GreaterOrEqual(t, a.ai.count(opFindFonts), 1)
	assert.Len(t, a.history.GetSearchHistory(), 5)
}

func TestAnalysisService_SharedCallSurvivesFirstCallerLeaving(t *testing.T) {
	a := newAnalysisFixture(newFixture().professional())
	a.ai.delay = 150 * time.Millisecond
	criteria := models.SearchCriteria{Description: "humanist serif"}

	firstCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = a.svc.FindFonts(firstCtx, criteria)
	}()

	time.Sleep(20 * time.Millisecond)
	var secondErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, secondErr = a.svc.FindFonts(context.Background(), criteria)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	wg.Wait()

	assert.NoError(t, secondErr)
	assert.Equal(t, 1, a.ai.count(opFindFonts))
}

func TestAnalysisService_BYOKUsesUserKey(t *testing.T) {
	a := newAnalysisFixture(newFixture())
	mode := models.AIModeBYOK
	key := "sk-user"
	_, err := a.settings.Update(models.SettingsUpdate{AIMode: &mode, APIKey: &key})
	require.NoError(t, err)

	_, err = a.svc.Analyze(context.Background(), models.AnalysisRequest{Description: "serif"})
	require.NoError(t, err)
	assert.Equal(t, "sk-user", a.factory.lastKey)
}

func TestAnalysisService_BYOKWithoutKey(t *testing.T) {
	a := newAnalysisFixture(newFixture())
	mode := models.AIModeBYOK
	_, err := a.settings.Update(models.SettingsUpdate{AIMode: &mode})
	require.NoError(t, err)

	_, err = a.svc.Analyze(context.Background(), models.AnalysisRequest{Description: "serif"})
	assert.ErrorIs(t, err, external.ErrNotConfigured)
	assert.Equal(t, 0, a.entStore.GetCounter(models.CounterAnalysis))
}

func TestAnalysisService_FindFonts(t *testing.T) {
	a := newAnalysisFixture(newFixture())

	item, err := a.svc.FindFonts(context.Background(), models.SearchCriteria{Description: "bookish serif"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lora", "Merriweather"}, item.FontNames)
	assert.Equal(t, 1, a.entStore.GetCounter(models.CounterFindFonts))
	assert.Len(t, a.history.GetSearchHistory(), 1)
}

func TestAnalysisService_BatchRequiresFeature(t *testing.T) {
	a := newAnalysisFixture(newFixture())
	_, err := a.svc.AnalyzeBatch(context.Background(), models.BatchAnalysisRequest{
		Items: []models.AnalysisRequest{{Description: "a"}},
	})
	assert.ErrorIs(t, err, ErrFeatureNotAvailable)
	assert.Equal(t, 0, a.ai.count(opAnalyze))
}

func TestAnalysisService_BatchReportsPerItem(t *testing.T) {
	a := newAnalysisFixture(newFixture().professional())
	results, err := a.svc.AnalyzeBatch(context.Background(), models.BatchAnalysisRequest{
		Items: []models.AnalysisRequest{{Description: "a"}, {}, {Description: "b"}},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NotNil(t, results[0].Item)
	assert.Nil(t, results[1].Item)
	assert.Equal(t, ErrEmptyRequest.Error(), results[1].Error)
	assert.NotNil(t, results[2].Item)
	assert.Equal(t, 2, a.entStore.GetCounter(models.CounterAnalysis))
}

func TestAnalysisService_CritiqueAttachesToPairing(t *testing.T) {
	a := newAnalysisFixture(newFixture())
	project := a.projects.CreateProject("Brand", "", "")
	pairing := a.projects.AddPairingToProject(project.ID, models.PairingInput{
		LeftFont:  models.FontAnalysis{FontName: "Playfair"},
		RightFont: models.FontAnalysis{FontName: "Lato"},
	})

	critique, err := a.svc.Critique(context.Background(), models.CritiqueRequest{
		LeftFont:  pairing.LeftFont,
		RightFont: pairing.RightFont,
		ProjectID: project.ID,
		PairingID: pairing.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, critique.OverallScore)

	saved := a.projects.GetProject(project.ID).Pairings[0]
	require.NotNil(t, saved.Critique)
	assert.Equal(t, 8.0, saved.Critique.OverallScore)

	// Free tier has one lifetime critique
	_, err = a.svc.Critique(context.Background(), models.CritiqueRequest{LeftFont: pairing.LeftFont, RightFont: pairing.RightFont})
	var quotaErr *QuotaExceededError
	require.True(t, errors.As(err, &quotaErr))
	assert.Equal(t, models.CounterCritique, quotaErr.Kind)
}

func TestAnalysisService_CritiqueUnknownPairingStillReturns(t *testing.T) {
	a := newAnalysisFixture(newFixture().professional())

	_, err := a.svc.Critique(context.Background(), models.CritiqueRequest{ProjectID: "p", PairingID: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, a.logger.Count("warn"))
	assert.Equal(t, 1, a.entStore.GetCounter(models.CounterCritique))
}
