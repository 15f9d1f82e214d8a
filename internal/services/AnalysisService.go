package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"fontpair/internal/external"
	"fontpair/internal/models"
	"fontpair/internal/providers"
	"fontpair/internal/structures"
)

const (
	opAnalyze   = "analyze"
	opFindFonts = "find_fonts"
	opCritique  = "critique"
)

type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (models.HistoryItem, error)
	AnalyzeBatch(ctx context.Context, req models.BatchAnalysisRequest) ([]models.BatchAnalysisResult, error)
	FindFonts(ctx context.Context, criteria models.SearchCriteria) (models.SearchHistoryItem, error)
	Critique(ctx context.Context, req models.CritiqueRequest) (models.PairingCritique, error)
}

// AnalysisService runs a metered AI action: gate, cache, remote call,
// persist, then count. Counters only move after the action succeeded.
type AnalysisService struct {
	conf         *structures.Config
	entitlements EntitlementServiceInterface
	history      HistoryServiceInterface
	projects     ProjectServiceInterface
	settings     SettingsServiceInterface
	factory      external.AIClientFactory
	cache        providers.CacheProviderInterface
	metrics      providers.MetricsProviderInterface
	logger       providers.Logger
	group        singleflight.Group
}

func NewAnalysisService(
	conf *structures.Config,
	entitlements EntitlementServiceInterface,
	history HistoryServiceInterface,
	projects ProjectServiceInterface,
	settings SettingsServiceInterface,
	factory external.AIClientFactory,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) AnalysisServiceInterface {
	return &AnalysisService{
		conf:         conf,
		entitlements: entitlements,
		history:      history,
		projects:     projects,
		settings:     settings,
		factory:      factory,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *AnalysisService) Analyze(ctx context.Context, req models.AnalysisRequest) (models.HistoryItem, error) {
	if req.ImageBase64 == "" && strings.TrimSpace(req.Description) == "" {
		return models.HistoryItem{}, ErrEmptyRequest
	}
	if status := s.entitlements.CanPerformAnalysis(); !status.Allowed {
		return models.HistoryItem{}, &QuotaExceededError{Kind: models.CounterAnalysis, Status: status}
	}
	client, err := s.client()
	if err != nil {
		return models.HistoryItem{}, err
	}

	// the thumbnail is display-only and stays out of the cache key
	input := models.AnalysisRequest{ImageBase64: req.ImageBase64, MimeType: req.MimeType, Description: req.Description}
	analysis, err := cachedCall(s, ctx, opAnalyze, input, func(ctx context.Context) (models.FontAnalysis, error) {
		return client.AnalyzeFont(ctx, input)
	})
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Font analysis failed: %s", err)
		return models.HistoryItem{}, err
	}

	item := s.history.SaveToHistory(analysis, req.Thumbnail)
	s.entitlements.IncrementAnalysis()
	return item, nil
}

// AnalyzeBatch runs the items one after another, each gated on its own.
// Per-item failures are reported in the result slice.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, req models.BatchAnalysisRequest) ([]models.BatchAnalysisResult, error) {
	if !s.entitlements.HasFeature(models.FeatureBatchAnalysis) {
		return nil, ErrFeatureNotAvailable
	}

	results := make([]models.BatchAnalysisResult, 0, len(req.Items))
	for _, itemReq := range req.Items {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		item, err := s.Analyze(ctx, itemReq)
		if err != nil {
			results = append(results, models.BatchAnalysisResult{Error: err.Error()})
			continue
		}
		results = append(results, models.BatchAnalysisResult{Item: &item})
	}
	return results, nil
}

func (s *AnalysisService) FindFonts(ctx context.Context, criteria models.SearchCriteria) (models.SearchHistoryItem, error) {
	if strings.TrimSpace(criteria.Description) == "" {
		return models.SearchHistoryItem{}, ErrEmptyRequest
	}
	if status := s.entitlements.CanPerformFindFonts(); !status.Allowed {
		return models.SearchHistoryItem{}, &QuotaExceededError{Kind: models.CounterFindFonts, Status: status}
	}
	client, err := s.client()
	if err != nil {
		return models.SearchHistoryItem{}, err
	}

	results, err := cachedCall(s, ctx, opFindFonts, criteria, func(ctx context.Context) (models.FontSearchResult, error) {
		return client.FindFonts(ctx, criteria)
	})
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Font search failed: %s", err)
		return models.SearchHistoryItem{}, err
	}

	item := s.history.SaveSearchToHistory(criteria, results)
	s.entitlements.IncrementFindFonts()
	return item, nil
}

// Critique scores a pairing and, when the request names a saved pairing,
// attaches the critique to it.
func (s *AnalysisService) Critique(ctx context.Context, req models.CritiqueRequest) (models.PairingCritique, error) {
	if status := s.entitlements.CanPerformCritique(); !status.Allowed {
		return models.PairingCritique{}, &QuotaExceededError{Kind: models.CounterCritique, Status: status}
	}
	client, err := s.client()
	if err != nil {
		return models.PairingCritique{}, err
	}

	input := [2]models.FontAnalysis{req.LeftFont, req.RightFont}
	critique, err := cachedCall(s, ctx, opCritique, input, func(ctx context.Context) (models.PairingCritique, error) {
		return client.CritiquePairing(ctx, req.LeftFont, req.RightFont)
	})
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Pairing critique failed: %s", err)
		return models.PairingCritique{}, err
	}

	if req.ProjectID != "" && req.PairingID != "" {
		if s.projects.UpdatePairing(req.ProjectID, req.PairingID, models.PairingPatch{Critique: &critique}) == nil {
			s.logger.Warnf(providers.TypeApp, "Critique not attached, pairing %s/%s not found", req.ProjectID, req.PairingID)
		}
	}
	s.entitlements.IncrementCritique()
	return critique, nil
}

// client picks the user's own key in byok mode and the configured key
// otherwise.
func (s *AnalysisService) client() (external.AIClient, error) {
	key := s.conf.AI.APIKey
	if s.settings.AIMode() == models.AIModeBYOK {
		key = s.settings.APIKey()
	}
	return s.factory.For(key)
}

func cachedCall[T any](s *AnalysisService, ctx context.Context, op string, input any, call func(context.Context) (T, error)) (T, error) {
	var zero T
	payload, err := json.Marshal(input)
	if err != nil {
		return zero, err
	}
	sum := sha256.Sum256(payload)
	key := op + ":" + hex.EncodeToString(sum[:])

	if raw, ok := s.cache.Get(key); ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// shared by every waiter, so the first caller leaving must not cancel it
		callCtx := context.WithoutCancel(ctx)
		if s.conf.AI.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(callCtx, s.conf.AI.Timeout)
			defer cancel()
		}

		start := time.Now()
		res, err := call(callCtx)
		s.metrics.ObserveAIRequestDuration(op, time.Since(start))
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(res); err == nil {
			s.cache.Set(key, raw)
		}
		return res, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}
