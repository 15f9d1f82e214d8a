package services

import (
	"fmt"

	"fontpair/internal/models"
	"fontpair/internal/providers"
)

type EntitlementServiceInterface interface {
	GetTier() models.UserTier
	Limits() models.TierLimits
	Features() models.TierFeatures
	HasFeature(feature models.Feature) bool
	CanPerformAnalysis() models.QuotaStatus
	CanPerformFindFonts() models.QuotaStatus
	CanPerformCritique() models.QuotaStatus
	IncrementAnalysis()
	IncrementFindFonts()
	IncrementCritique()
	ContinueFree() error
	Summary() models.EntitlementSummary
}

type EntitlementService struct {
	store   EntitlementStoreInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewEntitlementService(store EntitlementStoreInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) EntitlementServiceInterface {
	return &EntitlementService{store: store, metrics: metrics, logger: logger}
}

func (s *EntitlementService) GetTier() models.UserTier {
	return s.store.GetTier()
}

func (s *EntitlementService) Limits() models.TierLimits {
	return models.GetTierConfig(s.store.GetTier()).Limits
}

func (s *EntitlementService) Features() models.TierFeatures {
	return models.GetTierConfig(s.store.GetTier()).Features
}

func (s *EntitlementService) HasFeature(feature models.Feature) bool {
	return s.Features().Has(feature)
}

func (s *EntitlementService) CanPerformAnalysis() models.QuotaStatus {
	return s.gate(models.CounterAnalysis, true)
}

func (s *EntitlementService) CanPerformFindFonts() models.QuotaStatus {
	return s.gate(models.CounterFindFonts, true)
}

// CanPerformCritique gates free users on the lifetime counter. Pairing
// critique is enabled for every tier.
func (s *EntitlementService) CanPerformCritique() models.QuotaStatus {
	if !s.HasFeature(models.FeaturePairingCritique) {
		return models.QuotaStatus{Message: "Pairing critique is not available on your plan."}
	}
	return s.gate(models.CounterCritique, true)
}

func (s *EntitlementService) IncrementAnalysis() {
	s.store.IncrementCounter(models.CounterAnalysis)
}

func (s *EntitlementService) IncrementFindFonts() {
	s.store.IncrementCounter(models.CounterFindFonts)
}

// IncrementCritique records consumption for every tier, so a user who
// later drops to free keeps their lifetime count.
func (s *EntitlementService) IncrementCritique() {
	s.store.IncrementCounter(models.CounterCritique)
}

// ContinueFree records the explicit choice to stay on the free tier. It is
// refused once a license has been applied.
func (s *EntitlementService) ContinueFree() error {
	if s.store.GetTier() == models.TierProfessional {
		return ErrAlreadyLicensed
	}
	s.store.SetTier(models.TierFree)
	s.logger.Infof(providers.TypeApp, "User chose to continue on the free tier")
	return nil
}

func (s *EntitlementService) Summary() models.EntitlementSummary {
	tier := s.store.GetTier()
	conf := models.GetTierConfig(tier)
	return models.EntitlementSummary{
		Tier:       tier,
		TierChosen: s.store.TierChosen(),
		Limits:     conf.Limits,
		Features:   conf.Features,
		Analysis:   s.gate(models.CounterAnalysis, false),
		FindFonts:  s.gate(models.CounterFindFonts, false),
		Critique:   s.gate(models.CounterCritique, false),
	}
}

func (s *EntitlementService) limitFor(kind models.CounterKind) int {
	limits := s.Limits()
	switch kind {
	case models.CounterAnalysis:
		return limits.DailyAnalyses
	case models.CounterFindFonts:
		return limits.DailySearches
	case models.CounterCritique:
		return limits.LifetimeCritiques
	}
	return 0
}

// gate evaluates remaining = limit - count. record counts denials in metrics.
func (s *EntitlementService) gate(kind models.CounterKind, record bool) models.QuotaStatus {
	limit := s.limitFor(kind)
	if limit == models.Unlimited {
		return models.QuotaStatus{Allowed: true, Remaining: models.Unlimited, Unlimited: true}
	}

	remaining := limit - s.store.GetCounter(kind)
	if remaining > 0 {
		return models.QuotaStatus{Allowed: true, Remaining: remaining}
	}

	if record {
		s.metrics.IncQuotaDenied(string(kind))
	}
	return models.QuotaStatus{Remaining: 0, Message: denialMessage(kind, limit)}
}

func denialMessage(kind models.CounterKind, limit int) string {
	switch kind {
	case models.CounterAnalysis:
		return fmt.Sprintf("You've used all %d free analyses for today. Upgrade to Professional for unlimited analyses.", limit)
	case models.CounterFindFonts:
		return fmt.Sprintf("You've used all %d free font searches for today. Upgrade to Professional for unlimited searches.", limit)
	case models.CounterCritique:
		return fmt.Sprintf("You've used your %d free pairing critique. Upgrade to Professional for unlimited critiques.", limit)
	}
	return "Limit reached."
}
