package services

import (
	"context"
	"strings"
	"unicode"

	"github.com/gookit/validate"

	"fontpair/internal/external"
	"fontpair/internal/models"
	"fontpair/internal/providers"
	"fontpair/internal/storage"
)

const licenseKeyPattern = `^[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}$`

type LicenseServiceInterface interface {
	CheckLicense(ctx context.Context, key string) models.LicenseResult
	ApplyLicense(result models.LicenseResult) bool
	ValidateLicenseKey(ctx context.Context, key string) models.LicenseResult
	CheckActivationStatus(ctx context.Context) models.LicenseResult
	RecordPurchase(ctx context.Context, licenseKey string) error
	Configured() bool
}

type LicenseService struct {
	repo     external.LicenseRepository
	store    EntitlementStoreInterface
	settings SettingsServiceInterface
	accessor *storage.Accessor
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
}

func NewLicenseService(
	repo external.LicenseRepository,
	store EntitlementStoreInterface,
	settings SettingsServiceInterface,
	accessor *storage.Accessor,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) LicenseServiceInterface {
	return &LicenseService{
		repo:     repo,
		store:    store,
		settings: settings,
		accessor: accessor,
		metrics:  metrics,
		logger:   logger,
	}
}

// NormalizeLicenseKey drops all whitespace and upper-cases the rest.
func NormalizeLicenseKey(key string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, key))
}

// ValidateLicenseFormat checks an already normalized key.
func ValidateLicenseFormat(key string) error {
	v := validate.Map(map[string]any{"license_key": key})
	v.AddRule("license_key", "required")
	v.AddRule("license_key", "regexp", licenseKeyPattern)
	if !v.Validate() {
		return ErrInvalidLicenseFormat
	}
	return nil
}

// CheckLicense asks the remote backend about key without touching local
// state. Malformed keys never reach the network.
func (s *LicenseService) CheckLicense(ctx context.Context, key string) models.LicenseResult {
	result := s.checkLicense(ctx, key)
	s.metrics.IncLicenseValidation(result.ResultCode())
	return result
}

func (s *LicenseService) checkLicense(ctx context.Context, key string) models.LicenseResult {
	normalized := NormalizeLicenseKey(key)
	if err := ValidateLicenseFormat(normalized); err != nil {
		return models.LicenseFailure(models.LicenseInvalidFormat)
	}
	if !s.repo.Configured() {
		return models.LicenseFailure(models.LicenseNotConfigured)
	}

	result, err := s.repo.ValidateLicense(ctx, normalized, s.settings.DeviceID())
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "License validation request failed: %s", err)
		return models.LicenseFailure(models.LicenseNetworkError)
	}
	result.LicenseKey = normalized
	return result
}

// ApplyLicense upgrades the local tier for a valid result and reports
// whether it did.
func (s *LicenseService) ApplyLicense(result models.LicenseResult) bool {
	if !result.Valid {
		return false
	}
	s.store.SetTier(models.TierProfessional)
	if result.LicenseKey != "" {
		s.accessor.WriteString(storage.KeyLicenseKey, result.LicenseKey)
	}
	s.logger.Infof(providers.TypeApp, "License applied, tier is now %s", models.TierProfessional)
	return true
}

// ValidateLicenseKey is CheckLicense followed by ApplyLicense.
func (s *LicenseService) ValidateLicenseKey(ctx context.Context, key string) models.LicenseResult {
	result := s.CheckLicense(ctx, key)
	s.ApplyLicense(result)
	return result
}

// CheckActivationStatus asks whether this device already holds an active
// license and applies it if so. A negative answer never downgrades.
func (s *LicenseService) CheckActivationStatus(ctx context.Context) models.LicenseResult {
	if !s.repo.Configured() {
		return models.LicenseFailure(models.LicenseNotConfigured)
	}
	result, err := s.repo.CheckActivation(ctx, s.settings.DeviceID())
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "License activation check failed, keeping cached tier: %s", err)
		return models.LicenseFailure(models.LicenseNetworkError)
	}
	if stored, ok := s.accessor.ReadString(storage.KeyLicenseKey); ok {
		result.LicenseKey = stored
	}
	s.ApplyLicense(result)
	return result
}

// RecordPurchase inserts a professional license for a completed payment.
func (s *LicenseService) RecordPurchase(ctx context.Context, licenseKey string) error {
	return s.repo.InsertLicense(ctx, models.LicenseRecord{
		LicenseKey: licenseKey,
		Tier:       models.TierProfessional,
		MaxDevices: models.GetTierConfig(models.TierProfessional).Limits.MaxDevices,
	})
}

func (s *LicenseService) Configured() bool {
	return s.repo.Configured()
}
