package external

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fontpair/internal/models"
	"fontpair/internal/providers"
	"fontpair/internal/structures"
)

// licenseRPCResponse is the JSON both validate_license_key and
// check_license_activation return, over REST or straight from Postgres.
type licenseRPCResponse struct {
	Valid       bool       `json:"valid"`
	Tier        string     `json:"tier"`
	ExpiresAt   *time.Time `json:"expires_at"`
	DevicesUsed int        `json:"devices_used"`
	MaxDevices  int        `json:"max_devices"`
	Error       string     `json:"error"`
	Message     string     `json:"message"`
}

func (r licenseRPCResponse) toResult(fallback models.LicenseErrorCode) models.LicenseResult {
	if r.Valid {
		tier := models.UserTier(r.Tier)
		if !tier.IsValid() {
			tier = models.TierProfessional
		}
		return models.LicenseResult{
			Valid:       true,
			Tier:        tier,
			ExpiresAt:   r.ExpiresAt,
			DevicesUsed: r.DevicesUsed,
			MaxDevices:  r.MaxDevices,
		}
	}

	code := models.LicenseErrorCode(r.Error)
	if code == "" {
		code = fallback
	}
	result := models.LicenseFailure(code)
	if r.Message != "" {
		result.Message = r.Message
	}
	result.DevicesUsed = r.DevicesUsed
	result.MaxDevices = r.MaxDevices
	return result
}

type unconfiguredRepository struct{}

func (unconfiguredRepository) ValidateLicense(context.Context, string, string) (models.LicenseResult, error) {
	return models.LicenseResult{}, ErrNotConfigured
}

func (unconfiguredRepository) CheckActivation(context.Context, string) (models.LicenseResult, error) {
	return models.LicenseResult{}, ErrNotConfigured
}

func (unconfiguredRepository) InsertLicense(context.Context, models.LicenseRecord) error {
	return ErrNotConfigured
}

func (unconfiguredRepository) Configured() bool { return false }

// NewLicenseRepository picks the backend named by license.backend.
func NewLicenseRepository(conf *structures.Config, logger providers.Logger) (LicenseRepository, func(), error) {
	switch conf.License.Backend {
	case "rest":
		client := NewSupabaseClient(conf, &http.Client{Timeout: conf.License.Timeout})
		return client, func() {}, nil
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), conf.License.Timeout)
		defer cancel()
		repo, cleanup, err := NewPostgresLicenseRepository(ctx, conf.License.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect license database: %w", err)
		}
		return repo, cleanup, nil
	case "none", "":
		logger.Warnf(providers.TypeApp, "License backend not configured, validation and webhook inserts are disabled")
		return unconfiguredRepository{}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown license backend %q", conf.License.Backend)
}
