package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fontpair/internal/models"
	"fontpair/internal/storage"
)

func newLicenseService(f *fixture, repo *mockLicenseRepo) (LicenseServiceInterface, SettingsServiceInterface) {
	settings := NewSettingsService(f.accessor)
	return NewLicenseService(repo, f.entStore, settings, f.accessor, f.metrics, f.logger), settings
}

func validResult() models.LicenseResult {
	return models.LicenseResult{Valid: true, Tier: models.TierProfessional, DevicesUsed: 1, MaxDevices: 3}
}

func TestNormalizeLicenseKey(t *testing.T) {
	assert.Equal(t, "AB12-CD34-EF56-GH78", NormalizeLicenseKey(" ab12-cd34 -ef56-gh78\n"))
	assert.Equal(t, "AB12-CD34-EF56-GH78", NormalizeLicenseKey("ab12-\tcd34-ef56-gh78"))
}

func TestValidateLicenseFormat(t *testing.T) {
	assert.NoError(t, ValidateLicenseFormat("AB12-CD34-EF56-GH78"))

	for _, key := range []string{"", "not-a-key", "AB12-CD34-EF56", "AB12-CD34-EF56-GH7!", "AB12CD34EF56GH78", "ab12-cd34-ef56-gh78", "AB12-CD34-EF56-GH78-IJ90"} {
		assert.ErrorIs(t, ValidateLicenseFormat(key), ErrInvalidLicenseFormat, key)
	}
}

func TestLicenseService_BadFormatNeverCallsRemote(t *testing.T) {
	f := newFixture()
	repo := &mockLicenseRepo{configured: true, result: validResult()}
	svc, _ := newLicenseService(f, repo)

	result := svc.CheckLicense(context.Background(), "not-a-key")
	assert.False(t, result.Valid)
	assert.Equal(t, models.LicenseInvalidFormat, result.Error)
	assert.Equal(t, 0, repo.validateHits)
	assert.Equal(t, 1, f.metrics.LicenseValidations[string(models.LicenseInvalidFormat)])
}

func TestLicenseService_CheckLicenseIsPure(t *testing.T) {
	f := newFixture()
	repo := &mockLicenseRepo{configured: true, result: validResult()}
	svc, settings := newLicenseService(f, repo)

	result := svc.CheckLicense(context.Background(), "ab12-cd34-ef56-gh78")
	assert.True(t, result.Valid)
	assert.Equal(t, "AB12-CD34-EF56-GH78", repo.lastKey)
	assert.Equal(t, settings.DeviceID(), repo.lastDevice)
	assert.Equal(t, models.TierFree, f.entStore.GetTier())
	assert.Equal(t, 1, f.metrics.LicenseValidations["valid"])
}

func TestLicenseService_ApplyLicense(t *testing.T) {
	f := newFixture()
	svc, _ := newLicenseService(f, &mockLicenseRepo{configured: true})

	assert.False(t, svc.ApplyLicense(models.LicenseFailure(models.LicenseKeyExpired)))
	assert.Equal(t, models.TierFree, f.entStore.GetTier())

	result := validResult()
	result.LicenseKey = "AB12-CD34-EF56-GH78"
	assert.True(t, svc.ApplyLicense(result))
	assert.Equal(t, models.TierProfessional, f.entStore.GetTier())
	stored, ok := f.accessor.ReadString(storage.KeyLicenseKey)
	require.True(t, ok)
	assert.Equal(t, "AB12-CD34-EF56-GH78", stored)
}

func TestLicenseService_ValidateLicenseKeyAppliesOnSuccess(t *testing.T) {
	f := newFixture()
	repo := &mockLicenseRepo{configured: true, result: validResult()}
	svc, _ := newLicenseService(f, repo)

	result := svc.ValidateLicenseKey(context.Background(), "AB12-CD34-EF56-GH78")
	assert.True(t, result.Valid)
	assert.Equal(t, models.TierProfessional, f.entStore.GetTier())
}

func TestLicenseService_ValidateLicenseKeyRemoteRejection(t *testing.T) {
	for _, code := range []models.LicenseErrorCode{
		models.LicenseKeyNotFound, models.LicenseKeyInactive, models.LicenseKeyExpired, models.LicenseMaxDevicesReached,
	} {
		f := newFixture()
		repo := &mockLicenseRepo{configured: true, result: models.LicenseFailure(code)}
		svc, _ := newLicenseService(f, repo)

		result := svc.ValidateLicenseKey(context.Background(), "AB12-CD34-EF56-GH78")
		assert.Equal(t, code, result.Error)
		assert.Equal(t, models.TierFree, f.entStore.GetTier())
	}
}

func TestLicenseService_NetworkError(t *testing.T) {
	f := newFixture()
	repo := &mockLicenseRepo{configured: true, err: errors.New("dial tcp: timeout")}
	svc, _ := newLicenseService(f, repo)

	result := svc.ValidateLicenseKey(context.Background(), "AB12-CD34-EF56-GH78")
	assert.Equal(t, models.LicenseNetworkError, result.Error)
	assert.NotEmpty(t, result.Message)
	assert.Equal(t, 1, f.logger.Count("error"))
}

func TestLicenseService_NotConfigured(t *testing.T) {
	f := newFixture()
	repo := &mockLicenseRepo{}
	svc, _ := newLicenseService(f, repo)

	assert.False(t, svc.Configured())
	assert.Equal(t, models.LicenseNotConfigured, svc.CheckLicense(context.Background(), "AB12-CD34-EF56-GH78").Error)
	assert.Equal(t, models.LicenseNotConfigured, svc.CheckActivationStatus(context.Background()).Error)
	assert.Equal(t, 0, repo.validateHits)
}

func TestLicenseService_CheckActivationStatus(t *testing.T) {
	f := newFixture()
	repo := &mockLicenseRepo{configured: true, activation: validResult()}
	svc, _ := newLicenseService(f, repo)

	result := svc.CheckActivationStatus(context.Background())
	assert.True(t, result.Valid)
	assert.Equal(t, models.TierProfessional, f.entStore.GetTier())
}

func TestLicenseService_CheckActivationNeverDowngrades(t *testing.T) {
	f := newFixture().professional()
	repo := &mockLicenseRepo{configured: true, activation: models.LicenseFailure(models.LicenseNoActivation)}
	svc, _ := newLicenseService(f, repo)

	svc.CheckActivationStatus(context.Background())
	assert.Equal(t, models.TierProfessional, f.entStore.GetTier())

	repo.err = errors.New("offline")
	result := svc.CheckActivationStatus(context.Background())
	assert.Equal(t, models.LicenseNetworkError, result.Error)
	assert.Equal(t, models.TierProfessional, f.entStore.GetTier())
}

func TestLicenseService_RecordPurchase(t *testing.T) {
	f := newFixture()
	repo := &mockLicenseRepo{configured: true}
	svc, _ := newLicenseService(f, repo)

	require.NoError(t, svc.RecordPurchase(context.Background(), "WXYZ-1234-ABCD-5678"))
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, models.LicenseRecord{LicenseKey: "WXYZ-1234-ABCD-5678", Tier: models.TierProfessional, MaxDevices: 3}, repo.inserted[0])

	repo.insertErr = errors.New("duplicate")
	assert.Error(t, svc.RecordPurchase(context.Background(), "WXYZ-1234-ABCD-5678"))
}
