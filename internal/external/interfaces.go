// Package external holds the clients for the remote collaborators: the
// Supabase-hosted license backend and the generative-AI API.
package external

import (
	"context"
	"errors"
	"fmt"

	"fontpair/internal/models"
)

var (
	ErrNotConfigured     = errors.New("remote backend not configured")
	ErrMalformedResponse = errors.New("malformed response from remote")
)

// StatusError is a non-2xx answer from a remote HTTP API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned %d: %s", e.Code, e.Body)
}

// LicenseRepository is the remote store of license keys and device
// activations. Device accounting happens entirely on the remote side.
type LicenseRepository interface {
	ValidateLicense(ctx context.Context, licenseKey, deviceID string) (models.LicenseResult, error)
	CheckActivation(ctx context.Context, deviceID string) (models.LicenseResult, error)
	InsertLicense(ctx context.Context, record models.LicenseRecord) error
	Configured() bool
}

type AIClient interface {
	AnalyzeFont(ctx context.Context, req models.AnalysisRequest) (models.FontAnalysis, error)
	FindFonts(ctx context.Context, criteria models.SearchCriteria) (models.FontSearchResult, error)
	CritiquePairing(ctx context.Context, left, right models.FontAnalysis) (models.PairingCritique, error)
}

// AIClientFactory hands out a client bound to an API key. An empty key
// yields ErrNotConfigured.
type AIClientFactory interface {
	For(apiKey string) (AIClient, error)
}
