package external

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"fontpair/internal/models"
	"fontpair/internal/structures"
)

const (
	validateLicensePath = "/rest/v1/rpc/validate_license_key"
	checkActivationPath = "/rest/v1/rpc/check_license_activation"
	licensesTablePath   = "/rest/v1/licenses"

	maxResponseBytes = 1 << 20
)

// SupabaseClient talks to the PostgREST endpoints of the license project.
// Every call goes through one circuit breaker; 4xx answers do not count as
// failures.
type SupabaseClient struct {
	baseURL    string
	anonKey    string
	serviceKey string
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func NewSupabaseClient(conf *structures.Config, httpClient *http.Client) *SupabaseClient {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "supabase",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < 500
			}
			return err == nil
		},
	})

	return &SupabaseClient{
		baseURL:    strings.TrimRight(conf.License.SupabaseURL, "/"),
		anonKey:    conf.License.AnonKey,
		serviceKey: conf.License.ServiceKey,
		client:     httpClient,
		breaker:    breaker,
	}
}

func (c *SupabaseClient) Configured() bool {
	return c.baseURL != "" && c.anonKey != ""
}

func (c *SupabaseClient) ValidateLicense(ctx context.Context, licenseKey, deviceID string) (models.LicenseResult, error) {
	body := map[string]string{
		"p_license_key": licenseKey,
		"p_device_id":   deviceID,
	}
	var resp licenseRPCResponse
	if err := c.rpc(ctx, validateLicensePath, body, &resp); err != nil {
		return models.LicenseResult{}, err
	}
	return resp.toResult(models.LicenseKeyNotFound), nil
}

func (c *SupabaseClient) CheckActivation(ctx context.Context, deviceID string) (models.LicenseResult, error) {
	body := map[string]string{"p_device_id": deviceID}
	var resp licenseRPCResponse
	if err := c.rpc(ctx, checkActivationPath, body, &resp); err != nil {
		return models.LicenseResult{}, err
	}
	return resp.toResult(models.LicenseNoActivation), nil
}

// InsertLicense writes one row with the service key, falling back to the
// anon key when no service key is configured.
func (c *SupabaseClient) InsertLicense(ctx context.Context, record models.LicenseRecord) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	key := c.serviceKey
	if key == "" {
		key = c.anonKey
	}
	_, err := c.do(ctx, licensesTablePath, key, record, "return=minimal")
	return err
}

func (c *SupabaseClient) rpc(ctx context.Context, path string, body any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	data, err := c.do(ctx, path, c.anonKey, body, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	return nil
}

func (c *SupabaseClient) do(ctx context.Context, path, key string, body any, prefer string) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	return c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("apikey", key)
		req.Header.Set("Authorization", "Bearer "+key)
		if prefer != "" {
			req.Header.Set("Prefer", prefer)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 300 {
			return nil, &StatusError{Code: resp.StatusCode, Body: string(data)}
		}
		return data, nil
	})
}
