package external

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fontpair/internal/models"
)

// querier is the part of *pgxpool.Pool the repository uses.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresLicenseRepository calls the license SQL functions directly,
// bypassing PostgREST.
type PostgresLicenseRepository struct {
	db querier
}

func NewPostgresLicenseRepository(ctx context.Context, databaseURL string) (*PostgresLicenseRepository, func(), error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return &PostgresLicenseRepository{db: pool}, pool.Close, nil
}

func (r *PostgresLicenseRepository) Configured() bool { return true }

func (r *PostgresLicenseRepository) ValidateLicense(ctx context.Context, licenseKey, deviceID string) (models.LicenseResult, error) {
	resp, err := r.callJSON(ctx, `SELECT validate_license_key($1, $2)`, licenseKey, deviceID)
	if err != nil {
		return models.LicenseResult{}, err
	}
	return resp.toResult(models.LicenseKeyNotFound), nil
}

func (r *PostgresLicenseRepository) CheckActivation(ctx context.Context, deviceID string) (models.LicenseResult, error) {
	resp, err := r.callJSON(ctx, `SELECT check_license_activation($1)`, deviceID)
	if err != nil {
		return models.LicenseResult{}, err
	}
	return resp.toResult(models.LicenseNoActivation), nil
}

func (r *PostgresLicenseRepository) InsertLicense(ctx context.Context, record models.LicenseRecord) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO licenses (license_key, tier, max_devices) VALUES ($1, $2, $3)`,
		record.LicenseKey, string(record.Tier), record.MaxDevices)
	if err != nil {
		return fmt.Errorf("failed to insert license: %w", err)
	}
	return nil
}

func (r *PostgresLicenseRepository) callJSON(ctx context.Context, sql string, args ...any) (licenseRPCResponse, error) {
	var (
		raw  []byte
		resp licenseRPCResponse
	)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return resp, fmt.Errorf("license query failed: %w", err)
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return resp, fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	return resp, nil
}
