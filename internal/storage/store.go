// Package storage is the local key-value store the rest of the daemon keeps
// its state in: history, projects, tier, counters and settings.
package storage

import (
	"errors"
	"fmt"

	"fontpair/internal/providers"
	"fontpair/internal/storage/interfaces"
	"fontpair/internal/structures"
)

var ErrQuotaExceeded = errors.New("storage quota exceeded")

const keyPrefix = "fontpair_"

const (
	KeyHistory             = keyPrefix + "history"
	KeySearchHistory       = keyPrefix + "search_history"
	KeyProjects            = keyPrefix + "projects"
	KeyUserTier            = keyPrefix + "user_tier"
	KeyDailyAnalysisCount  = keyPrefix + "daily_analysis_count"
	KeyDailyAnalysisDate   = keyPrefix + "daily_analysis_date"
	KeyDailyFindFontsCount = keyPrefix + "daily_find_fonts_count"
	KeyDailyFindFontsDate  = keyPrefix + "daily_find_fonts_date"
	KeyCritiqueCount       = keyPrefix + "critique_count"
	KeyOnboardingCompleted = keyPrefix + "onboarding_completed"
	KeyAIMode              = keyPrefix + "ai_mode"
	KeyAPIKey              = keyPrefix + "api_key"
	KeyDeviceID            = keyPrefix + "device_id"
	KeyLicenseKey          = keyPrefix + "license_key"
)

type KeyValueStore interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Remove(key string) error
	Keys() []string
	// Restore loads persisted state; Persist flushes it. Both are no-ops for
	// backends that write through.
	Restore() error
	Persist() error
	Close() error
}

func NewKeyValueStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) (KeyValueStore, func(), error) {
	var (
		store KeyValueStore
		err   error
	)
	switch conf.Storage.Driver {
	case "sqlite":
		store, err = NewSQLiteStore(conf.Storage.SqlitePath, logger)
	case "file", "":
		store = NewFileStore(conf.Storage.FilePath, conf.Storage.QuotaBytes, compressor, logger)
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Error while closing store: %s", err)
		}
		compressor.Close()
	}
	return store, cleanup, nil
}
