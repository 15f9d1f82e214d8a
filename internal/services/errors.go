package services

import (
	"errors"
	"fmt"

	"fontpair/internal/models"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidLicenseFormat = errors.New("invalid license key format")
	ErrFeatureNotAvailable  = errors.New("feature not available on current tier")
	ErrAlreadyLicensed      = errors.New("a license is already active")
	ErrInvalidAIMode        = errors.New("invalid AI mode")
	ErrEmptyRequest         = errors.New("request needs an image or a description")
)

// QuotaExceededError is returned when a metered action is denied.
type QuotaExceededError struct {
	Kind   models.CounterKind
	Status models.QuotaStatus
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %s", e.Kind, e.Status.Message)
}
