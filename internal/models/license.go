package models

import "time"

type LicenseErrorCode string

const (
	LicenseKeyNotFound       LicenseErrorCode = "KEY_NOT_FOUND"
	LicenseKeyInactive       LicenseErrorCode = "KEY_INACTIVE"
	LicenseKeyExpired        LicenseErrorCode = "KEY_EXPIRED"
	LicenseMaxDevicesReached LicenseErrorCode = "MAX_DEVICES_REACHED"
	LicenseNotConfigured     LicenseErrorCode = "NOT_CONFIGURED"
	LicenseInvalidFormat     LicenseErrorCode = "INVALID_FORMAT"
	LicenseNetworkError      LicenseErrorCode = "NETWORK_ERROR"
	LicenseNoActivation      LicenseErrorCode = "NO_ACTIVATION"
)

// LicenseResult is either valid (with tier details) or carries an error code.
type LicenseResult struct {
	Valid       bool             `json:"valid"`
	Tier        UserTier         `json:"tier,omitempty"`
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
	DevicesUsed int              `json:"devicesUsed,omitempty"`
	MaxDevices  int              `json:"maxDevices,omitempty"`
	Error       LicenseErrorCode `json:"error,omitempty"`
	Message     string           `json:"message,omitempty"`
	LicenseKey  string           `json:"-"`
}

// ResultCode is the metrics label for the result.
func (r LicenseResult) ResultCode() string {
	if r.Valid {
		return "valid"
	}
	if r.Error == "" {
		return "unknown"
	}
	return string(r.Error)
}

// LicenseRecord is the row the webhook inserts for a purchase.
type LicenseRecord struct {
	LicenseKey string   `json:"license_key"`
	Tier       UserTier `json:"tier"`
	MaxDevices int      `json:"max_devices"`
}

var licenseMessages = map[LicenseErrorCode]string{
	LicenseKeyNotFound:       "License key not found. Check the key and try again.",
	LicenseKeyInactive:       "This license key has been deactivated.",
	LicenseKeyExpired:        "This license key has expired.",
	LicenseMaxDevicesReached: "This license key is already active on the maximum number of devices.",
	LicenseNotConfigured:     "License validation is not available right now.",
	LicenseInvalidFormat:     "License keys look like XXXX-XXXX-XXXX-XXXX.",
	LicenseNetworkError:      "Could not reach the license server. Please try again.",
	LicenseNoActivation:      "No active license found for this device.",
}

// LicenseErrorMessage returns the user-facing text for code.
func LicenseErrorMessage(code LicenseErrorCode) string {
	if msg, ok := licenseMessages[code]; ok {
		return msg
	}
	return "License validation failed."
}

// LicenseFailure builds an invalid result with the default message for code.
func LicenseFailure(code LicenseErrorCode) LicenseResult {
	return LicenseResult{Error: code, Message: LicenseErrorMessage(code)}
}
