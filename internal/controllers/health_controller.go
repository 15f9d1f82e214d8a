package controllers

import (
	"fmt"
	"net/http"
	"time"

	"fontpair/internal/models"
	"fontpair/internal/services"
	"fontpair/internal/storage"
)

type HealthController struct {
	store        storage.KeyValueStore
	entitlements services.EntitlementServiceInterface
	license      services.LicenseServiceInterface
	startTime    time.Time
}

type healthResponse struct {
	Status            string          `json:"status"`
	Uptime            string          `json:"uptime"`
	UptimeSeconds     float64         `json:"uptime_seconds"`
	StoredKeys        int             `json:"stored_keys"`
	Tier              models.UserTier `json:"tier"`
	LicenseConfigured bool            `json:"license_configured"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:            "ok",
		Uptime:            formatDuration(uptime),
		UptimeSeconds:     uptime.Seconds(),
		StoredKeys:        len(hc.store.Keys()),
		Tier:              hc.entitlements.GetTier(),
		LicenseConfigured: hc.license.Configured(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store storage.KeyValueStore, entitlements services.EntitlementServiceInterface, license services.LicenseServiceInterface) *HealthController {
	return &HealthController{
		store:        store,
		entitlements: entitlements,
		license:      license,
		startTime:    time.Now(),
	}
}
