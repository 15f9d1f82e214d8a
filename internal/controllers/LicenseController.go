package controllers

import (
	"net/http"

	"fontpair/internal/models"
	"fontpair/internal/services"
)

type LicenseController struct {
	service      services.LicenseServiceInterface
	entitlements services.EntitlementServiceInterface
}

type validateLicenseRequest struct {
	LicenseKey string `json:"licenseKey"`
}

type licenseStatusResponse struct {
	Configured bool                 `json:"configured"`
	Tier       models.UserTier      `json:"tier"`
	Result     models.LicenseResult `json:"result"`
}

func NewLicenseController(service services.LicenseServiceInterface, entitlements services.EntitlementServiceInterface) *LicenseController {
	return &LicenseController{service: service, entitlements: entitlements}
}

// Validate always answers 200; the outcome is carried in the result body.
func (lc *LicenseController) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateLicenseRequest
	if !readJSON(w, r, maxRequestBodySize, &req) {
		return
	}
	writeJSON(w, http.StatusOK, lc.service.ValidateLicenseKey(r.Context(), req.LicenseKey))
}

func (lc *LicenseController) Status(w http.ResponseWriter, r *http.Request) {
	result := lc.service.CheckActivationStatus(r.Context())
	writeJSON(w, http.StatusOK, licenseStatusResponse{
		Configured: lc.service.Configured(),
		Tier:       lc.entitlements.GetTier(),
		Result:     result,
	})
}
