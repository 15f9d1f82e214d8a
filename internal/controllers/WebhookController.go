package controllers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"fontpair/internal/providers"
	"fontpair/internal/services"
	"fontpair/internal/structures"
)

const webhookSecretHeader = "X-Webhook-Secret"

// WebhookController relays payment notifications into the remote license
// store. Once the request is accepted it always answers 200 so that the
// payment provider does not retry.
type WebhookController struct {
	service services.LicenseServiceInterface
	secret  string
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewWebhookController(service services.LicenseServiceInterface, conf *structures.Config, metrics providers.MetricsProviderInterface, logger providers.Logger) *WebhookController {
	return &WebhookController{
		service: service,
		secret:  conf.Webhook.Secret,
		metrics: metrics,
		logger:  logger,
	}
}

func (wc *WebhookController) License(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		wc.metrics.IncWebhookDelivery("method_not_allowed")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if !wc.service.Configured() {
		wc.metrics.IncWebhookDelivery("not_configured")
		wc.logger.Errorf(providers.TypePost, "License webhook called but the license backend is not configured")
		http.Error(w, "Server configuration error", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		wc.metrics.IncWebhookDelivery("bad_request")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if !wc.authorized(r) {
		wc.metrics.IncWebhookDelivery("unauthorized")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	licenseKey := strings.TrimSpace(r.PostForm.Get("license_key"))
	if licenseKey == "" {
		wc.metrics.IncWebhookDelivery("missing_key")
		http.Error(w, "Missing license_key", http.StatusBadRequest)
		return
	}

	if err := wc.service.RecordPurchase(r.Context(), licenseKey); err != nil {
		wc.metrics.IncWebhookDelivery("insert_failed")
		wc.logger.Errorf(providers.TypePost, "License webhook insert failed: %s", err)
	} else {
		wc.metrics.IncWebhookDelivery("inserted")
		wc.logger.Infof(providers.TypePost, "License webhook recorded a purchase")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (wc *WebhookController) authorized(r *http.Request) bool {
	if wc.secret == "" {
		return true
	}
	provided := r.Header.Get(webhookSecretHeader)
	if provided == "" {
		provided = r.PostForm.Get("secret")
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(wc.secret)) == 1
}
